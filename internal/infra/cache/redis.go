package cache

import (
	"context"
	"encoding/json"
	"time"

	"hostel-backoffice/internal/pkg/config"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const dashboardKey = "hostel:dashboard"

// NewRedisClient connects and pings once so a bad address fails at startup, not on the first request.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrapf(err, "failed to ping redis at %s", cfg.Addr)
	}
	return client, nil
}

type DashboardCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewDashboardCache(client redis.Cmdable, ttl time.Duration) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl}
}

func (c *DashboardCache) Get(ctx context.Context) (*queries.DashboardView, error) {
	raw, err := c.client.Get(ctx, dashboardKey).Bytes()
	if errs.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "failed to read dashboard cache")
	}

	var view queries.DashboardView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, errs.Wrap(err, "failed to decode dashboard cache")
	}
	return &view, nil
}

func (c *DashboardCache) Set(ctx context.Context, view queries.DashboardView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return errs.Wrap(err, "failed to encode dashboard cache")
	}
	if err := c.client.Set(ctx, dashboardKey, raw, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to write dashboard cache")
	}
	return nil
}
