package bootstrap

import (
	"context"
	"log/slog"

	"hostel-backoffice/internal/infra/cache"
	"hostel-backoffice/internal/pkg/config"
	"hostel-backoffice/internal/usecase/queries"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewDashboardCache,
	),
)

// NewDashboardCache falls back to no caching when REDIS_ADDR is unset.
func NewDashboardCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (queries.DashboardCache, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("dashboard cache disabled")
		return queries.NoopDashboardCache{}, nil
	}

	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return cache.NewDashboardCache(client, cfg.Redis.TTL), nil
}
