package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"hostel-backoffice/internal/pkg/clock"
	"hostel-backoffice/internal/pkg/config"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	maxRetryDelay = 5 * time.Minute
	leaseDuration = time.Minute
)

type Publisher interface {
	Publish(ctx context.Context, job shared.NotificationJob) error
}

// NotificationRelay drains the outbox. Delivery is at least once: a job leased by a relay that dies
// before marking it is claimed again once the lease expires.
type NotificationRelay struct {
	uow       shared.UnitOfWork
	publisher Publisher
	clock     clock.Clock
	cfg       config.RelayConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewNotificationRelay(uow shared.UnitOfWork, publisher Publisher, clk clock.Clock, cfg config.RelayConfig) *NotificationRelay {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return &NotificationRelay{uow: uow, publisher: publisher, clock: clk, cfg: cfg}
}

func (r *NotificationRelay) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.cfg.Interval)
		defer ticker.Stop()

		slog.Info("notification relay started", "interval", r.cfg.Interval.String())
		for {
			select {
			case <-ctx.Done():
				slog.Info("notification relay stopped")
				return
			case <-ticker.C:
				if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
					slog.Error("notification relay tick failed", "error", err.Error())
				}
			}
		}
	}()
}

func (r *NotificationRelay) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	r.wg.Wait()
}

// RunOnce processes one batch and reports how many jobs were published. Jobs are claimed and
// leased in one transaction, published with no transaction open, then marked in a second one.
// A crash after the lease leaves them queued until leaseDuration has passed.
func (r *NotificationRelay) RunOnce(ctx context.Context) (int, error) {
	now := r.clock.Now()
	var jobs []shared.NotificationJob
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed, err := tx.Notifications().ClaimDue(ctx, now, r.cfg.BatchSize)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, len(claimed))
		for i, job := range claimed {
			ids[i] = job.ID
		}
		jobs = claimed
		return tx.Notifications().Lease(ctx, ids, now.Add(leaseDuration))
	})
	if err != nil || len(jobs) == 0 {
		return 0, err
	}

	failures := make([]error, len(jobs))
	for i, job := range jobs {
		failures[i] = r.publisher.Publish(ctx, job)
	}

	sent := 0
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		for i, job := range jobs {
			if markErr := r.settle(ctx, tx, job, failures[i], now); markErr != nil {
				return markErr
			}
			if failures[i] == nil {
				sent++
			}
		}
		return nil
	})
	return sent, err
}

func (r *NotificationRelay) settle(ctx context.Context, tx shared.Tx, job shared.NotificationJob, pubErr error, now time.Time) error {
	switch {
	case pubErr == nil:
		return tx.Notifications().MarkSent(ctx, job.ID, now)
	case job.Attempts+1 >= r.cfg.MaxAttempts:
		slog.Error("notification job failed permanently",
			"job_id", job.ID.String(), "kind", job.Kind, "attempts", job.Attempts+1, "error", pubErr.Error())
		return tx.Notifications().MarkFailed(ctx, job.ID, pubErr.Error(), now)
	default:
		slog.Warn("notification publish failed, rescheduling",
			"job_id", job.ID.String(), "kind", job.Kind, "attempts", job.Attempts+1, "error", pubErr.Error())
		return tx.Notifications().MarkRetry(ctx, job.ID, pubErr.Error(), now.Add(RetryDelay(r.cfg.Interval, job.Attempts+1)))
	}
}

// RetryDelay doubles base per attempt, capped at five minutes.
func RetryDelay(base time.Duration, attempts int) time.Duration {
	d := base
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return min(d, maxRetryDelay)
}
