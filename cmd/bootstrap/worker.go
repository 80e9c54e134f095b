package bootstrap

import (
	"context"
	"log/slog"

	"hostel-backoffice/internal/infra/messaging"
	"hostel-backoffice/internal/pkg/clock"
	"hostel-backoffice/internal/pkg/config"
	"hostel-backoffice/internal/usecase/shared"
	"hostel-backoffice/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(
		StartNotificationRelay,
	),
)

// StartNotificationRelay runs the outbox relay for the app's lifetime. Without AMQP_URL jobs
// accumulate in notification_jobs until a broker is configured.
func StartNotificationRelay(lc fx.Lifecycle, cfg config.Config, uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) {
	if cfg.AMQP.URL == "" {
		logger.Info("notification relay disabled: AMQP_URL is empty")
		return
	}

	publisher := messaging.NewPublisher(cfg.AMQP)
	relay := worker.NewNotificationRelay(uow, publisher, clk, cfg.Relay)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			relay.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			relay.Stop()
			return publisher.Close()
		},
	})
}
