package bootstrap

import (
	"log/slog"

	"hostel-backoffice/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logEffectiveConfig),
)

// logEffectiveConfig records the switches that change behaviour rather than just endpoints.
func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"store", cfg.Store.Driver,
		"dashboard_cache", cfg.Redis.Addr != "",
		"notification_relay", cfg.AMQP.URL != "",
	)
}
