package bootstrap

import (
	"log/slog"

	"hostel-backoffice/internal/handler/middleware"
	"hostel-backoffice/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger also installs the logger as slog's default, which the usecase and infra layers log through.
func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
