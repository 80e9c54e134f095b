package bootstrap

import (
	"context"
	"log/slog"

	"hostel-backoffice/internal/infra/db"
	"hostel-backoffice/internal/infra/memstore"
	"hostel-backoffice/internal/infra/uow"
	"hostel-backoffice/internal/pkg/config"
	"hostel-backoffice/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork picks the backing store from STORE_DRIVER.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("using in-memory store; data is lost on restart")
		return memstore.New(), nil
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return uow.NewPostgresUoW(pool), nil
}
