package components

import (
	"log/slog"

	"hostel-backoffice/internal/domain/stock"
	"hostel-backoffice/internal/pkg/clock"
	"hostel-backoffice/internal/pkg/config"
	"hostel-backoffice/internal/usecase"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/queries"

	"go.uber.org/fx"
)

var ClockModule = fx.Module("clock",
	fx.Provide(
		clock.NewRealClock,
	),
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	NewLedger,
)

// NewLedger reads LEDGER_NEGATIVE_STOCK_POLICY; an empty value means allow.
func NewLedger(cfg config.Config, logger *slog.Logger) (*stock.Ledger, error) {
	policy, err := stock.NewNegativeStockPolicy(cfg.Ledger.NegativeStockPolicy)
	if err != nil {
		return nil, err
	}
	ledger := stock.NewLedger(policy)
	logger.Info("stock ledger ready", "negative_stock_policy", string(ledger.Policy()))
	return ledger, nil
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewUserCommands,
		commands.NewRoomCommands,
		commands.NewReservationCommands,
		commands.NewResourceCommands,
		commands.NewWeatherCommands,
		commands.NewContactCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewRoomQueries,
		queries.NewReservationQueries,
		queries.NewResourceQueries,
		queries.NewWeatherQueries,
		queries.NewContactQueries,
		queries.NewDashboardQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
