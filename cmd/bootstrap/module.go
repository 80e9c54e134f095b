package bootstrap

import (
	"hostel-backoffice/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	components.ClockModule,
	StoreModule,
	JWTModule,
	CacheModule,
	components.UseCaseModule,
	components.HandlerModule,
	WorkerModule,
)
