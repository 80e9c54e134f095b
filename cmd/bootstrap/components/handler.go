package components

import (
	"hostel-backoffice/internal/handler"
	"hostel-backoffice/internal/handler/api"
	"hostel-backoffice/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewUserHandler,
		api.NewRoomHandler,
		api.NewReservationHandler,
		api.NewResourceHandler,
		api.NewWeatherHandler,
		api.NewContactHandler,
		api.NewDashboardHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
