package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"hostel-backoffice/internal/handler/api"
	"hostel-backoffice/internal/handler/middleware"
	"hostel-backoffice/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Auth         *api.AuthHandler
	Users        *api.UserHandler
	Rooms        *api.RoomHandler
	Reservations *api.ReservationHandler
	Resources    *api.ResourceHandler
	Weather      *api.WeatherHandler
	Contact      *api.ContactHandler
	Dashboard    *api.DashboardHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	adminOnly := []gin.HandlerFunc{requireAuth, authMiddleware.RequireAdministrator()}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me, Mw: []gin.HandlerFunc{requireAuth}},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/dashboard", Handler: h.Dashboard.Get, Mw: []gin.HandlerFunc{requireAuth}},
		})

		users := apiGroup.Group("/users")
		users.Use(adminOnly...)
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Users.List},
				{Method: http.MethodPost, Path: "", Handler: h.Users.Create},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Users.Delete},
			})
		}

		rooms := apiGroup.Group("/rooms")
		rooms.Use(requireAuth)
		{
			adminWrite := []gin.HandlerFunc{authMiddleware.RequireAdministrator()}
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Rooms.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Rooms.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Rooms.Create, Mw: adminWrite},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Rooms.Update, Mw: adminWrite},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Rooms.Delete, Mw: adminWrite},
			})
		}

		// Ownership checks for clients live in the usecases.
		reservations := apiGroup.Group("/reservations")
		reservations.Use(requireAuth)
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservations.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Reservations.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservations.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Reservations.Update},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Reservations.ChangeStatus},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservations.Delete, Mw: []gin.HandlerFunc{authMiddleware.RequireAdministrator()}},
			})
		}

		resources := apiGroup.Group("/resources")
		resources.Use(adminOnly...)
		{
			addRoutes(resources, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Resources.List},
				{Method: http.MethodPost, Path: "", Handler: h.Resources.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Resources.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Resources.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Resources.Delete},
				{Method: http.MethodPost, Path: "/:id/movements", Handler: h.Resources.RecordMovement},
				{Method: http.MethodGet, Path: "/:id/movements", Handler: h.Resources.Movements},
				{Method: http.MethodGet, Path: "/:id/reconciliation", Handler: h.Resources.Reconcile},
			})
		}

		weather := apiGroup.Group("/weather")
		{
			addRoutes(weather, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Weather.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Weather.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Weather.Create, Mw: adminOnly},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Weather.Update, Mw: adminOnly},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Weather.Delete, Mw: adminOnly},
			})
		}

		contact := apiGroup.Group("/contact")
		{
			addRoutes(contact, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Contact.Submit},
				{Method: http.MethodGet, Path: "", Handler: h.Contact.List, Mw: adminOnly},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw[:len(r.Mw):len(r.Mw)], r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
