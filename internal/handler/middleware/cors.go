package middleware

import (
	"log/slog"
	"slices"

	"hostel-backoffice/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Location carries the URL of a created reservation; the front office reads it cross-origin.
var alwaysExposed = []string{"Location"}

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	for _, h := range alwaysExposed {
		if !slices.Contains(corsCfg.ExposeHeaders, h) {
			corsCfg.ExposeHeaders = append(corsCfg.ExposeHeaders, h)
		}
	}

	// Browsers refuse credentialed responses to a wildcard origin, so "*" turns credentials off.
	if slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
		if corsCfg.AllowCredentials {
			slog.Warn("CORS wildcard origin configured; session cookies will not be sent cross-origin")
			corsCfg.AllowCredentials = false
		}
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}

	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins, "credentials", corsCfg.AllowCredentials)
	return cors.New(corsCfg)
}
