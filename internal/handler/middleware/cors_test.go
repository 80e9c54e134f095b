//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hostel-backoffice/internal/handler/middleware"
	"hostel-backoffice/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter(cfg config.CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(cfg))
	r.POST("/api/reservations", func(c *gin.Context) {
		c.Header("Location", "/api/reservations/1")
		c.Status(http.StatusCreated)
	})
	return r
}

func baseCORS() config.CORSConfig {
	return config.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}
}

func TestCORS(t *testing.T) {
	t.Run("listed origin gets credentials and the Location header", func(t *testing.T) {
		r := corsRouter(baseCORS())
		req := httptest.NewRequest(http.MethodPost, "/api/reservations", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Location")
	})

	t.Run("unknown origin is refused", func(t *testing.T) {
		r := corsRouter(baseCORS())
		req := httptest.NewRequest(http.MethodPost, "/api/reservations", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wildcard drops credentials", func(t *testing.T) {
		cfg := baseCORS()
		cfg.AllowOrigins = []string{"*"}
		r := corsRouter(cfg)
		req := httptest.NewRequest(http.MethodPost, "/api/reservations", nil)
		req.Header.Set("Origin", "http://anywhere.example")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
