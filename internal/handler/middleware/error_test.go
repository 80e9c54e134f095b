//go:build unit

package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"hostel-backoffice/internal/handler/httperr"
	"hostel-backoffice/internal/handler/middleware"
	"hostel-backoffice/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs swaps the default slog logger for one writing JSON lines into the returned buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/rooms", handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms", nil))
	return w
}

func TestErrorHandler(t *testing.T) {
	t.Run("server error is logged with its cause and stack", func(t *testing.T) {
		logs := captureLogs(t)

		w := serve(func(c *gin.Context) {
			resp := httperr.Internal()
			httperr.AbortWithError(c, resp.Status, errs.New("db down"), resp.Error.Message, nil)
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotEmpty(t, logs.String())
		var entry map[string]any
		require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
		assert.Equal(t, "request failed", entry["msg"])
		assert.Equal(t, "db down", entry["error"])
		assert.Equal(t, "/rooms", entry["path"])
		assert.NotEmpty(t, entry["stack"])
	})

	t.Run("client error is not logged", func(t *testing.T) {
		logs := captureLogs(t)

		w := serve(func(c *gin.Context) {
			httperr.AbortWithError(c, http.StatusConflict, errs.New("room number taken"), "Room already exists", nil)
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Empty(t, logs.String())
	})

	t.Run("recorded error without a body is replied from its meta", func(t *testing.T) {
		captureLogs(t)

		w := serve(func(c *gin.Context) {
			resp := httperr.NewResponse(http.StatusNotFound, "Room not found", nil)
			_ = c.Error(&gin.Error{Err: errs.New("missing"), Type: gin.ErrorTypePublic, Meta: resp})
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":{"message":"Room not found"}}`, w.Body.String())
	})

	t.Run("unrecorded failure falls back to internal error", func(t *testing.T) {
		captureLogs(t)

		w := serve(func(c *gin.Context) {
			_ = c.Error(errs.New("plain"))
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":{"message":"Internal server error"}}`, w.Body.String())
	})
}
