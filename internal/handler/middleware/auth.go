package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/handler/httperr"
	"hostel-backoffice/internal/pkg/cookie"
	"hostel-backoffice/internal/usecase"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxActorKey = "actor"

var roleHierarchy = map[user.Role]int{
	user.RoleClient:        1,
	user.RoleAdministrator: 2,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// extractToken prefers the session cookie and falls back to a Bearer header.
func extractToken(c *gin.Context) string {
	if token := cookie.GetSessionToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	httperr.Abort(c, http.StatusUnauthorized, msg)
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "Access token required")
			return
		}

		actor, err := m.tokenValidator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

func setActor(c *gin.Context, actor shared.Actor) {
	c.Set(ctxActorKey, actor)
	c.Set("jwt_claims", map[string]any{
		"user_id": actor.UserID.String(),
		"role":    string(actor.Role),
	})
}

func hasMinimumRole(userRole, minRole user.Role) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			resp := httperr.Internal()
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		if !hasMinimumRole(role, minRole) {
			httperr.Abort(c, http.StatusForbidden, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdministrator() gin.HandlerFunc {
	return m.RequireRoleAtLeast(user.RoleAdministrator)
}

func GetActor(c *gin.Context) (shared.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return shared.Actor{}, false
	}
	actor, ok := v.(shared.Actor)
	return actor, ok
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	actor, ok := GetActor(c)
	if !ok {
		return uuid.Nil, false
	}
	return actor.UserID, true
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	actor, ok := GetActor(c)
	if !ok {
		return "", false
	}
	return actor.Role, true
}
