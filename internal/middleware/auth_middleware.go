package middleware

import (
	"strings"

	"workhub-service/internal/domain/identity"
	xerrors "workhub-service/internal/pkg/errors"
	"workhub-service/internal/pkg/response"
	"workhub-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type AuthMiddleware struct {
	authService *auth.AuthService
}

func NewAuthMiddleware(authService *auth.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Auth resolves the bearer token to its identity and stores it on the
// request context. Every check round-trips the store; there is no
// in-process cache of session validity.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.FromError(c, xerrors.ErrUnauthenticated)
			return
		}

		id, err := m.authService.ResolveToken(c.Request.Context(), token)
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// RequirePermission admits the request if the caller's role grants ANY of
// the given permissions. MUST be used after Auth().
func (m *AuthMiddleware) RequirePermission(perms ...identity.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			response.FromError(c, xerrors.ErrUnauthenticated)
			return
		}

		if !id.Role.HasAnyPermission(perms...) {
			response.FromError(c, xerrors.ErrForbidden)
			return
		}

		c.Next()
	}
}

// WithPermission bundles Auth + RequirePermission for route registration.
func (m *AuthMiddleware) WithPermission(perms ...identity.Permission) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequirePermission(perms...),
	}
}

// extractToken pulls the bearer token from the Authorization header, with
// a query-param fallback for websocket upgrades.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	return c.Query("token")
}
