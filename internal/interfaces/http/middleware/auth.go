package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vigil/internal/domain/access"
	"vigil/internal/infrastructure/auth"
	"vigil/internal/shared/logger"
	"vigil/internal/shared/utils"
)

// Context keys set by the middleware chain.
const (
	ContextKeyPrincipal = "principal"
	ContextKeyHandle    = "handle"
	ContextKeyAdmin     = "is_admin"
	ContextKeyEventID   = "event_id"
	ContextKeyEventName = "event_name"
)

// AdminChecker reports whether a handle holds the admin role.
type AdminChecker interface {
	IsAdmin(handle string) (bool, error)
}

type AuthMiddleware struct {
	jwtService *auth.JWTService
	admins     AdminChecker
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, admins AdminChecker, log logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		admins:     admins,
		logger:     log,
	}
}

// RequireAuth verifies the bearer token and stores the request principal.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		isAdmin := claims.Admin
		if m.admins != nil {
			// The role store is authoritative; the claim alone is not
			// enough.
			granted, err := m.admins.IsAdmin(claims.Subject)
			if err != nil {
				m.logger.Errorw("failed to check admin role", "handle", claims.Subject, "error", err)
				granted = false
			}
			isAdmin = isAdmin && granted
		}

		c.Set(ContextKeyPrincipal, auth.Principal(claims))
		c.Set(ContextKeyHandle, claims.Subject)
		c.Set(ContextKeyAdmin, isAdmin)

		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, or nil.
func PrincipalFromContext(c *gin.Context) *access.Principal {
	v, ok := c.Get(ContextKeyPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*access.Principal)
	return p
}

// HandleFromContext returns the authenticated handle, or empty.
func HandleFromContext(c *gin.Context) string {
	return c.GetString(ContextKeyHandle)
}

// IsAdminFromContext reports whether the request principal is an admin.
func IsAdminFromContext(c *gin.Context) bool {
	return c.GetBool(ContextKeyAdmin)
}
