package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/core/service"
	"github.com/martijn/lexdesk/internal/observability/logger"
)

const (
	AuthHeaderKey     = "Authorization"
	SessionContextKey = "session"
)

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, dto.ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}

// AuthMiddleware validates the bearer token and places the session on the context
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get authorization header
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		// Check if it's a Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, http.StatusUnauthorized, "Invalid authorization header format. Expected 'Bearer <token>'")
			return
		}

		session, err := authService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		SetSession(c, session)
		ctx := c.Request.Context()
		ctx = logger.ToContext(ctx, logger.From(ctx).With(
			logger.Subject(session.Subject),
			logger.OwnerID(session.OwnerID),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// SetSession stores the authenticated caller
func SetSession(c *gin.Context, session *service.Session) {
	c.Set(SessionContextKey, session)
}

// GetSession retrieves the authenticated caller from context
func GetSession(c *gin.Context) (*service.Session, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}

	session, ok := value.(*service.Session)
	return session, ok && session != nil
}

// RequireScope rejects sessions whose scopes do not cover resource.
func RequireScope(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if !session.HasScope(resource) {
			abortWithError(c, http.StatusForbidden, "Token scope does not cover "+resource)
			return
		}
		c.Next()
	}
}

// RequireAdmin allows only signed-in users with the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if !session.IsAdmin() {
			abortWithError(c, http.StatusForbidden, "Administrator access required")
			return
		}
		c.Next()
	}
}
