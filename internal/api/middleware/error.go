package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/observability/logger"
	"go.uber.org/zap"
)

// ErrorHandlerMiddleware recovers panics and reports errors attached with
// c.Error that no handler answered.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.From(c.Request.Context()).Error("panic recovered",
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()
			logger.From(c.Request.Context()).Error("request failed", logger.Err(err.Err))
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
	}
}
