package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/adapter/ratelimit"
	"github.com/martijn/lexdesk/internal/observability/logger"
	"github.com/martijn/lexdesk/internal/observability/metrics"
)

// RateLimit limits requests per client IP and route. Limiter failures let the
// request through.
func RateLimit(limiter ratelimit.Limiter, route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		res, err := limiter.Allow(c.Request.Context(), route+":"+c.ClientIP())
		if err != nil {
			logger.From(c.Request.Context()).Warn("rate limiter unavailable", logger.Err(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		if !res.Allowed {
			retry := int(math.Ceil(res.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			metrics.ObserveRateLimited(route)
			abortWithError(c, http.StatusTooManyRequests, "Too many attempts, try again later")
			return
		}

		c.Next()
	}
}
