package middleware

import (
	"net/http"
	"strconv"

	"rentora/internal/redis"
	"rentora/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware throttles credential endpoints per client IP.
func RateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !isCredentialEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		result, err := limiter.AllowAuth(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis being down must not lock everyone out.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(result.ResetIn.Seconds())))
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limit exceeded", "RATE_LIMITED"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func isCredentialEndpoint(path string) bool {
	switch path {
	case "/api/v1/users/register", "/api/v1/users/login", "/api/v1/users/forgot-password", "/api/v1/users/reset-password":
		return true
	}
	return false
}
