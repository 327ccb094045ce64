// internal/middleware/rate_limit.go
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/shopbot/internal/utils"
)

type RateLimiter struct {
	visitors *utils.KeyedLimiter[string]
}

// NewRateLimiter limits requests per client IP. Idle visitors are swept
// until ctx is done.
func NewRateLimiter(ctx context.Context, r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{visitors: utils.NewKeyedLimiter[string](r, b)}
	go rl.visitors.RunCleanup(ctx)
	return rl
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.visitors.Allow(c.ClientIP()) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
