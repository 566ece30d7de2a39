package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/devconnector/internal/interface/middleware"
)

// Limiter builds a rate limit middleware for one route or group. An optional
// AllowFunc lets matching callers bypass the limit.
type Limiter func(max int, window time.Duration, key middleware.KeyFunc, allow ...middleware.AllowFunc) gin.HandlerFunc

// NewLimiter returns a Redis backed limiter, an in-process one when rdb is
// nil, or a pass-through when limiting is disabled.
func NewLimiter(rdb *redis.Client, enabled bool) Limiter {
	if !enabled {
		return func(int, time.Duration, middleware.KeyFunc, ...middleware.AllowFunc) gin.HandlerFunc {
			return func(c *gin.Context) { c.Next() }
		}
	}
	return func(max int, window time.Duration, key middleware.KeyFunc, allow ...middleware.AllowFunc) gin.HandlerFunc {
		var bypass middleware.AllowFunc
		if len(allow) > 0 {
			bypass = allow[0]
		}
		return middleware.RateLimit(rdb, max, window, key, bypass)
	}
}
