package middleware

import (
	"net/http" // HTTP status codes
	"strconv"  // Retry-After header
	"time"     // Window length

	"storefront/internal/utils" // Rate limiter

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// RateLimitMiddleware allows limit requests per window per client IP for the
// routes it guards. A nil Redis client disables it.
func RateLimitMiddleware(rdb *redis.Client, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + name + ":" + c.ClientIP() // One counter per route group and client
		allowed, err := utils.AllowRequest(c.Request.Context(), rdb, key, limit, window)
		if err != nil {
			// Fail open when Redis is unavailable
			logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Rate limiter unavailable")
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, try again later"})
			return
		}
		c.Next()
	}
}
