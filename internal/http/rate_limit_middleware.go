package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"metizcare/internal/metrics"
	"metizcare/internal/service"
)

// RateLimitByIP corta con 429 cuando la IP del cliente supera el limite del scope.
func RateLimitByIP(limiter service.RateLimiter, scope string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			metrics.RateLimited.WithLabelValues(scope).Inc()
			logger.Warn("rate limited", zap.String("scope", scope), zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
			return
		}
		c.Next()
	}
}
