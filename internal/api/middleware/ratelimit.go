package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pinswap/api/internal/api/handler/v1/response"
	"github.com/pinswap/api/internal/metrics"
	"github.com/pinswap/api/internal/pkg/ratelimit"
)

// RateLimit allows each client IP a fixed budget per window for the routes in
// scope. If the limiter itself fails the request is let through.
func RateLimit(limiter ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := scope + ":" + ctx.ClientIP()

		allowed, err := limiter.Allow(ctx.Request.Context(), key)
		if err != nil {
			zap.L().Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			ctx.Next()
			return
		}
		if !allowed {
			metrics.RateLimitedTotal.Inc()
			response.RenderErr(ctx, response.ErrTooManyRequests())
			return
		}

		ctx.Next()
	}
}
