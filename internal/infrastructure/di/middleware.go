package di

import (
	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/cache"
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/middleware"
)

// Middlewares はアプリケーションのミドルウェアを保持します
type Middlewares struct {
	RateLimit *middleware.RateLimitMiddleware
}

// NewMiddlewares はContainerから全てのミドルウェアを初期化します
func NewMiddlewares(c *Container) *Middlewares {
	// nilポインタをインターフェースに入れないよう明示的に分岐する
	var limiter middleware.Limiter
	if c.RateLimiter != nil {
		limiter = c.RateLimiter
	}

	rateLimitConfig := cache.NewActivityLogRateLimitConfig(c.config.RateLimit.Requests, c.config.RateLimit.Window)

	return &Middlewares{
		RateLimit: middleware.NewRateLimitMiddleware(limiter, rateLimitConfig),
	}
}
