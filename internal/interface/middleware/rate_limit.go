package middleware

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/cache"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/apperror"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/logger"
)

// レート制限ヘッダー
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// Limiter はレート制限の判定を行うインターフェースです
type Limiter interface {
	Allow(ctx context.Context, identifier string, config cache.RateLimitConfig) (*cache.RateLimitResult, error)
}

// RateLimitMiddleware はレート制限ミドルウェアを提供します
type RateLimitMiddleware struct {
	limiter Limiter
	config  cache.RateLimitConfig
}

// NewRateLimitMiddleware は新しいRateLimitMiddlewareを作成します
// limiterがnilの場合はレート制限を行いません
func NewRateLimitMiddleware(limiter Limiter, config cache.RateLimitConfig) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		config:  config,
	}
}

// Enabled はレート制限が有効かを返します
func (m *RateLimitMiddleware) Enabled() bool {
	return m != nil && m.limiter != nil
}

// ByIP はIPアドレスでレート制限するミドルウェアを返します
func (m *RateLimitMiddleware) ByIP() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !m.Enabled() {
			return next
		}
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			identifier := c.RealIP()

			result, err := m.limiter.Allow(ctx, identifier, m.config)
			if err != nil {
				// レート制限チェックに失敗した場合はリクエストを許可
				logger.Warn(ctx, "rate limit check failed", "ip", identifier, "error", err)
				return next(c)
			}

			// レスポンスヘッダーを設定
			setRateLimitHeaders(c, result)

			if !result.Allowed {
				return apperror.NewTooManyRequestsError("rate limit exceeded")
			}

			return next(c)
		}
	}
}

// setRateLimitHeaders はレート制限ヘッダーを設定します
func setRateLimitHeaders(c echo.Context, result *cache.RateLimitResult) {
	h := c.Response().Header()
	h.Set(HeaderRateLimitLimit, strconv.Itoa(result.Limit))
	h.Set(HeaderRateLimitRemaining, strconv.Itoa(result.Remaining))
	h.Set(HeaderRateLimitReset, strconv.FormatInt(result.ResetAt.Unix(), 10))
}
