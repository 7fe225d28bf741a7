package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// SecurityHeadersConfig はセキュリティヘッダー設定を定義します
type SecurityHeadersConfig struct {
	EnableHSTS    bool
	HSTSMaxAge    int
	CSPDirectives string
}

// DefaultSecurityHeadersConfig はデフォルトセキュリティヘッダー設定を返します
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		EnableHSTS:    false,
		HSTSMaxAge:    31536000, // 1年
		CSPDirectives: "default-src 'none'; frame-ancestors 'none'",
	}
}

// SecurityHeaders はデフォルト設定のセキュリティヘッダーミドルウェアを返します
func SecurityHeaders() echo.MiddlewareFunc {
	return SecurityHeadersWithConfig(DefaultSecurityHeadersConfig())
}

// SecurityHeadersWithConfig は設定付きセキュリティヘッダーミドルウェアを返します
func SecurityHeadersWithConfig(cfg SecurityHeadersConfig) echo.MiddlewareFunc {
	hsts := "max-age=" + strconv.Itoa(cfg.HSTSMaxAge) + "; includeSubDomains"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// MIMEスニッフィング対策
			h.Set("X-Content-Type-Options", "nosniff")

			// クリックジャッキング対策
			h.Set("X-Frame-Options", "DENY")

			// HTTPS強制（本番環境）
			if cfg.EnableHSTS {
				h.Set("Strict-Transport-Security", hsts)
			}

			// CSP
			h.Set("Content-Security-Policy", cfg.CSPDirectives)

			// Referrer Policy
			h.Set("Referrer-Policy", "no-referrer")

			return next(c)
		}
	}
}
