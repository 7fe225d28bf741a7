package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tsekovTriesCoding/activity-log-service/pkg/logger"
)

// Logger はリクエストロギングミドルウェアを返します
func Logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// ステータスを確定させるためここでエラーハンドラーを呼ぶ
				c.Error(err)
			}

			latency := time.Since(start)

			// 構造化ログ出力（request_idはコンテキストから付与される）
			logger.Info(c.Request().Context(), "request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"latency_ms", latency.Milliseconds(),
				"ip", c.RealIP(),
				"user_agent", c.Request().UserAgent(),
				"bytes_in", c.Request().ContentLength,
				"bytes_out", c.Response().Size,
			)

			return nil
		}
	}
}
