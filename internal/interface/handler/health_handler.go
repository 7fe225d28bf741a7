package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tsekovTriesCoding/activity-log-service/pkg/logger"
)

// readyCheckTimeout は1依存先あたりのレディネスチェックのタイムアウトです
const readyCheckTimeout = 3 * time.Second

// HealthChecker はヘルスチェックを実行するインターフェースです
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler はヘルスチェック関連のHTTPハンドラーです
type HealthHandler struct {
	checkers map[string]HealthChecker
}

// NewHealthHandler は新しいHealthHandlerを作成します
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
	}
}

// RegisterChecker はヘルスチェッカーを登録します
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// CheckFuncs は登録済みチェッカーを関数として返します（定期ヘルスチェックジョブ用）
func (h *HealthHandler) CheckFuncs() map[string]func(ctx context.Context) error {
	funcs := make(map[string]func(ctx context.Context) error, len(h.checkers))
	for name, checker := range h.checkers {
		funcs[name] = checker.Health
	}
	return funcs
}

// HealthResponse はヘルスチェックレスポンスを定義します
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse はレディネスチェックレスポンスを定義します
type ReadyResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services,omitempty"`
}

// ServiceStatus は依存先ごとのチェック結果を定義します
type ServiceStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// Check はライブネスチェックを実行します
// GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// Ready はレディネスチェックを実行します
// 登録済みの依存先（ストア、Redis）を並行してpingし、1つでも失敗すれば503を返します
// GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	checks := h.CheckFuncs()
	results := make(chan namedStatus, len(checks))

	for name, check := range checks {
		go func(name string, check func(ctx context.Context) error) {
			results <- namedStatus{name: name, status: runCheck(ctx, name, check)}
		}(name, check)
	}

	resp := ReadyResponse{
		Status:   "ready",
		Services: make(map[string]ServiceStatus, len(checks)),
	}
	statusCode := http.StatusOK
	for range checks {
		r := <-results
		resp.Services[r.name] = r.status
		if r.status.Status != "healthy" {
			resp.Status = "not_ready"
			statusCode = http.StatusServiceUnavailable
		}
	}

	return c.JSON(statusCode, resp)
}

type namedStatus struct {
	name   string
	status ServiceStatus
}

// runCheck はタイムアウト付きでチェックを1件実行します
func runCheck(ctx context.Context, name string, check func(ctx context.Context) error) ServiceStatus {
	checkCtx, cancel := context.WithTimeout(ctx, readyCheckTimeout)
	defer cancel()

	start := time.Now()
	err := check(checkCtx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		logger.Warn(ctx, "readiness check failed", "dependency", name, "error", err)
		return ServiceStatus{Status: "unhealthy", Message: err.Error(), LatencyMS: latency}
	}
	return ServiceStatus{Status: "healthy", LatencyMS: latency}
}
