package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/di"
)

// ActivityLogBasePath はアクティビティログAPIのベースパスです
const ActivityLogBasePath = "/api/v1/activity-log"

// Router はルート定義を管理します
type Router struct {
	echo        *echo.Echo
	handlers    *di.Handlers
	middlewares *di.Middlewares
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers, middlewares *di.Middlewares) *Router {
	return &Router{
		echo:        e,
		handlers:    handlers,
		middlewares: middlewares,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupActivityLogRoutes()
}

// setupHealthRoutes はヘルスチェックルートを設定します
func (r *Router) setupHealthRoutes() {
	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// setupActivityLogRoutes はアクティビティログ関連ルートを設定します
// 末尾スラッシュの有無どちらでも到達できるよう両方登録します
func (r *Router) setupActivityLogRoutes() {
	var mws []echo.MiddlewareFunc
	if r.middlewares != nil && r.middlewares.RateLimit.Enabled() {
		mws = append(mws, r.middlewares.RateLimit.ByIP())
	}

	g := r.echo.Group(ActivityLogBasePath, mws...)
	for _, path := range []string{"", "/"} {
		g.POST(path, r.handlers.ActivityLog.LogActivity)
		g.GET(path, r.handlers.ActivityLog.ListActivityLogs)
		g.DELETE(path, r.handlers.ActivityLog.DeleteActivityLogs)
	}
}
