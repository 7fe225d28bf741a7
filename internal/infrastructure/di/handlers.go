package di

import (
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health      *handler.HealthHandler
	ActivityLog *handler.ActivityLogHandler
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	// Health Handler
	healthHandler := handler.NewHealthHandler()
	if c.PgClient != nil {
		healthHandler.RegisterChecker("postgres", c.PgClient)
	}
	if c.SQLiteClient != nil {
		healthHandler.RegisterChecker("sqlite", c.SQLiteClient)
	}
	if c.RedisClient != nil {
		healthHandler.RegisterChecker("redis", c.RedisClient)
	}

	return &Handlers{
		Health:      healthHandler,
		ActivityLog: newActivityLogHandler(c),
	}
}

func newActivityLogHandler(c *Container) *handler.ActivityLogHandler {
	return handler.NewActivityLogHandler(
		c.ActivityLog.LogActivity,
		c.ActivityLog.DeleteActivityLogs,
		c.ActivityLog.ListActivityLogs,
	)
}
