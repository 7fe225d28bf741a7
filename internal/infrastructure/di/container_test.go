package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraRepo "github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/repository"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/config"
)

func newSQLiteConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{
			Driver:         config.StoreDriverSQLite,
			MigrateOnStart: true,
		},
		SQLite: config.SQLiteConfig{DSN: "file::memory:"},
		RateLimit: config.RateLimitConfig{
			Requests: 5,
			Window:   time.Minute,
		},
	}
}

func TestNewContainer_SQLite(t *testing.T) {
	c, err := NewContainer(context.Background(), newSQLiteConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Nil(t, c.PgClient)
	assert.NotNil(t, c.SQLiteClient)
	assert.IsType(t, &infraRepo.BunActivityLogRepository{}, c.ActivityLogRepo)
	assert.Nil(t, c.RateLimiter)
	require.NotNil(t, c.ActivityLog)
	assert.NotNil(t, c.ActivityLog.LogActivity)
	assert.NotNil(t, c.ActivityLog.ListActivityLogs)
	assert.NotNil(t, c.ActivityLog.DeleteActivityLogs)
	assert.Same(t, c.config, c.Config())
}

func TestNewHandlers_RegistersStoreChecker(t *testing.T) {
	c, err := NewContainer(context.Background(), newSQLiteConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	handlers := NewHandlers(c)

	checks := handlers.Health.CheckFuncs()
	require.Contains(t, checks, "sqlite")
	assert.NotContains(t, checks, "postgres")
	assert.NotContains(t, checks, "redis")
	assert.NoError(t, checks["sqlite"](context.Background()))

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, handlers.Health.Ready(e.NewContext(httptest.NewRequest(http.MethodGet, "/ready", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewMiddlewares_WithoutRedis_RateLimitDisabled(t *testing.T) {
	c, err := NewContainer(context.Background(), newSQLiteConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	m := NewMiddlewares(c)

	assert.False(t, m.RateLimit.Enabled())
}

func TestNewContainer_UnreachableRedis_Fails(t *testing.T) {
	cfg := newSQLiteConfig()
	cfg.Redis.URL = "redis://127.0.0.1:1/0"

	c, err := NewContainer(context.Background(), cfg)

	assert.Error(t, err)
	assert.Nil(t, c)
}
