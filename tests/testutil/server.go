package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/di"
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/router"
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/server"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/config"
)

// TestServer holds all test server dependencies
type TestServer struct {
	Echo      *echo.Echo
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	BunDB     *bun.DB
	Container *di.Container
}

// TestServerOption customizes the configuration used by a test server
type TestServerOption func(cfg *config.Config)

// WithRateLimit sets the rate limit used by a test server
func WithRateLimit(requests int, window time.Duration) TestServerOption {
	return func(cfg *config.Config) {
		cfg.RateLimit.Requests = requests
		cfg.RateLimit.Window = window
	}
}

// NewTestConfig returns the configuration shared by test servers
func NewTestConfig(driver string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0},
		Store: config.StoreConfig{
			Driver:         driver,
			MigrateOnStart: true,
		},
		RateLimit: config.RateLimitConfig{
			Requests: 1000,
			Window:   time.Minute,
		},
		Security: config.SecurityConfig{
			CORSOrigins: []string{"*"},
		},
		Log: config.LogConfig{Level: "error", Format: "json"},
	}
}

// NewTestServer creates a test server backed by PostgreSQL and Redis
func NewTestServer(t *testing.T, opts ...TestServerOption) *TestServer {
	t.Helper()

	pool, redisClient := SetupTestEnvironment(t)

	cfg := NewTestConfig(config.StoreDriverPostgres)
	for _, opt := range opts {
		opt(cfg)
	}

	container, err := di.NewContainerWithOptions(context.Background(), cfg, di.Options{
		PostgresPool: pool,
		RedisClient:  redisClient,
	})
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	return &TestServer{
		Echo:      newEcho(container),
		Pool:      pool,
		Redis:     redisClient,
		Container: container,
	}
}

// NewSQLiteTestServer creates a test server backed by a private in-memory SQLite database
// Rate limiting is disabled because no Redis client is configured
func NewSQLiteTestServer(t *testing.T, opts ...TestServerOption) *TestServer {
	t.Helper()

	db := NewTestSQLiteDB(t)

	cfg := NewTestConfig(config.StoreDriverSQLite)
	for _, opt := range opts {
		opt(cfg)
	}

	container, err := di.NewContainerWithOptions(context.Background(), cfg, di.Options{
		BunDB: db,
	})
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	return &TestServer{
		Echo:      newEcho(container),
		BunDB:     db,
		Container: container,
	}
}

func newEcho(container *di.Container) *echo.Echo {
	srv := server.NewServer(server.DefaultConfig())
	router.NewRouter(srv.Echo(), di.NewHandlers(container), di.NewMiddlewares(container)).Setup()
	return srv.Echo()
}

// Cleanup resets stored data between tests
func (s *TestServer) Cleanup(t *testing.T) {
	t.Helper()

	if s.Pool != nil {
		TruncateTables(t, s.Pool, "activity_logs")
	}
	if s.Redis != nil {
		FlushRedis(t, s.Redis)
	}
	if s.BunDB != nil {
		if _, err := s.BunDB.NewDelete().TableExpr("activity_logs").Where("1 = 1").Exec(context.Background()); err != nil {
			t.Fatalf("Failed to clear activity_logs: %v", err)
		}
	}
}
