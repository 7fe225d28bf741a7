package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/repository"
	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/cache"
	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/database"
	infraRepo "github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/repository"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/config"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/logger"
)

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient     *database.PostgresClient
	SQLiteClient *database.SQLiteClient
	BunDB        *bun.DB
	RedisClient  *cache.RedisClient
	TxManager    *database.TxManager

	// Services
	RateLimiter *cache.RateLimiter

	// Repositories
	ActivityLogRepo repository.ActivityLogRepository

	// ActivityLog UseCases
	ActivityLog *ActivityLogUseCases

	// 外部から渡された接続はCloseしない
	ownsPostgres bool
	ownsSQLite   bool

	// config
	config *config.Config
}

// Options はContainer作成時のオプションを定義します
type Options struct {
	PostgresPool *pgxpool.Pool
	BunDB        *bun.DB
	RedisClient  *redis.Client
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		config: cfg,
	}

	// Store
	var err error
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		err = c.initSQLite(ctx, opts.BunDB)
	default:
		err = c.initPostgres(ctx, opts.PostgresPool)
	}
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	// Redis（URL未設定の場合はレート制限なし）
	if err := c.initRedis(ctx, cfg.Redis.URL, opts.RedisClient); err != nil {
		_ = c.Close()
		return nil, err
	}

	// UseCases
	c.ActivityLog = NewActivityLogUseCases(c.ActivityLogRepo)

	return c, nil
}

// initPostgres はPostgreSQLストアを初期化します
func (c *Container) initPostgres(ctx context.Context, pool *pgxpool.Pool) error {
	if pool != nil {
		c.PgClient = database.NewPostgresClientFromPool(pool)
	} else {
		logger.Info(ctx, "connecting to PostgreSQL...")
		pgClient, err := database.NewPostgresClient(ctx, c.config.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		c.ownsPostgres = true
		logger.Info(ctx, "connected to PostgreSQL")
	}

	if c.config.Store.MigrateOnStart {
		migrator, err := database.NewMigrator(c.PgClient)
		if err != nil {
			return err
		}
		if err := migrator.Up(ctx); err != nil {
			return err
		}
		logger.Info(ctx, "database migrations applied")
	}

	c.TxManager = database.NewTxManager(c.PgClient.Pool())
	c.ActivityLogRepo = infraRepo.NewActivityLogRepository(c.TxManager)
	return nil
}

// initSQLite はSQLiteストアを初期化します
func (c *Container) initSQLite(ctx context.Context, db *bun.DB) error {
	if db != nil {
		c.SQLiteClient = database.NewSQLiteClientFromDB(db)
	} else {
		logger.Info(ctx, "opening SQLite...", "dsn", c.config.SQLite.DSN)
		client, err := database.NewSQLiteClient(ctx, c.config.SQLite.DSN)
		if err != nil {
			return fmt.Errorf("failed to open SQLite: %w", err)
		}
		c.SQLiteClient = client
		c.ownsSQLite = true
	}
	c.BunDB = c.SQLiteClient.DB()

	repo := infraRepo.NewBunActivityLogRepository(c.BunDB)
	if c.config.Store.MigrateOnStart {
		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to create SQLite schema: %w", err)
		}
	}

	c.ActivityLogRepo = repo
	return nil
}

// initRedis はRedisとレート制限を初期化します
func (c *Container) initRedis(ctx context.Context, url string, client *redis.Client) error {
	if client != nil {
		c.RateLimiter = cache.NewRateLimiter(client)
		return nil
	}
	if url == "" {
		logger.Info(ctx, "REDIS_URL not set, rate limiting disabled")
		return nil
	}

	redisClient, err := cache.NewRedisClient(ctx, cache.DefaultConfig(url))
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	c.RedisClient = redisClient
	c.RateLimiter = redisClient.RateLimiter()
	logger.Info(ctx, "connected to Redis, rate limiting enabled",
		"requests", c.config.RateLimit.Requests,
		"window", c.config.RateLimit.Window.String(),
	)
	return nil
}

// Config は設定を返します
func (c *Container) Config() *config.Config {
	return c.config
}

// Close はリソースをクリーンアップします
func (c *Container) Close() error {
	var errs []error

	if c.PgClient != nil && c.ownsPostgres {
		c.PgClient.Close()
	}

	if c.SQLiteClient != nil && c.ownsSQLite {
		if err := c.SQLiteClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close SQLite: %w", err))
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	return errors.Join(errs...)
}
