package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config はレート制限用Redis接続の設定を定義します
type Config struct {
	URL          string // redis://[:password@]host:port/db
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PingTimeout  time.Duration
}

// DefaultConfig はurlに対するデフォルト設定を返します
// レート制限の判定はリクエスト経路上にあるため、タイムアウトは短めにする
func DefaultConfig(url string) Config {
	return Config{
		URL:          url,
		PoolSize:     20,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
		PingTimeout:  3 * time.Second,
	}
}

// RedisClient はRedis接続を管理します
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient はRedisへ接続し、疎通を確認したクライアントを返します
func NewRedisClient(ctx context.Context, cfg Config) (*RedisClient, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	opt.PoolSize = cfg.PoolSize
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// RateLimiter はこの接続を使うRateLimiterを返します
func (r *RedisClient) RateLimiter() *RateLimiter {
	return NewRateLimiter(r.client)
}

// Close はRedis接続を閉じます
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// Health はRedisの接続状態を確認します
func (r *RedisClient) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
