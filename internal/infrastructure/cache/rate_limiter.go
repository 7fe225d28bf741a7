package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitResult はレート制限チェックの結果を表します
type RateLimitResult struct {
	Allowed   bool      // リクエストが許可されたか
	Limit     int       // ウィンドウ内の最大リクエスト数
	Remaining int       // 残りリクエスト数
	ResetAt   time.Time // リセット時刻
	RetryAt   time.Time // リトライ可能時刻（拒否された場合）
}

// RateLimitConfig はレート制限の設定を定義します
type RateLimitConfig struct {
	Type     string        // 制限タイプ
	Requests int           // ウィンドウ内の最大リクエスト数
	Window   time.Duration // ウィンドウサイズ
}

// RateLimitTypeActivityLog はアクティビティログAPIの制限タイプです
const RateLimitTypeActivityLog = "api:activity-log"

// NewActivityLogRateLimitConfig はアクティビティログAPI用の設定を作成します
func NewActivityLogRateLimitConfig(requests int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Type:     RateLimitTypeActivityLog,
		Requests: requests,
		Window:   window,
	}
}

// RateLimiter はレート制限を提供します
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter は新しいRateLimiterを作成します
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Sliding Window Log アルゴリズムを使用したレート制限
// Luaスクリプトでアトミックに処理（時刻・ウィンドウはミリ秒）
var slidingWindowScript = redis.NewScript(`
    local key = KEYS[1]
    local now = tonumber(ARGV[1])
    local window = tonumber(ARGV[2])
    local limit = tonumber(ARGV[3])

    -- 古いエントリを削除
    redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

    -- 現在のカウントを取得
    local count = redis.call('ZCARD', key)

    if count < limit then
        -- リクエストを記録
        redis.call('ZADD', key, now, now .. ':' .. math.random())
        redis.call('PEXPIRE', key, window)
        return {1, limit - count - 1, now + window}
    else
        -- 最も古いエントリの時刻を取得
        local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
        local retry_at = tonumber(oldest[2]) + window
        return {0, 0, retry_at}
    end
`)

// Allow はリクエストが許可されるかチェックします
func (r *RateLimiter) Allow(ctx context.Context, identifier string, config RateLimitConfig) (*RateLimitResult, error) {
	key := RateLimitKey(config.Type, identifier)
	now := time.Now().UnixMilli()

	result, err := slidingWindowScript.Run(ctx, r.client, []string{key}, now, config.Window.Milliseconds(), config.Requests).Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if len(result) != 3 {
		return nil, fmt.Errorf("unexpected rate limit result: %v", result)
	}

	allowed := toInt64(result[0]) == 1
	remaining := int(toInt64(result[1]))
	resetAt := time.UnixMilli(toInt64(result[2]))

	res := &RateLimitResult{
		Allowed:   allowed,
		Limit:     config.Requests,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
	if !allowed {
		res.RetryAt = resetAt
	}
	return res, nil
}

// Reset はレート制限をリセットします
func (r *RateLimiter) Reset(ctx context.Context, identifier string, config RateLimitConfig) error {
	if err := r.client.Del(ctx, RateLimitKey(config.Type, identifier)).Err(); err != nil {
		return fmt.Errorf("failed to delete rate limit key: %w", err)
	}
	return nil
}

// toInt64 はLuaスクリプトの戻り値を整数に変換します
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}
