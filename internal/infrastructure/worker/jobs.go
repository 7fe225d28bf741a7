package worker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tsekovTriesCoding/activity-log-service/pkg/logger"
)

// DefaultHealthCheckInterval はヘルスチェックジョブの既定の実行間隔です
const DefaultHealthCheckInterval = 5 * time.Minute

// CheckFunc は依存サービスの疎通確認関数です
type CheckFunc = func(ctx context.Context) error

// NewHealthCheckJob はストアやRedisの接続を定期的に確認するジョブを作成します
// 失敗した依存先はWarnログに出力し、まとめたエラーを返します
func NewHealthCheckJob(interval time.Duration, checks map[string]CheckFunc) Job {
	if interval <= 0 {
		interval = DefaultHealthCheckInterval
	}

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return Job{
		Name:     "health_check",
		Interval: interval,
		Fn: func(ctx context.Context) error {
			var errs []error
			for _, name := range names {
				if err := checks[name](ctx); err != nil {
					logger.Warn(ctx, "health check failed", "dependency", name, "error", err)
					errs = append(errs, fmt.Errorf("%s: %w", name, err))
				}
			}
			return errors.Join(errs...)
		},
	}
}
