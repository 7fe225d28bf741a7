package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/entity"
	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/repository"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/logger"
)

// ListActivityLogsInput はアクティビティログ一覧取得の入力を定義します
type ListActivityLogsInput struct {
	UserID uuid.UUID
}

// ListActivityLogsOutput はアクティビティログ一覧取得の出力を定義します
type ListActivityLogsOutput struct {
	// ActivityLogs は作成日時の降順に並んだ未削除ログです（該当なしの場合は空スライス）
	ActivityLogs []*entity.ActivityLog
}

// ListActivityLogsQuery はアクティビティログ一覧取得クエリです
type ListActivityLogsQuery struct {
	activityLogRepo repository.ActivityLogRepository
}

// NewListActivityLogsQuery は新しいListActivityLogsQueryを作成します
func NewListActivityLogsQuery(activityLogRepo repository.ActivityLogRepository) *ListActivityLogsQuery {
	return &ListActivityLogsQuery{
		activityLogRepo: activityLogRepo,
	}
}

// Execute はユーザーの未削除ログを新しい順に取得します
func (q *ListActivityLogsQuery) Execute(ctx context.Context, input ListActivityLogsInput) (*ListActivityLogsOutput, error) {
	logs, err := q.activityLogRepo.FindByUserID(ctx, input.UserID, repository.ActivityLogFilter{
		ExcludeDeleted:       true,
		OrderByCreatedOnDesc: true,
	})
	if err != nil {
		return nil, err
	}

	if logs == nil {
		logs = []*entity.ActivityLog{}
	}

	logger.Debug(ctx, "activity logs listed", "user_id", input.UserID.String(), "count", len(logs))

	return &ListActivityLogsOutput{ActivityLogs: logs}, nil
}
