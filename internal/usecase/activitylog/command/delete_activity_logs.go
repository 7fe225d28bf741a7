package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/repository"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/logger"
)

// DeleteActivityLogsInput はアクティビティログ削除の入力を定義します
type DeleteActivityLogsInput struct {
	UserID uuid.UUID
}

// DeleteActivityLogsOutput はアクティビティログ削除の出力を定義します
type DeleteActivityLogsOutput struct {
	// Deleted は今回1件以上を論理削除した場合にtrueです
	Deleted bool
	// DeletedCount は今回論理削除したログの件数です
	DeletedCount int
}

// DeleteActivityLogsCommand はユーザーのアクティビティログを論理削除するコマンドです
type DeleteActivityLogsCommand struct {
	activityLogRepo repository.ActivityLogRepository
}

// NewDeleteActivityLogsCommand は新しいDeleteActivityLogsCommandを作成します
func NewDeleteActivityLogsCommand(activityLogRepo repository.ActivityLogRepository) *DeleteActivityLogsCommand {
	return &DeleteActivityLogsCommand{
		activityLogRepo: activityLogRepo,
	}
}

// Execute はユーザーの未削除ログを1件ずつ論理削除します
// トランザクションは張らないため、途中でエラーになった場合はそれまでの更新が残ります
func (c *DeleteActivityLogsCommand) Execute(ctx context.Context, input DeleteActivityLogsInput) (*DeleteActivityLogsOutput, error) {
	// 1. ログの存在確認（削除済みを含む）
	exists, err := c.activityLogRepo.ExistsByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &DeleteActivityLogsOutput{Deleted: false}, nil
	}

	// 2. 未削除ログの取得
	logs, err := c.activityLogRepo.FindByUserID(ctx, input.UserID, repository.ActivityLogFilter{
		ExcludeDeleted: true,
	})
	if err != nil {
		return nil, err
	}

	// 3. 1件ずつ論理削除（削除済みのログには触れない）
	deleted := 0
	for _, log := range logs {
		if !log.IsActive() {
			continue
		}
		log.MarkDeleted()
		if err := c.activityLogRepo.Update(ctx, log); err != nil {
			return nil, err
		}
		deleted++
	}

	logger.Info(ctx, "activity logs deleted", "user_id", input.UserID.String(), "count", deleted)

	// 削除済みのログしかない場合もfalse（2回目の削除は「削除対象なし」になる）
	return &DeleteActivityLogsOutput{Deleted: deleted > 0, DeletedCount: deleted}, nil
}
