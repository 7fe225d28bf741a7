package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/entity"
)

// ActivityLogFilter はアクティビティログ検索条件を定義します
type ActivityLogFilter struct {
	// ExcludeDeleted がtrueの場合、論理削除済みのログを除外します
	ExcludeDeleted bool
	// OrderByCreatedOnDesc がtrueの場合、作成日時の降順で返します
	// falseの場合の順序はストア依存です
	OrderByCreatedOnDesc bool
}

// ActivityLogRepository はアクティビティログの永続化インターフェースです
type ActivityLogRepository interface {
	// Create はアクティビティログを作成し、採番したIDをlog.IDに設定します
	Create(ctx context.Context, log *entity.ActivityLog) error
	// FindByUserID はユーザーIDでアクティビティログを取得します
	FindByUserID(ctx context.Context, userID uuid.UUID, filter ActivityLogFilter) ([]*entity.ActivityLog, error)
	// ExistsByUserID はユーザーのログが1件以上存在するか（削除済みを含む）を返します
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
	// Update はアクティビティログの状態を保存します
	Update(ctx context.Context, log *entity.ActivityLog) error
}
