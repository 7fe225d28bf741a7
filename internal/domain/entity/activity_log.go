package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog はユーザーのアクティビティログエントリを表します
// IsDeleted は論理削除フラグで、false→true の一方向にのみ遷移する
type ActivityLog struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Action    string
	CreatedOn time.Time
	IsDeleted bool
}

// NewActivityLog は新しいアクティビティログを作成します（IDはストアが採番）
// CreatedOn はマイクロ秒精度に切り詰めたUTC時刻で保持する
func NewActivityLog(userID uuid.UUID, action string, now time.Time) *ActivityLog {
	return &ActivityLog{
		UserID:    userID,
		Action:    action,
		CreatedOn: now.UTC().Truncate(time.Microsecond),
		IsDeleted: false,
	}
}

// ReconstructActivityLog は永続化データからアクティビティログを復元します
func ReconstructActivityLog(
	id uuid.UUID,
	userID uuid.UUID,
	action string,
	createdOn time.Time,
	isDeleted bool,
) *ActivityLog {
	return &ActivityLog{
		ID:        id,
		UserID:    userID,
		Action:    action,
		CreatedOn: createdOn.UTC(),
		IsDeleted: isDeleted,
	}
}

// MarkDeleted はログを論理削除済みにします
// 既に削除済みの場合は何もしない
func (l *ActivityLog) MarkDeleted() {
	l.IsDeleted = true
}

// IsActive は論理削除されていないかを判定します
func (l *ActivityLog) IsActive() bool {
	return !l.IsDeleted
}
