package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/entity"
	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/repository"
	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/database"
)

// activityLogModel はbunで永続化するactivity_logsの行です
type activityLogModel struct {
	bun.BaseModel `bun:"table:activity_logs,alias:al"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	UserID    uuid.UUID `bun:"user_id,type:uuid,notnull"`
	Action    string    `bun:"action,type:varchar(1000),notnull"`
	CreatedOn time.Time `bun:"created_on,notnull"`
	IsDeleted bool      `bun:"is_deleted,notnull,default:false"`
}

// BunActivityLogRepository はbun（SQLite）向けアクティビティログリポジトリの実装です
type BunActivityLogRepository struct {
	db    *bun.DB
	idGen func() uuid.UUID
}

// NewBunActivityLogRepository は新しいBunActivityLogRepositoryを作成します
func NewBunActivityLogRepository(db *bun.DB) *BunActivityLogRepository {
	return &BunActivityLogRepository{
		db:    db,
		idGen: uuid.New,
	}
}

var _ repository.ActivityLogRepository = (*BunActivityLogRepository)(nil)

// EnsureSchema はテーブルとインデックスが無ければ作成します
func (r *BunActivityLogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().
		Model((*activityLogModel)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	_, err := r.db.NewCreateIndex().
		Model((*activityLogModel)(nil)).
		Index("idx_activity_logs_user_created").
		IfNotExists().
		ColumnExpr("user_id, created_on DESC").
		Exec(ctx)
	return err
}

// Create はアクティビティログを作成します
// IDはリポジトリで採番します
func (r *BunActivityLogRepository) Create(ctx context.Context, log *entity.ActivityLog) error {
	model := toActivityLogModel(log)
	model.ID = r.idGen()

	if _, err := r.db.NewInsert().Model(model).Exec(ctx); err != nil {
		return database.HandleError(err)
	}

	log.ID = model.ID
	return nil
}

// FindByUserID はユーザーIDでアクティビティログを取得します
func (r *BunActivityLogRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter repository.ActivityLogFilter) ([]*entity.ActivityLog, error) {
	var models []activityLogModel

	q := r.db.NewSelect().
		Model(&models).
		Where("al.user_id = ?", userID)
	if filter.ExcludeDeleted {
		q = q.Where("al.is_deleted = ?", false)
	}
	if filter.OrderByCreatedOnDesc {
		q = q.OrderExpr("al.created_on DESC")
	}

	if err := q.Scan(ctx); err != nil {
		return nil, database.HandleError(err)
	}

	logs := make([]*entity.ActivityLog, 0, len(models))
	for _, m := range models {
		logs = append(logs, m.toEntity())
	}
	return logs, nil
}

// ExistsByUserID はユーザーのログが存在するかを確認します（削除済みを含む）
func (r *BunActivityLogRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*activityLogModel)(nil)).
		Where("al.user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, database.HandleError(err)
	}
	return exists, nil
}

// Update はアクティビティログの論理削除フラグを保存します
func (r *BunActivityLogRepository) Update(ctx context.Context, log *entity.ActivityLog) error {
	model := toActivityLogModel(log)

	res, err := r.db.NewUpdate().
		Model(model).
		Column("is_deleted").
		WherePK().
		Exec(ctx)
	if err != nil {
		return database.HandleError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func toActivityLogModel(log *entity.ActivityLog) *activityLogModel {
	return &activityLogModel{
		ID:        log.ID,
		UserID:    log.UserID,
		Action:    log.Action,
		CreatedOn: log.CreatedOn.UTC(),
		IsDeleted: log.IsDeleted,
	}
}

func (m activityLogModel) toEntity() *entity.ActivityLog {
	return entity.ReconstructActivityLog(m.ID, m.UserID, m.Action, m.CreatedOn, m.IsDeleted)
}
