package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/entity"
	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/repository"
	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/database"
)

// activityLogRow はactivity_logsテーブルの1行を表します
type activityLogRow struct {
	ID        pgtype.UUID        `db:"id"`
	UserID    pgtype.UUID        `db:"user_id"`
	Action    string             `db:"action"`
	CreatedOn pgtype.Timestamptz `db:"created_on"`
	IsDeleted bool               `db:"is_deleted"`
}

const activityLogColumns = "id, user_id, action, created_on, is_deleted"

// ActivityLogRepository はPostgreSQL向けアクティビティログリポジトリの実装です
type ActivityLogRepository struct {
	*database.BaseRepository
}

// NewActivityLogRepository は新しいActivityLogRepositoryを作成します
func NewActivityLogRepository(txManager *database.TxManager) *ActivityLogRepository {
	return &ActivityLogRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

var _ repository.ActivityLogRepository = (*ActivityLogRepository)(nil)

// Create はアクティビティログを作成します
// IDはデータベースのgen_random_uuid()で採番されます
func (r *ActivityLogRepository) Create(ctx context.Context, log *entity.ActivityLog) error {
	querier := r.Querier(ctx)

	var id pgtype.UUID
	err := querier.QueryRow(ctx,
		`INSERT INTO activity_logs (user_id, action, created_on, is_deleted)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		pgtype.UUID{Bytes: log.UserID, Valid: true},
		log.Action,
		pgtype.Timestamptz{Time: log.CreatedOn, Valid: true},
		log.IsDeleted,
	).Scan(&id)
	if err != nil {
		return r.HandleError(err)
	}

	log.ID = uuid.UUID(id.Bytes)
	return nil
}

// FindByUserID はユーザーIDでアクティビティログを取得します
func (r *ActivityLogRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter repository.ActivityLogFilter) ([]*entity.ActivityLog, error) {
	querier := r.Querier(ctx)

	var sb strings.Builder
	sb.WriteString("SELECT " + activityLogColumns + " FROM activity_logs WHERE user_id = $1")
	if filter.ExcludeDeleted {
		sb.WriteString(" AND is_deleted = FALSE")
	}
	if filter.OrderByCreatedOnDesc {
		sb.WriteString(" ORDER BY created_on DESC")
	}

	rows, err := querier.Query(ctx, sb.String(), pgtype.UUID{Bytes: userID, Valid: true})
	if err != nil {
		return nil, r.HandleError(err)
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[activityLogRow])
	if err != nil {
		return nil, r.HandleError(err)
	}

	return r.toEntities(collected), nil
}

// ExistsByUserID はユーザーのログが存在するかを確認します（削除済みを含む）
func (r *ActivityLogRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	querier := r.Querier(ctx)

	var exists bool
	err := querier.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM activity_logs WHERE user_id = $1)`,
		pgtype.UUID{Bytes: userID, Valid: true},
	).Scan(&exists)
	if err != nil {
		return false, r.HandleError(err)
	}

	return exists, nil
}

// Update はアクティビティログの論理削除フラグを保存します
// user_id / action / created_on は作成後に変更されないため更新対象外です
func (r *ActivityLogRepository) Update(ctx context.Context, log *entity.ActivityLog) error {
	querier := r.Querier(ctx)

	tag, err := querier.Exec(ctx,
		`UPDATE activity_logs SET is_deleted = $2 WHERE id = $1`,
		pgtype.UUID{Bytes: log.ID, Valid: true},
		log.IsDeleted,
	)
	if err != nil {
		return r.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}

	return nil
}

// toEntities は行のスライスをentity.ActivityLogのスライスに変換します
func (r *ActivityLogRepository) toEntities(rows []activityLogRow) []*entity.ActivityLog {
	entities := make([]*entity.ActivityLog, len(rows))
	for i, row := range rows {
		entities[i] = r.toEntity(row)
	}
	return entities
}

// toEntity は行をentity.ActivityLogに変換します
func (r *ActivityLogRepository) toEntity(row activityLogRow) *entity.ActivityLog {
	return entity.ReconstructActivityLog(
		uuid.UUID(row.ID.Bytes),
		uuid.UUID(row.UserID.Bytes),
		row.Action,
		row.CreatedOn.Time,
		row.IsDeleted,
	)
}
