package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/entity"
	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/repository"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/logger"
)

// LogActivityInput はアクティビティ記録の入力を定義します
type LogActivityInput struct {
	UserID uuid.UUID
	Action string
}

// LogActivityOutput はアクティビティ記録の出力を定義します
type LogActivityOutput struct {
	ActivityLog *entity.ActivityLog
}

// LogActivityCommand はアクティビティ記録コマンドです
type LogActivityCommand struct {
	activityLogRepo repository.ActivityLogRepository
	now             func() time.Time
}

// NewLogActivityCommand は新しいLogActivityCommandを作成します
func NewLogActivityCommand(activityLogRepo repository.ActivityLogRepository) *LogActivityCommand {
	return &LogActivityCommand{
		activityLogRepo: activityLogRepo,
		now:             time.Now,
	}
}

// WithClock は作成日時に使う時刻関数を差し替えます
func (c *LogActivityCommand) WithClock(now func() time.Time) *LogActivityCommand {
	c.now = now
	return c
}

// Execute はアクティビティを記録します
// 入力の検証はリクエスト層で済んでいる前提で、ストアのエラーはそのまま返します
func (c *LogActivityCommand) Execute(ctx context.Context, input LogActivityInput) (*LogActivityOutput, error) {
	log := entity.NewActivityLog(input.UserID, input.Action, c.now())

	if err := c.activityLogRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	logger.Info(ctx, "activity logged", "user_id", log.UserID.String(), "activity_log_id", log.ID.String())

	return &LogActivityOutput{ActivityLog: log}, nil
}
