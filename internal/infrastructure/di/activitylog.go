package di

import (
	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/repository"
	"github.com/tsekovTriesCoding/activity-log-service/internal/usecase/activitylog/command"
	"github.com/tsekovTriesCoding/activity-log-service/internal/usecase/activitylog/query"
)

// ActivityLogUseCases はActivityLog関連のUseCaseを保持します
type ActivityLogUseCases struct {
	// Commands
	LogActivity        *command.LogActivityCommand
	DeleteActivityLogs *command.DeleteActivityLogsCommand

	// Queries
	ListActivityLogs *query.ListActivityLogsQuery
}

// NewActivityLogUseCases は新しいActivityLogUseCasesを作成します
func NewActivityLogUseCases(activityLogRepo repository.ActivityLogRepository) *ActivityLogUseCases {
	return &ActivityLogUseCases{
		LogActivity:        command.NewLogActivityCommand(activityLogRepo),
		DeleteActivityLogs: command.NewDeleteActivityLogsCommand(activityLogRepo),
		ListActivityLogs:   query.NewListActivityLogsQuery(activityLogRepo),
	}
}
