package response

import (
	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/entity"
)

// TimestampLayout はcreatedOnの出力形式です（マイクロ秒固定、UTC）
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// ActivityLogResponse はアクティビティログのレスポンスです
// IDと論理削除フラグは公開しません
type ActivityLogResponse struct {
	Action    string `json:"action"`
	UserID    string `json:"userId"`
	CreatedOn string `json:"createdOn"`
}

// ToActivityLogResponse はエンティティをレスポンスに変換します
func ToActivityLogResponse(log *entity.ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		Action:    log.Action,
		UserID:    log.UserID.String(),
		CreatedOn: log.CreatedOn.UTC().Format(TimestampLayout),
	}
}

// ToActivityLogResponses はエンティティのスライスをレスポンスに変換します
// 結果は常に非nilです
func ToActivityLogResponses(logs []*entity.ActivityLog) []ActivityLogResponse {
	responses := make([]ActivityLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, ToActivityLogResponse(log))
	}
	return responses
}
