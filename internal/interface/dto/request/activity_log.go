package request

import (
	"github.com/google/uuid"
)

// LogActivityRequest はアクティビティ記録リクエストです
// actionは空文字を許可するため、キーの有無をポインタで判定します
type LogActivityRequest struct {
	Action *string    `json:"action" validate:"required,max=1000"`
	UserID *uuid.UUID `json:"userId" validate:"required"`
}

// ActivityLogQueryRequest はuserIdクエリパラメータを受け取るリクエストです
// UUIDの形式（大文字小文字を問わない）はハンドラーでuuid.Parseにより検証します
type ActivityLogQueryRequest struct {
	UserID string `query:"userId" validate:"required"`
}
