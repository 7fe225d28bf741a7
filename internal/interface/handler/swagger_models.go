package handler

import (
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/middleware"
)

// SwaggerErrorResponse はエラーレスポンスのスキーマです
type SwaggerErrorResponse struct {
	Error middleware.ErrorBody `json:"error"`
	Meta  interface{}          `json:"meta"`
}
