package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tsekovTriesCoding/activity-log-service/pkg/apperror"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/logger"
)

// ErrorResponse はエラーレスポンス構造を定義します
type ErrorResponse struct {
	Error ErrorBody   `json:"error"`
	Meta  interface{} `json:"meta"`
}

// ErrorBody はエラー本体を定義します
type ErrorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

// CustomHTTPErrorHandler はエラーを共通のJSONエラーボディに変換して書き込みます
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := toErrorResponse(err)
	if status >= http.StatusInternalServerError {
		// ストアのエラーはここでのみ記録し、クライアントには詳細を返さない
		logger.Error(c.Request().Context(), "request failed",
			"status", status,
			"error", err.Error(),
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, ErrorResponse{Error: body})
}

// toErrorResponse はエラーをHTTPステータスとエラーボディに変換します
func toErrorResponse(err error) (int, ErrorBody) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus, ErrorBody{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}

	// ルート不一致、メソッド不一致、ボディサイズ超過など
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, ErrorBody{
			Code:    http.StatusText(he.Code),
			Message: fmt.Sprintf("%v", he.Message),
		}
	}

	return http.StatusInternalServerError, ErrorBody{
		Code:    string(apperror.CodeInternalError),
		Message: "internal server error",
	}
}
