package handler

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/dto/request"
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/dto/response"
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/presenter"
	"github.com/tsekovTriesCoding/activity-log-service/internal/usecase/activitylog/command"
	"github.com/tsekovTriesCoding/activity-log-service/internal/usecase/activitylog/query"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/apperror"
)

// ActivityLogHandler はアクティビティログ関連のHTTPハンドラーです
type ActivityLogHandler struct {
	// Commands
	logActivityCmd        *command.LogActivityCommand
	deleteActivityLogsCmd *command.DeleteActivityLogsCommand

	// Queries
	listActivityLogsQuery *query.ListActivityLogsQuery
}

// NewActivityLogHandler は新しいActivityLogHandlerを作成します
func NewActivityLogHandler(
	logActivityCmd *command.LogActivityCommand,
	deleteActivityLogsCmd *command.DeleteActivityLogsCommand,
	listActivityLogsQuery *query.ListActivityLogsQuery,
) *ActivityLogHandler {
	return &ActivityLogHandler{
		logActivityCmd:        logActivityCmd,
		deleteActivityLogsCmd: deleteActivityLogsCmd,
		listActivityLogsQuery: listActivityLogsQuery,
	}
}

// LogActivity はアクティビティを記録します
// @Summary アクティビティ記録
// @Description ユーザーのアクティビティを1件記録します
// @Tags ActivityLog
// @Accept json
// @Produce json
// @Param body body request.LogActivityRequest true "アクティビティ"
// @Success 201 {object} response.ActivityLogResponse
// @Failure 400 {object} handler.SwaggerErrorResponse
// @Failure 500 {object} handler.SwaggerErrorResponse
// @Router /activity-log [post]
func (h *ActivityLogHandler) LogActivity(c echo.Context) error {
	var req request.LogActivityRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.logActivityCmd.Execute(c.Request().Context(), command.LogActivityInput{
		UserID: *req.UserID,
		Action: *req.Action,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToActivityLogResponse(output.ActivityLog))
}

// ListActivityLogs はユーザーのアクティビティログを新しい順に取得します
// @Summary アクティビティログ一覧
// @Description 論理削除されていないログを作成日時の降順で返します
// @Tags ActivityLog
// @Produce json
// @Param userId query string true "ユーザーID (UUID)"
// @Success 200 {array} response.ActivityLogResponse
// @Failure 400 {object} handler.SwaggerErrorResponse
// @Failure 500 {object} handler.SwaggerErrorResponse
// @Router /activity-log [get]
func (h *ActivityLogHandler) ListActivityLogs(c echo.Context) error {
	userID, err := bindUserID(c)
	if err != nil {
		return err
	}

	output, err := h.listActivityLogsQuery.Execute(c.Request().Context(), query.ListActivityLogsInput{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToActivityLogResponses(output.ActivityLogs))
}

// DeleteActivityLogs はユーザーのアクティビティログを論理削除します
// @Summary アクティビティログ削除
// @Description ユーザーの未削除ログをすべて論理削除します
// @Tags ActivityLog
// @Produce plain
// @Param userId query string true "ユーザーID (UUID)"
// @Success 200 {string} string "Activity logs deleted for user: {userId}"
// @Failure 400 {object} handler.SwaggerErrorResponse
// @Failure 404 {object} handler.SwaggerErrorResponse
// @Failure 500 {object} handler.SwaggerErrorResponse
// @Router /activity-log [delete]
func (h *ActivityLogHandler) DeleteActivityLogs(c echo.Context) error {
	userID, err := bindUserID(c)
	if err != nil {
		return err
	}

	output, err := h.deleteActivityLogsCmd.Execute(c.Request().Context(), command.DeleteActivityLogsInput{
		UserID: userID,
	})
	if err != nil {
		return err
	}
	if !output.Deleted {
		return apperror.NewNotFoundError("activity logs")
	}

	return presenter.Message(c, fmt.Sprintf("Activity logs deleted for user: %s", userID))
}

// bindUserID はuserIdクエリパラメータを取得して検証します
// ボディの同名キーで上書きされないよう、クエリのみをバインドします
func bindUserID(c echo.Context) (uuid.UUID, error) {
	var req request.ActivityLogQueryRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return uuid.Nil, apperror.NewInvalidRequestError("invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return uuid.Nil, apperror.NewValidationError("validation failed", []apperror.FieldError{
			{Field: "userId", Message: "must be a valid UUID"},
		})
	}
	return userID, nil
}
