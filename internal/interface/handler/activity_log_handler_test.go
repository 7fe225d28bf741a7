package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/entity"
	"github.com/tsekovTriesCoding/activity-log-service/internal/domain/repository"
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/handler"
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/middleware"
	"github.com/tsekovTriesCoding/activity-log-service/internal/interface/validator"
	"github.com/tsekovTriesCoding/activity-log-service/internal/usecase/activitylog/command"
	"github.com/tsekovTriesCoding/activity-log-service/internal/usecase/activitylog/query"
	"github.com/tsekovTriesCoding/activity-log-service/tests/testutil/mocks"
)

const path = "/api/v1/activity-log"

var fixedNow = time.Date(2024, 3, 1, 10, 20, 30, 123456789, time.UTC)

type activityLogHandlerTestDeps struct {
	repo *mocks.MockActivityLogRepository
	echo *echo.Echo
}

func newActivityLogHandlerTestDeps(t *testing.T) *activityLogHandlerTestDeps {
	t.Helper()

	repo := mocks.NewMockActivityLogRepository(t)
	h := handler.NewActivityLogHandler(
		command.NewLogActivityCommand(repo).WithClock(func() time.Time { return fixedNow }),
		command.NewDeleteActivityLogsCommand(repo),
		query.NewListActivityLogsQuery(repo),
	)

	e := echo.New()
	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.POST(path, h.LogActivity)
	e.GET(path, h.ListActivityLogs)
	e.DELETE(path, h.DeleteActivityLogs)

	return &activityLogHandlerTestDeps{repo: repo, echo: e}
}

func (d *activityLogHandlerTestDeps) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	d.echo.ServeHTTP(rec, req)
	return rec
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errBody, ok := decodeObject(t, rec)["error"].(map[string]interface{})
	require.True(t, ok, rec.Body.String())
	code, _ := errBody["code"].(string)
	return code
}

func TestActivityLogHandler_LogActivity_Created(t *testing.T) {
	deps := newActivityLogHandlerTestDeps(t)
	userID := uuid.New()

	deps.repo.On("Create", mock.Anything, mock.MatchedBy(func(log *entity.ActivityLog) bool {
		return log.UserID == userID && log.Action == "login"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.ActivityLog).ID = uuid.New()
	}).Return(nil)

	rec := deps.do(http.MethodPost, path, `{"action":"login","userId":"`+userID.String()+`"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"action":    "login",
		"userId":    userID.String(),
		"createdOn": "2024-03-01T10:20:30.123456Z",
	}, decodeObject(t, rec))
}

func TestActivityLogHandler_LogActivity_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "malformed json", body: `{"action":`, code: "INVALID_REQUEST"},
		{name: "invalid uuid", body: `{"action":"login","userId":"abc"}`, code: "INVALID_REQUEST"},
		{name: "missing userId", body: `{"action":"login"}`, code: "VALIDATION_ERROR"},
		{name: "missing action", body: `{"userId":"` + uuid.NewString() + `"}`, code: "VALIDATION_ERROR"},
		{name: "too long action", body: `{"action":"` + strings.Repeat("a", 1001) + `","userId":"` + uuid.NewString() + `"}`, code: "VALIDATION_ERROR"},
		{name: "null action", body: `{"action":null,"userId":"` + uuid.NewString() + `"}`, code: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newActivityLogHandlerTestDeps(t)

			rec := deps.do(http.MethodPost, path, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestActivityLogHandler_LogActivity_StoreError_InternalServerError(t *testing.T) {
	deps := newActivityLogHandlerTestDeps(t)
	deps.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	rec := deps.do(http.MethodPost, path, `{"action":"login","userId":"`+uuid.NewString()+`"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, rec))
}

func TestActivityLogHandler_ListActivityLogs_OK(t *testing.T) {
	deps := newActivityLogHandlerTestDeps(t)
	userID := uuid.New()
	newer := entity.ReconstructActivityLog(uuid.New(), userID, "second", fixedNow.Add(time.Second), false)
	older := entity.ReconstructActivityLog(uuid.New(), userID, "first", fixedNow, false)

	deps.repo.On("FindByUserID", mock.Anything, userID, repository.ActivityLogFilter{
		ExcludeDeleted:       true,
		OrderByCreatedOnDesc: true,
	}).Return([]*entity.ActivityLog{newer, older}, nil)

	rec := deps.do(http.MethodGet, path+"?userId="+userID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "second", body[0]["action"])
	assert.Equal(t, "first", body[1]["action"])
	assert.NotContains(t, body[0], "id")
	assert.NotContains(t, body[0], "isDeleted")
}

func TestActivityLogHandler_ListActivityLogs_Empty(t *testing.T) {
	deps := newActivityLogHandlerTestDeps(t)
	deps.repo.On("FindByUserID", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	rec := deps.do(http.MethodGet, path+"?userId="+uuid.NewString(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestActivityLogHandler_ListActivityLogs_InvalidUserID(t *testing.T) {
	for _, target := range []string{path, path + "?userId=", path + "?userId=nope"} {
		t.Run(target, func(t *testing.T) {
			deps := newActivityLogHandlerTestDeps(t)

			rec := deps.do(http.MethodGet, target, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
		})
	}
}

func TestActivityLogHandler_DeleteActivityLogs_OK(t *testing.T) {
	deps := newActivityLogHandlerTestDeps(t)
	userID := uuid.New()
	log := entity.ReconstructActivityLog(uuid.New(), userID, "login", fixedNow, false)

	deps.repo.On("ExistsByUserID", mock.Anything, userID).Return(true, nil)
	deps.repo.On("FindByUserID", mock.Anything, userID, repository.ActivityLogFilter{ExcludeDeleted: true}).
		Return([]*entity.ActivityLog{log}, nil)
	deps.repo.On("Update", mock.Anything, log).Return(nil)

	rec := deps.do(http.MethodDelete, path+"?userId="+strings.ToUpper(userID.String()), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain)
	assert.Equal(t, "Activity logs deleted for user: "+userID.String(), rec.Body.String())
	assert.True(t, log.IsDeleted)
}

func TestActivityLogHandler_DeleteActivityLogs_NotFound(t *testing.T) {
	deps := newActivityLogHandlerTestDeps(t)
	deps.repo.On("ExistsByUserID", mock.Anything, mock.Anything).Return(false, nil)

	rec := deps.do(http.MethodDelete, path+"?userId="+uuid.NewString(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestActivityLogHandler_DeleteActivityLogs_StoreError(t *testing.T) {
	deps := newActivityLogHandlerTestDeps(t)
	deps.repo.On("ExistsByUserID", mock.Anything, mock.Anything).Return(false, context.DeadlineExceeded)

	rec := deps.do(http.MethodDelete, path+"?userId="+uuid.NewString(), "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, rec))
}

func TestActivityLogHandler_DeleteActivityLogs_IgnoresBodyUserID(t *testing.T) {
	deps := newActivityLogHandlerTestDeps(t)
	queryUserID := uuid.New()
	bodyUserID := uuid.New()

	deps.repo.On("ExistsByUserID", mock.Anything, queryUserID).Return(false, nil)

	rec := deps.do(http.MethodDelete, path+"?userId="+queryUserID.String(), `{"userId":"`+bodyUserID.String()+`"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	deps.repo.AssertNotCalled(t, "ExistsByUserID", mock.Anything, bodyUserID)
}

func TestActivityLogHandler_ListActivityLogs_IgnoresBodyUserID(t *testing.T) {
	deps := newActivityLogHandlerTestDeps(t)
	queryUserID := uuid.New()
	bodyUserID := uuid.New()

	deps.repo.On("FindByUserID", mock.Anything, queryUserID, mock.Anything).Return(nil, nil)

	rec := deps.do(http.MethodGet, path+"?userId="+queryUserID.String(), `{"userId":"`+bodyUserID.String()+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	deps.repo.AssertNotCalled(t, "FindByUserID", mock.Anything, bodyUserID, mock.Anything)
}

func TestActivityLogHandler_DeleteActivityLogs_BodyOnlyUserID_BadRequest(t *testing.T) {
	deps := newActivityLogHandlerTestDeps(t)

	rec := deps.do(http.MethodDelete, path, `{"userId":"`+uuid.NewString()+`"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}
