package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsekovTriesCoding/activity-log-service/pkg/apperror"
)

type sampleBody struct {
	Action *string `json:"action" validate:"required,max=5"`
}

type sampleQuery struct {
	UserID string `query:"userId" validate:"required,uuid"`
}

func stringPtr(s string) *string { return &s }

func TestCustomValidator_Validate_UsesRequestKeyNames(t *testing.T) {
	v := NewCustomValidator()

	err := v.Validate(&sampleQuery{UserID: "not-a-uuid"})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidationError, appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "userId", appErr.Details[0].Field)
	assert.Equal(t, "must be a valid UUID", appErr.Details[0].Message)
}

func TestCustomValidator_Validate_RequiredPointerAcceptsEmptyString(t *testing.T) {
	v := NewCustomValidator()

	assert.NoError(t, v.Validate(&sampleBody{Action: stringPtr("")}))

	err := v.Validate(&sampleBody{})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "action", appErr.Details[0].Field)
	assert.Equal(t, "this field is required", appErr.Details[0].Message)
}

func TestCustomValidator_Validate_MaxCountsCharacters(t *testing.T) {
	v := NewCustomValidator()

	assert.NoError(t, v.Validate(&sampleBody{Action: stringPtr("あいうえお")}))

	err := v.Validate(&sampleBody{Action: stringPtr(strings.Repeat("a", 6))})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "must be at most 5 characters", appErr.Details[0].Message)
}
