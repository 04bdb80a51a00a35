package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("group", "123")
	assert.Equal(t, `group "123" not found`, err.Error())
	assert.True(t, errors.Is(err, ErrGroupNotFound))
	assert.False(t, errors.Is(err, ErrSuggestionNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
}

func TestDuplicateError(t *testing.T) {
	err := NewDuplicateError(DuplicateName, "Daily Daf")
	assert.True(t, errors.Is(err, ErrDuplicateName))
	assert.False(t, errors.Is(err, ErrDuplicateLink))
	assert.Contains(t, err.Error(), "Daily Daf")

	dup, ok := AsDuplicate(fmt.Errorf("create: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "Daily Daf", dup.Existing)
	assert.Equal(t, DuplicateName, dup.Kind)
}

func TestStoreUnavailableError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreUnavailableError("key-value", cause)
	assert.True(t, IsStoreUnavailable(err))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsStoreUnavailable(ErrKVStoreUnavailable))
	assert.False(t, IsStoreUnavailable(cause))
}

func TestPartialFailureError(t *testing.T) {
	cause := errors.New("delete failed")
	err := NewPartialFailureError("approve", "abc", cause)
	pf, ok := AsPartialFailure(err)
	assert.True(t, ok)
	assert.Equal(t, "abc", pf.SuggestionID)
	assert.True(t, errors.Is(err, cause))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("link", "must be a valid URL")))
	assert.False(t, IsValidation(errors.New("plain")))
}
