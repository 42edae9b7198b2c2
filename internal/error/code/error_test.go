package code

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		code   int
		status int
	}{
		{ErrSuccess, StatusOK},
		{ErrValidation, StatusBadRequest},
		{ErrTokenInvalid, StatusUnauthorized},
		{ErrForbidden, StatusForbidden},
		{ErrCondoNotFound, StatusNotFound},
		{ErrReservationConflict, StatusConflict},
		{ErrReservationBlocked, StatusConflict},
		{ErrOutsideAvailability, StatusBadRequest},
		{ErrConstraint, StatusBadRequest},
		{ErrTooManyRequests, StatusTooManyRequests},
		{ErrDatabase, StatusInternalServerError},
		{999999, StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, GetStatus(tt.code))
		})
	}
}

func TestGetMessageFallback(t *testing.T) {
	assert.Equal(t, "user not found", GetMessage(ErrUserNotFound))
	assert.Equal(t, "internal server error", GetMessage(999999))
}

func TestFromWrappedError(t *testing.T) {
	appErr := Newf(ErrConstraint, "referenced parent does not exist: %s", "condo_id")
	wrapped := fmt.Errorf("create user: %w", appErr)

	got := From(wrapped)
	assert.Equal(t, ErrConstraint, got.Code)
	assert.Equal(t, "referenced parent does not exist: condo_id", got.Message)
	assert.True(t, Is(wrapped, ErrConstraint))
	assert.False(t, Is(wrapped, ErrDatabase))
}

func TestFromPlainError(t *testing.T) {
	cause := errors.New("connection reset")

	got := From(cause)
	assert.Equal(t, ErrUnknown, got.Code)
	assert.Equal(t, StatusInternalServerError, got.Status())
	assert.ErrorIs(t, got, cause)
}
