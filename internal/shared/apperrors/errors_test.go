package apperrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewNotFound("showtime", "abc"), "NOT_FOUND"},
		{ErrPastDate, "PAST_DATE"},
		{ErrAlreadyStarted, "ALREADY_STARTED"},
		{ErrSchedulingConflict, "SCHEDULING_CONFLICT"},
		{ErrSoldOut, "SOLD_OUT"},
		{ErrSeatTaken, "SEAT_TAKEN"},
		{ErrInvalidTicketState, "INVALID_TICKET_STATE"},
		{ErrCapacityExceeded, "CAPACITY_EXCEEDED"},
		{ErrPastOrOngoingShowtime, "PAST_OR_ONGOING_SHOWTIME"},
		{ErrLockContention, "LOCK_CONTENTION"},
		{ErrTheaterInactive, "THEATER_INACTIVE"},
		{ErrShowtimeHasSales, "SHOWTIME_HAS_SALES"},
		{ErrInvalidSeatFormat, "INVALID_SEAT_FORMAT"},
		{ErrInvalidEmail, "INVALID_EMAIL"},
		{fmt.Errorf("disk on fire"), "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.err))
		})
	}
}

func TestCodeSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("purchase for seat A-1: %w", ErrSeatTaken)
	assert.Equal(t, "SEAT_TAKEN", Code(wrapped))

	doubly := fmt.Errorf("handler: %w", wrapped)
	assert.Equal(t, "SEAT_TAKEN", Code(doubly))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NewNotFound("ticket", "abc"), http.StatusNotFound},
		{ErrSchedulingConflict, http.StatusConflict},
		{ErrSoldOut, http.StatusConflict},
		{ErrSeatTaken, http.StatusConflict},
		{ErrInvalidTicketState, http.StatusConflict},
		{ErrAlreadyStarted, http.StatusConflict},
		{ErrPastDate, http.StatusUnprocessableEntity},
		{ErrPastOrOngoingShowtime, http.StatusUnprocessableEntity},
		{ErrInvalidSeatFormat, http.StatusBadRequest},
		{ErrInvalidEmail, http.StatusBadRequest},
		{ErrLockContention, http.StatusServiceUnavailable},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "status for %v", tt.err)
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrLockContention))
	assert.True(t, IsRetryable(fmt.Errorf("tx: %w", ErrLockContention)))

	// Business rejections need different input, not a retry
	assert.False(t, IsRetryable(ErrSoldOut))
	assert.False(t, IsRetryable(ErrSeatTaken))
	assert.False(t, IsRetryable(NewNotFound("showtime", "abc")))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("showtime", "123e4567")
	assert.EqualError(t, err, "showtime not found: 123e4567")
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("load: %w", err)))
	assert.False(t, IsNotFound(ErrSoldOut))
}
