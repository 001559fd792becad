package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors for the scheduling and ticket sales flows. Controllers map
// these to HTTP statuses via HTTPStatus; services wrap them with context via
// fmt.Errorf("...: %w", err) so errors.Is still matches.
var (
	// ErrPastDate rejects scheduling a showtime at or before the current time.
	ErrPastDate = errors.New("showtime start must be in the future")

	// ErrAlreadyStarted rejects updating or deleting a showtime whose start
	// has passed. Started showtimes are frozen.
	ErrAlreadyStarted = errors.New("showtime has already started")

	// ErrSchedulingConflict rejects a showtime whose interval overlaps another
	// showtime in the same theater.
	ErrSchedulingConflict = errors.New("showtime overlaps an existing showtime in this theater")

	// ErrSoldOut rejects a purchase once sold tickets reached theater capacity.
	ErrSoldOut = errors.New("showtime is sold out")

	// ErrSeatTaken rejects a purchase for a seat already held by a purchased
	// ticket on the same showtime.
	ErrSeatTaken = errors.New("seat is already taken for this showtime")

	// ErrInvalidTicketState rejects cancelling a ticket that is not in the
	// purchased state.
	ErrInvalidTicketState = errors.New("ticket is not in a cancellable state")

	// ErrCapacityExceeded rejects a theater capacity reduction below the sold
	// count of any of its showtimes.
	ErrCapacityExceeded = errors.New("proposed capacity is below tickets already sold for a showtime")

	// ErrPastOrOngoingShowtime rejects purchase or cancellation once the
	// showtime has started.
	ErrPastOrOngoingShowtime = errors.New("showtime has already started or finished")

	// ErrLockContention signals that the showtime lock could not be acquired
	// in time. The only retryable error in this package.
	ErrLockContention = errors.New("showtime is locked by another operation, retry")

	// ErrTheaterInactive rejects scheduling into a deactivated theater.
	ErrTheaterInactive = errors.New("theater is not active")

	// ErrShowtimeHasSales rejects deleting a showtime with sold tickets.
	ErrShowtimeHasSales = errors.New("showtime has sold tickets and cannot be deleted")

	// ErrReferencedBySchedule rejects deleting catalog entries that future
	// showtimes still point at.
	ErrReferencedBySchedule = errors.New("entity is referenced by scheduled showtimes")

	// ErrInvalidSeatFormat rejects seat labels that do not normalize to
	// one or two letters, a dash, and one to three digits.
	ErrInvalidSeatFormat = errors.New("seat number must match A-1 through ZZ-999")

	// ErrInvalidEmail rejects malformed customer email addresses.
	ErrInvalidEmail = errors.New("customer email is not a valid address")
)

// NotFoundError reports a missing entity by kind and identifier.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity kind and id.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsRetryable reports whether the caller may retry the identical request.
// Business rejections are terminal; only lock contention qualifies.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockContention)
}

// Code returns a stable machine-readable code for a domain error, suitable
// for API clients that switch on failure kinds.
func Code(err error) string {
	switch {
	case IsNotFound(err):
		return "NOT_FOUND"
	case errors.Is(err, ErrPastDate):
		return "PAST_DATE"
	case errors.Is(err, ErrAlreadyStarted):
		return "ALREADY_STARTED"
	case errors.Is(err, ErrSchedulingConflict):
		return "SCHEDULING_CONFLICT"
	case errors.Is(err, ErrSoldOut):
		return "SOLD_OUT"
	case errors.Is(err, ErrSeatTaken):
		return "SEAT_TAKEN"
	case errors.Is(err, ErrInvalidTicketState):
		return "INVALID_TICKET_STATE"
	case errors.Is(err, ErrCapacityExceeded):
		return "CAPACITY_EXCEEDED"
	case errors.Is(err, ErrPastOrOngoingShowtime):
		return "PAST_OR_ONGOING_SHOWTIME"
	case errors.Is(err, ErrLockContention):
		return "LOCK_CONTENTION"
	case errors.Is(err, ErrTheaterInactive):
		return "THEATER_INACTIVE"
	case errors.Is(err, ErrShowtimeHasSales):
		return "SHOWTIME_HAS_SALES"
	case errors.Is(err, ErrReferencedBySchedule):
		return "REFERENCED_BY_SCHEDULE"
	case errors.Is(err, ErrInvalidSeatFormat):
		return "INVALID_SEAT_FORMAT"
	case errors.Is(err, ErrInvalidEmail):
		return "INVALID_EMAIL"
	default:
		return "INTERNAL"
	}
}

// HTTPStatus maps a domain error to its response status code. State
// conflicts are 409, stale or past input is 422, malformed input is 400,
// lock contention is 503, anything unrecognized is 500.
func HTTPStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ErrSchedulingConflict),
		errors.Is(err, ErrSoldOut),
		errors.Is(err, ErrSeatTaken),
		errors.Is(err, ErrInvalidTicketState),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrAlreadyStarted),
		errors.Is(err, ErrShowtimeHasSales),
		errors.Is(err, ErrReferencedBySchedule):
		return http.StatusConflict
	case errors.Is(err, ErrPastDate),
		errors.Is(err, ErrPastOrOngoingShowtime),
		errors.Is(err, ErrTheaterInactive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidSeatFormat),
		errors.Is(err, ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, ErrLockContention):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
