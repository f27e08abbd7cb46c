package errs

import "errors"

// Sentinel errors shared across the usecase layers. Handlers map these to
// HTTP statuses with errors.Is.
var (
	// Reservation ledger errors
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrOverlap              = errors.New("overlapping reservation")
	ErrDuplicateReservation = errors.New("duplicate reservation")
	ErrImmutableKeys        = errors.New("immutable reservation keys")
	ErrSessionPassed        = errors.New("session already passed")
	ErrCapacityExceeded     = errors.New("room capacity exceeded")
	ErrInvalidTimeSlot      = errors.New("invalid time slot")

	// Session generation errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrInvalidDayOffset = errors.New("invalid day offset")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Catalog errors
	ErrMovieNotFound = errors.New("movie not found")

	// Operation errors
	ErrStoreOperationFailed = errors.New("store operation failed")
)
