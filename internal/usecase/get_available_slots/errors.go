package get_available_slots

import "errors"

var (
	// ErrInvalidDate is returned for dates in the past.
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrSalonClosed is returned for dates the salon does not open.
	ErrSalonClosed = errors.New("get_available_slots: salon is closed on this date")

	// ErrDateTooFarInFuture is returned for dates beyond the booking horizon.
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrServiceNotFound is returned when a requested service id does not
	// resolve to an active service.
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)
