package create_booking

import "errors"

var (
	// ErrInvalidDate is returned for booking dates in the past.
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSalonClosed is returned for dates the salon does not open.
	ErrSalonClosed = errors.New("create_booking: salon is closed on this date")

	// ErrDateTooFarInFuture is returned for dates beyond the booking horizon.
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotNotFound is returned when the requested time matches no slot.
	ErrSlotNotFound = errors.New("create_booking: time slot not found")

	// ErrSlotNotAvailable is returned when the slot is taken, including
	// losing a concurrent reservation race.
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook is returned when the slot starts inside the
	// minimum notice window.
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrServiceNotFound is returned when a requested service does not
	// exist or is inactive.
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrReferenceExhausted is returned when no unused booking reference
	// could be generated.
	ErrReferenceExhausted = errors.New("create_booking: could not generate unique reference")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("create_booking: internal error")
)
