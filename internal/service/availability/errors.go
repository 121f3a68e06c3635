package availability

import "errors"

var (
	// ErrDateInPast is returned for dates before today.
	ErrDateInPast = errors.New("availability.service: date is in the past")

	// ErrDateClosed is returned for dates the salon does not open.
	ErrDateClosed = errors.New("availability.service: salon is closed on this date")

	// ErrDateTooFar is returned for dates beyond the advance booking horizon.
	ErrDateTooFar = errors.New("availability.service: date is beyond the booking horizon")

	// ErrSlotNotFound is returned when the requested time does not match a slot.
	ErrSlotNotFound = errors.New("availability.service: time slot not found")

	// ErrSlotNotAvailable is returned when the slot exists but cannot be booked.
	ErrSlotNotAvailable = errors.New("availability.service: time slot not available")

	// ErrTooSoon is returned when the slot starts inside the minimum notice window.
	ErrTooSoon = errors.New("availability.service: time slot starts too soon")

	// ErrInternal wraps unexpected repository failures.
	ErrInternal = errors.New("availability.service: internal error")
)
