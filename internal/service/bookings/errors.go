package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the lookup.
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrCannotCancel is returned when the booking status or the 24-hour
	// notice rule forbids cancellation.
	ErrCannotCancel = errors.New("bookings.service: booking cannot be cancelled")

	// ErrInvalidTransition is returned for status changes the booking
	// state machine does not allow.
	ErrInvalidTransition = errors.New("bookings.service: invalid status transition")

	// ErrPaymentIncomplete is returned when completing a booking whose
	// latest payment has not gone through.
	ErrPaymentIncomplete = errors.New("bookings.service: payment not completed")

	// ErrBookingActive is returned when deleting a booking that still
	// holds its slot.
	ErrBookingActive = errors.New("bookings.service: booking is still active")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("bookings.service: invalid input")

	// ErrInternal wraps unexpected repository failures.
	ErrInternal = errors.New("bookings.service: internal error")
)
