package payments

import "errors"

var (
	// ErrPaymentNotFound is returned when no payment matches the lookup.
	ErrPaymentNotFound = errors.New("payments.service: payment not found")

	// ErrBookingNotFound is returned when the target booking does not exist.
	ErrBookingNotFound = errors.New("payments.service: booking not found")

	// ErrInvalidAmount is returned for non-positive or oversized amounts.
	ErrInvalidAmount = errors.New("payments.service: invalid amount")

	// ErrInvalidMethod is returned for unknown payment methods.
	ErrInvalidMethod = errors.New("payments.service: invalid payment method")

	// ErrInvalidTransition is returned for status changes the payment
	// lifecycle does not allow.
	ErrInvalidTransition = errors.New("payments.service: invalid status transition")

	// ErrNotRefundable is returned when the 30-day refund window has
	// passed or the payment never completed.
	ErrNotRefundable = errors.New("payments.service: payment not refundable")

	// ErrReferenceExhausted is returned when no unused payment reference
	// could be generated.
	ErrReferenceExhausted = errors.New("payments.service: could not generate unique reference")

	// ErrInternal wraps unexpected repository failures.
	ErrInternal = errors.New("payments.service: internal error")
)
