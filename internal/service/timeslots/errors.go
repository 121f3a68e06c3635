package timeslots

import "errors"

var (
	// ErrSlotNotFound is returned when no slot matches the lookup.
	ErrSlotNotFound = errors.New("timeslots.service: time slot not found")

	// ErrSlotBooked is returned when an edit would touch a booked slot.
	ErrSlotBooked = errors.New("timeslots.service: time slot is booked")

	// ErrDateClosed is returned when generation targets a closed day.
	ErrDateClosed = errors.New("timeslots.service: salon is closed on this date")

	// ErrInvalidStatus is returned for unknown slot statuses.
	ErrInvalidStatus = errors.New("timeslots.service: invalid slot status")

	// ErrInternal wraps unexpected repository failures.
	ErrInternal = errors.New("timeslots.service: internal error")
)
