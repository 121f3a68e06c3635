package domain

import (
	"time"

	"github.com/jnails/salon-booking-service/pkg/types"
)

// BookingStatus represents the status of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// PaymentState is the booking-level payment status cache. It mirrors the
// latest payment row and is written by the payment ledger on every
// transition; the latest payment remains authoritative.
type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStateCompleted PaymentState = "completed"
	PaymentStatePartial   PaymentState = "partial"
	PaymentStateFailed    PaymentState = "failed"
	PaymentStateRefunded  PaymentState = "refunded"
)

// Booking represents a client appointment with its computed time window
// and money totals. Service prices/durations live in BookingService
// snapshot rows, never re-read from the catalog.
type Booking struct {
	ID               int64
	BookingReference string
	ClientName       string
	ClientEmail      string
	ClientPhone      string
	AppointmentDate  time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	Status           BookingStatus
	Notes            *string
	TotalAmount      float64
	PaymentStatus    PaymentState
	PaymentMethod    PaymentMethod

	CancellationReason *string
	CancelledAt        *time.Time
	ConfirmedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Snapshot rows, loaded on demand.
	Services []*BookingService
}

// IsActive returns true if the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// CanBeCancelled returns true when the booking may still be cancelled:
// pending or confirmed, and the appointment is at least 24 hours away.
func (b *Booking) CanBeCancelled(now time.Time) bool {
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return false
	}
	start, err := b.StartTime.OnDate(b.AppointmentDate)
	if err != nil {
		return false
	}
	return !start.Before(now.Add(CancellationNoticeHours * time.Hour))
}

// IsTerminal returns true for statuses after which the slot is never re-held.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// ValidBookingStatus reports whether the string is a known booking status.
func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo enforces the booking state machine.
// pending    -> confirmed | cancelled
// confirmed  -> in_progress | completed | cancelled | no_show
// in_progress-> completed | no_show
// completed, cancelled, no_show are terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusInProgress || next == StatusCompleted ||
			next == StatusCancelled || next == StatusNoShow
	case StatusInProgress:
		return next == StatusCompleted || next == StatusNoShow
	default:
		return false
	}
}

// BookingService is the immutable join row snapshotting a service's price
// and duration at booking time.
type BookingService struct {
	ID                     int64
	BookingID              int64
	ServiceID              int64
	ServicePrice           float64
	ServiceDurationMinutes int

	ServiceName string // denormalized for display, loaded with the snapshot

	CreatedAt time.Time
}

// BookingsFilter narrows admin booking listings.
type BookingsFilter struct {
	Search *string        // matches reference, client name or email
	Status *BookingStatus
	Date   *time.Time
	Limit  uint64
	Offset uint64
}
