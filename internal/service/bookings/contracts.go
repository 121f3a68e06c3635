package bookings

import (
	"context"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
)

// BookingRepository is the booking store.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int64, error)
	GetServices(ctx context.Context, bookingID int64) ([]*domain.BookingService, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository exposes the one payment lookup the status guard needs.
type PaymentRepository interface {
	GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
}

// SlotReleaser frees the slot a booking holds.
type SlotReleaser interface {
	ReleaseTimeSlot(ctx context.Context, bookingID int64) error
}

// TransactionManager runs a function inside a database transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider abstracts the clock.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
