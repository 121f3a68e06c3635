package create_booking

import (
	"context"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/payments"
	"github.com/jnails/salon-booking-service/pkg/types"
)

// BookingRepository is the slice of the booking store the flow writes.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	CreateServiceSnapshots(ctx context.Context, bookingID int64, services []*domain.BookingService) error
	GetServices(ctx context.Context, bookingID int64) ([]*domain.BookingService, error)
}

// CatalogService resolves and validates the requested salon services.
type CatalogService interface {
	GetActiveByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// AvailabilityService owns the booking-window rules and slot reservations.
type AvailabilityService interface {
	ValidateBookingTime(ctx context.Context, date time.Time, start, end types.TimeString) ([]error, error)
	BookTimeSlot(ctx context.Context, date time.Time, start, end types.TimeString, bookingID int64) (int64, error)
}

// PaymentService records the initial payment attempt for a new booking.
type PaymentService interface {
	CreateForBooking(ctx context.Context, req payments.CreateRequest) (*domain.Payment, error)
}

// TransactionManager runs a function inside a serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
