package payments

import (
	"context"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
)

// PaymentRepository is the payment ledger store.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	List(ctx context.Context, filter domain.PaymentsFilter) ([]*domain.Payment, int64, error)
	MarkCompleted(ctx context.Context, id int64, transactionID *string) error
	MarkFailed(ctx context.Context, id int64, reason *string) error
	MarkRefunded(ctx context.Context, id int64) error
}

// BookingRepository is the slice of the booking store the ledger writes
// back to: the per-booking payment status cache.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, state domain.PaymentState) error
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
