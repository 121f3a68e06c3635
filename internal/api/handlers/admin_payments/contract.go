package admin_payments

import (
	"context"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/payments"
)

type PaymentService interface {
	CreateForBooking(ctx context.Context, req payments.CreateRequest) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context, filter domain.PaymentsFilter) ([]*domain.Payment, int64, error)
	MarkAsCompleted(ctx context.Context, id int64, transactionID *string) error
	MarkAsFailed(ctx context.Context, id int64, reason *string) error
	MarkAsRefunded(ctx context.Context, id int64) error
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
