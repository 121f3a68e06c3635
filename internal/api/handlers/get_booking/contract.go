package get_booking

import (
	"context"

	"github.com/jnails/salon-booking-service/internal/domain"
)

type BookingService interface {
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
