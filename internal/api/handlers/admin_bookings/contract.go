package admin_bookings

import (
	"context"

	"github.com/jnails/salon-booking-service/internal/domain"
)

type BookingService interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, next domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
