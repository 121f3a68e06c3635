package get_available_dates

import (
	"context"

	"github.com/jnails/salon-booking-service/internal/service/availability/models"
)

// AvailabilityService is the engine answering the date question.
type AvailabilityService interface {
	GetAvailableDates(ctx context.Context, count int) ([]models.AvailableDate, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
