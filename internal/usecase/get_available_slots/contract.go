package get_available_slots

import (
	"context"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/availability/models"
)

// AvailabilityService is the engine answering the slot question.
type AvailabilityService interface {
	GetAvailableTimeSlots(ctx context.Context, date time.Time) (*models.DaySlots, error)
}

// CatalogService resolves the optional service ids on the request.
type CatalogService interface {
	GetActiveByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
