package availability

import (
	"context"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
)

// SlotRepository is the slot store the engine reads and reserves against.
type SlotRepository interface {
	GetByDate(ctx context.Context, date time.Time, status *domain.SlotStatus) ([]*domain.TimeSlot, error)
	GetByDateAndTime(ctx context.Context, date time.Time, start, end string) (*domain.TimeSlot, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.TimeSlot, error)
	HasAvailableForDate(ctx context.Context, date time.Time) (bool, error)
	MarkBooked(ctx context.Context, slotID, bookingID int64) error
	MarkAvailable(ctx context.Context, slotID int64) error
	CountByDate(ctx context.Context, date time.Time) (domain.SlotDayStats, error)
}

// TimeProvider abstracts the clock so booking-window rules are testable.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
