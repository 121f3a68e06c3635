package timeslots

import (
	"context"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
)

// SlotRepository is the slot store behind generation and admin edits.
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.TimeSlot) error
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	GetByDate(ctx context.Context, date time.Time, status *domain.SlotStatus) ([]*domain.TimeSlot, error)
	ExistsForDate(ctx context.Context, date time.Time) (bool, error)
	MarkAvailable(ctx context.Context, slotID int64) error
	MarkUnavailable(ctx context.Context, slotID int64, notes *string) error
	CountByDate(ctx context.Context, date time.Time) (domain.SlotDayStats, error)
	Delete(ctx context.Context, slotID int64) error
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
