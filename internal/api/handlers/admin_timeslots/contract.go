package admin_timeslots

import (
	"context"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/timeslots"
)

type TimeslotService interface {
	GenerateSlotsForDate(ctx context.Context, date time.Time) (int, error)
	GenerateSlotsForRange(ctx context.Context, from, to time.Time) (timeslots.GenerateResult, error)
	ListForDate(ctx context.Context, date time.Time, status *domain.SlotStatus) ([]*domain.TimeSlot, domain.SlotDayStats, error)
	UpdateStatus(ctx context.Context, slotID int64, status domain.SlotStatus, notes *string) error
	BulkUpdateStatus(ctx context.Context, slotIDs []int64, status domain.SlotStatus, notes *string) (timeslots.BulkUpdateResult, error)
	Delete(ctx context.Context, slotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
