package reports

import (
	"context"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
	bookingRepo "github.com/jnails/salon-booking-service/internal/infra/storage/booking"
)

// BookingReporter exposes the booking aggregates the reports are built from.
type BookingReporter interface {
	GetReportSummary(ctx context.Context, from, to time.Time) (bookingRepo.ReportSummary, error)
	GetClientAggregates(ctx context.Context, limit uint64) ([]*bookingRepo.ClientAggregate, error)
}

// SlotCounter exposes the per-day slot counters.
type SlotCounter interface {
	CountByDate(ctx context.Context, date time.Time) (domain.SlotDayStats, error)
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
