package reports

import (
	"context"
	"time"

	"github.com/jnails/salon-booking-service/internal/service/reports"
)

type ReportService interface {
	GetSummary(ctx context.Context, from, to time.Time) (*reports.Summary, error)
	GetTopClients(ctx context.Context, limit uint64) ([]*reports.ClientReport, error)
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
