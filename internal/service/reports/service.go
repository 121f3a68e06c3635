package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
)

// Service assembles the admin dashboard numbers from booking and slot
// aggregates.
type Service struct {
	bookings BookingReporter
	slots    SlotCounter
	timeProv TimeProvider
	logger   Logger
}

// NewService creates the reports service.
func NewService(bookings BookingReporter, slots SlotCounter, timeProv TimeProvider, logger Logger) *Service {
	return &Service{
		bookings: bookings,
		slots:    slots,
		timeProv: timeProv,
		logger:   logger,
	}
}

// Summary is the dashboard headline for a period plus today's slot picture.
type Summary struct {
	From time.Time
	To   time.Time

	TotalBookings     int64
	CompletedBookings int64
	CancelledBookings int64
	NoShowBookings    int64
	TotalRevenue      float64

	TodaySlots domain.SlotDayStats
}

// GetSummary computes the dashboard summary for appointments in [from, to].
func (s *Service) GetSummary(ctx context.Context, from, to time.Time) (*Summary, error) {
	if from.After(to) {
		return nil, ErrInvalidPeriod
	}

	bookingSummary, err := s.bookings.GetReportSummary(ctx, from, to)
	if err != nil {
		s.logger.Error("GetSummary: booking aggregates failed: %v", err)
		return nil, fmt.Errorf("%w: GetSummary - booking aggregates: %v", ErrInternal, err)
	}

	today := s.timeProv.Now()
	todaySlots, err := s.slots.CountByDate(ctx, today)
	if err != nil {
		s.logger.Error("GetSummary: slot counters failed for today: %v", err)
		return nil, fmt.Errorf("%w: GetSummary - slot counters: %v", ErrInternal, err)
	}

	s.logger.Info("GetSummary: period %s to %s, %d bookings, revenue %.2f",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat),
		bookingSummary.TotalBookings, bookingSummary.TotalRevenue)

	return &Summary{
		From:              from,
		To:                to,
		TotalBookings:     bookingSummary.TotalBookings,
		CompletedBookings: bookingSummary.CompletedBookings,
		CancelledBookings: bookingSummary.CancelledBookings,
		NoShowBookings:    bookingSummary.NoShowBookings,
		TotalRevenue:      bookingSummary.TotalRevenue,
		TodaySlots:        todaySlots,
	}, nil
}

// ClientReport is one client's lifetime picture with segmentation flags.
type ClientReport struct {
	ClientName    string
	ClientEmail   string
	BookingsCount int64
	TotalSpent    float64
	LastVisit     *time.Time
	IsVIP         bool
	IsInactive    bool
}

// GetTopClients returns clients by lifetime completed spend, flagged as VIP
// above the spend threshold and inactive after months without a visit.
func (s *Service) GetTopClients(ctx context.Context, limit uint64) ([]*ClientReport, error) {
	aggregates, err := s.bookings.GetClientAggregates(ctx, limit)
	if err != nil {
		s.logger.Error("GetTopClients: client aggregates failed: %v", err)
		return nil, fmt.Errorf("%w: GetTopClients - client aggregates: %v", ErrInternal, err)
	}

	inactiveCutoff := s.timeProv.Now().AddDate(0, -domain.InactiveClientMonths, 0)

	clients := make([]*ClientReport, 0, len(aggregates))
	for _, a := range aggregates {
		clients = append(clients, &ClientReport{
			ClientName:    a.ClientName,
			ClientEmail:   a.ClientEmail,
			BookingsCount: a.BookingsCount,
			TotalSpent:    a.TotalSpent,
			LastVisit:     a.LastVisit,
			IsVIP:         a.TotalSpent >= domain.VIPSpendThreshold,
			IsInactive:    a.LastVisit != nil && a.LastVisit.Before(inactiveCutoff),
		})
	}

	s.logger.Info("GetTopClients: returning %d clients", len(clients))
	return clients, nil
}
