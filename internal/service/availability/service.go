package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
	slotRepo "github.com/jnails/salon-booking-service/internal/infra/storage/timeslot"
	"github.com/jnails/salon-booking-service/internal/service/availability/models"
	"github.com/jnails/salon-booking-service/pkg/types"
)

// Config carries the salon's booking-window rules.
type Config struct {
	StartHour           int
	EndHour             int
	SlotDurationMinutes int
	MinNoticeHours      int
	MaxAdvanceMonths    int
	ClosedWeekday       time.Weekday
	AvailableDatesCount int
}

// DefaultConfig returns the rules the salon runs with.
func DefaultConfig() Config {
	return Config{
		StartHour:           domain.DefaultBusinessStartHour,
		EndHour:             domain.DefaultBusinessEndHour,
		SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
		MinNoticeHours:      domain.DefaultMinNoticeHours,
		MaxAdvanceMonths:    domain.DefaultMaxAdvanceMonths,
		ClosedWeekday:       time.Weekday(domain.DefaultClosedWeekday),
		AvailableDatesCount: domain.DefaultAvailableDatesCount,
	}
}

// Service answers "when can a client come in" and hands out slot
// reservations. All date rules (past, closed day, horizon, notice) live here.
type Service struct {
	slotRepo SlotRepository
	timeProv TimeProvider
	cfg      Config
	logger   Logger
}

// NewService creates the availability engine.
func NewService(slotRepo SlotRepository, timeProv TimeProvider, cfg Config, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		timeProv: timeProv,
		cfg:      cfg,
		logger:   logger,
	}
}

// ValidateDate checks the calendar-level rules for a date.
// Returns nil when the date may hold bookings.
func (s *Service) ValidateDate(date time.Time) error {
	now := s.timeProv.Now()
	if isDateInPast(date, now) {
		return ErrDateInPast
	}
	if date.Weekday() == s.cfg.ClosedWeekday {
		return ErrDateClosed
	}
	if isBeyondHorizon(date, now, s.cfg.MaxAdvanceMonths) {
		return ErrDateTooFar
	}
	return nil
}

// IsDateAvailable reports whether the date passes the calendar rules and
// still has at least one open slot.
func (s *Service) IsDateAvailable(ctx context.Context, date time.Time) (bool, error) {
	if err := s.ValidateDate(date); err != nil {
		return false, nil
	}

	available, err := s.slotRepo.HasAvailableForDate(ctx, date)
	if err != nil {
		s.logger.Error("IsDateAvailable: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: IsDateAvailable - repository error: %v", ErrInternal, err)
	}
	return available, nil
}

// GetAvailableDates returns up to count bookable dates starting from today.
// The scan window is twice the requested count so closed days and fully
// booked days do not shrink the answer, capped at the booking horizon.
func (s *Service) GetAvailableDates(ctx context.Context, count int) ([]models.AvailableDate, error) {
	if count <= 0 {
		count = s.cfg.AvailableDatesCount
	}
	now := s.timeProv.Now()
	horizon := dateOnly(now).AddDate(0, s.cfg.MaxAdvanceMonths, 0)

	dates := make([]models.AvailableDate, 0, count)
	for offset := 0; offset < count*2 && len(dates) < count; offset++ {
		date := dateOnly(now).AddDate(0, 0, offset)
		if date.After(horizon) {
			break
		}

		available, err := s.IsDateAvailable(ctx, date)
		if err != nil {
			return nil, err
		}
		if !available {
			continue
		}

		dates = append(dates, models.AvailableDate{
			Date:            date,
			Weekday:         date.Weekday().String(),
			Formatted:       date.Format("Mon, Jan 2"),
			IsToday:         offset == 0,
			IsTomorrow:      offset == 1,
			HasAvailability: true,
		})
	}

	s.logger.Info("GetAvailableDates: found %d bookable dates (requested %d)", len(dates), count)
	return dates, nil
}

// GetAvailableTimeSlots returns the open slots for a date grouped by period,
// with peak-hour marking. Slots inside the minimum notice window are
// filtered out when the date is today.
func (s *Service) GetAvailableTimeSlots(ctx context.Context, date time.Time) (*models.DaySlots, error) {
	if err := s.ValidateDate(date); err != nil {
		s.logger.Warn("GetAvailableTimeSlots: date=%s rejected: %v", date.Format(domain.DateFormat), err)
		return nil, err
	}

	status := domain.SlotAvailable
	slots, err := s.slotRepo.GetByDate(ctx, date, &status)
	if err != nil {
		s.logger.Error("GetAvailableTimeSlots: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetAvailableTimeSlots - repository error: %v", ErrInternal, err)
	}

	stats, err := s.slotRepo.CountByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetAvailableTimeSlots: stats error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetAvailableTimeSlots - stats error: %v", ErrInternal, err)
	}

	now := s.timeProv.Now()
	day := &models.DaySlots{Date: dateOnly(date), Stats: stats}

	for _, slot := range slots {
		if isSameDay(date, now) && !meetsMinNotice(date, slot.StartTime, now, s.cfg.MinNoticeHours) {
			continue
		}

		view := models.SlotView{
			ID:        slot.ID,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Period:    periodFor(slot.StartTime),
			IsPeak:    isPeakTime(date, slot.StartTime),
		}

		switch view.Period {
		case models.PeriodMorning:
			day.Morning = append(day.Morning, view)
		case models.PeriodAfternoon:
			day.Afternoon = append(day.Afternoon, view)
		case models.PeriodEvening:
			day.Evening = append(day.Evening, view)
		}
	}

	s.logger.Info("GetAvailableTimeSlots: date=%s offering %d of %d slots",
		date.Format(domain.DateFormat), day.Total(), stats.Total)
	return day, nil
}

// ValidateBookingTime runs the full rule chain for booking the exact
// (date, start, end) interval and returns every violated rule in check
// order: past date, closed day, horizon, slot existence, slot
// availability, notice. The end time comes from the caller because a
// booking's interval is the sum of its services, not the slot grid.
func (s *Service) ValidateBookingTime(ctx context.Context, date time.Time, start, end types.TimeString) ([]error, error) {
	violations := make([]error, 0)

	now := s.timeProv.Now()
	if isDateInPast(date, now) {
		violations = append(violations, ErrDateInPast)
	}
	if date.Weekday() == s.cfg.ClosedWeekday {
		violations = append(violations, ErrDateClosed)
	}
	if isBeyondHorizon(date, now, s.cfg.MaxAdvanceMonths) {
		violations = append(violations, ErrDateTooFar)
	}

	// Calendar violations make the slot lookup meaningless.
	if len(violations) > 0 {
		return violations, nil
	}

	if !meetsMinNotice(date, start, now, s.cfg.MinNoticeHours) {
		violations = append(violations, ErrTooSoon)
	}

	slot, err := s.slotRepo.GetByDateAndTime(ctx, date, start.String(), end.String())
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			violations = append(violations, ErrSlotNotFound)
			return violations, nil
		}
		s.logger.Error("ValidateBookingTime: repository error for date=%s start=%s: %v",
			date.Format(domain.DateFormat), start, err)
		return nil, fmt.Errorf("%w: ValidateBookingTime - repository error: %v", ErrInternal, err)
	}

	if !slot.IsAvailable() {
		violations = append(violations, ErrSlotNotAvailable)
	}

	return violations, nil
}

// BookTimeSlot reserves the slot at (date, start, end) for a booking.
// The reservation is a compare-and-set in the slot store, so under
// concurrency exactly one caller succeeds; losers get ErrSlotNotAvailable.
func (s *Service) BookTimeSlot(ctx context.Context, date time.Time, start, end types.TimeString, bookingID int64) (int64, error) {
	slot, err := s.slotRepo.GetByDateAndTime(ctx, date, start.String(), end.String())
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("BookTimeSlot: no slot at date=%s start=%s", date.Format(domain.DateFormat), start)
			return 0, ErrSlotNotFound
		}
		s.logger.Error("BookTimeSlot: repository error for date=%s start=%s: %v",
			date.Format(domain.DateFormat), start, err)
		return 0, fmt.Errorf("%w: BookTimeSlot - repository error: %v", ErrInternal, err)
	}

	if err := s.slotRepo.MarkBooked(ctx, slot.ID, bookingID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
			s.logger.Warn("BookTimeSlot: lost reservation race for slot id=%d booking=%d", slot.ID, bookingID)
			return 0, ErrSlotNotAvailable
		}
		s.logger.Error("BookTimeSlot: failed to reserve slot id=%d for booking=%d: %v", slot.ID, bookingID, err)
		return 0, fmt.Errorf("%w: BookTimeSlot - reserve slot: %v", ErrInternal, err)
	}

	s.logger.Info("BookTimeSlot: reserved slot id=%d for booking=%d", slot.ID, bookingID)
	return slot.ID, nil
}

// ReleaseTimeSlot frees whatever slot the booking holds. Bookings without a
// slot (already released) are a no-op.
func (s *Service) ReleaseTimeSlot(ctx context.Context, bookingID int64) error {
	slot, err := s.slotRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Info("ReleaseTimeSlot: booking=%d holds no slot", bookingID)
			return nil
		}
		s.logger.Error("ReleaseTimeSlot: repository error for booking=%d: %v", bookingID, err)
		return fmt.Errorf("%w: ReleaseTimeSlot - repository error: %v", ErrInternal, err)
	}

	if err := s.slotRepo.MarkAvailable(ctx, slot.ID); err != nil {
		s.logger.Error("ReleaseTimeSlot: failed to release slot id=%d for booking=%d: %v", slot.ID, bookingID, err)
		return fmt.Errorf("%w: ReleaseTimeSlot - release slot: %v", ErrInternal, err)
	}

	s.logger.Info("ReleaseTimeSlot: released slot id=%d from booking=%d", slot.ID, bookingID)
	return nil
}

// GetBookingStats returns the slot counters for a date.
func (s *Service) GetBookingStats(ctx context.Context, date time.Time) (domain.SlotDayStats, error) {
	stats, err := s.slotRepo.CountByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetBookingStats: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return domain.SlotDayStats{}, fmt.Errorf("%w: GetBookingStats - repository error: %v", ErrInternal, err)
	}
	return stats, nil
}
