package timeslots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
	slotRepo "github.com/jnails/salon-booking-service/internal/infra/storage/timeslot"
	"github.com/jnails/salon-booking-service/pkg/types"
)

// Config carries the schedule shape used for slot generation.
type Config struct {
	StartHour           int
	EndHour             int
	SlotDurationMinutes int
	ClosedWeekday       time.Weekday
}

// DefaultConfig returns the salon's working schedule.
func DefaultConfig() Config {
	return Config{
		StartHour:           domain.DefaultBusinessStartHour,
		EndHour:             domain.DefaultBusinessEndHour,
		SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
		ClosedWeekday:       time.Weekday(domain.DefaultClosedWeekday),
	}
}

// Service owns the slot inventory: generating the day grid and applying
// staff edits. Booked slots are never touched here; only the booking flow
// moves slots in and out of the booked state.
type Service struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	cfg       Config
	logger    Logger
}

// NewService creates the slot administration service.
func NewService(slotRepo SlotRepository, txManager TransactionManager, cfg Config, logger Logger) *Service {
	return &Service{
		slotRepo:  slotRepo,
		txManager: txManager,
		cfg:       cfg,
		logger:    logger,
	}
}

// GenerateResult reports what a generation run did.
type GenerateResult struct {
	Created      int
	DatesSkipped int
}

// GenerateSlotsForDate creates the full slot grid for one date. Generation
// is idempotent: a date that already has any slots is left untouched and
// reports zero created. Closed days are rejected.
func (s *Service) GenerateSlotsForDate(ctx context.Context, date time.Time) (int, error) {
	if date.Weekday() == s.cfg.ClosedWeekday {
		s.logger.Warn("GenerateSlotsForDate: date=%s is a closed day", date.Format(domain.DateFormat))
		return 0, ErrDateClosed
	}

	created := 0
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		exists, err := s.slotRepo.ExistsForDate(ctx, date)
		if err != nil {
			return fmt.Errorf("%w: GenerateSlotsForDate - existence check: %v", ErrInternal, err)
		}
		if exists {
			s.logger.Info("GenerateSlotsForDate: date=%s already generated, skipping", date.Format(domain.DateFormat))
			return nil
		}

		slots, err := s.buildDayGrid(date)
		if err != nil {
			return fmt.Errorf("%w: GenerateSlotsForDate - build grid: %v", ErrInternal, err)
		}

		if err := s.slotRepo.CreateBatch(ctx, slots); err != nil {
			// A concurrent generation run beat us to the insert. The grid
			// exists either way, so the outcome is the idempotent one.
			if errors.Is(err, slotRepo.ErrDuplicateSlot) {
				s.logger.Info("GenerateSlotsForDate: date=%s generated concurrently", date.Format(domain.DateFormat))
				return nil
			}
			return fmt.Errorf("%w: GenerateSlotsForDate - insert grid: %v", ErrInternal, err)
		}

		created = len(slots)
		return nil
	})
	if err != nil {
		s.logger.Error("GenerateSlotsForDate: date=%s failed: %v", date.Format(domain.DateFormat), err)
		return 0, err
	}

	if created > 0 {
		s.logger.Info("GenerateSlotsForDate: date=%s created %d slots", date.Format(domain.DateFormat), created)
	}
	return created, nil
}

// GenerateSlotsForRange generates grids for every date in [from, to],
// silently skipping closed days. Each date is its own transaction so one
// bad day does not roll back the rest.
func (s *Service) GenerateSlotsForRange(ctx context.Context, from, to time.Time) (GenerateResult, error) {
	var result GenerateResult

	for date := dateOnly(from); !date.After(dateOnly(to)); date = date.AddDate(0, 0, 1) {
		if date.Weekday() == s.cfg.ClosedWeekday {
			result.DatesSkipped++
			continue
		}

		created, err := s.GenerateSlotsForDate(ctx, date)
		if err != nil {
			return result, err
		}
		if created == 0 {
			result.DatesSkipped++
		}
		result.Created += created
	}

	s.logger.Info("GenerateSlotsForRange: %s to %s created %d slots, skipped %d dates",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat), result.Created, result.DatesSkipped)
	return result, nil
}

// buildDayGrid produces the available slot rows for one date, from opening
// to closing with the configured step.
func (s *Service) buildDayGrid(date time.Time) ([]*domain.TimeSlot, error) {
	open := types.TimeString(fmt.Sprintf("%02d:00", s.cfg.StartHour))
	closing := types.TimeString(fmt.Sprintf("%02d:00", s.cfg.EndHour))

	slots := make([]*domain.TimeSlot, 0)
	for current := open; current.IsBefore(closing); {
		end, err := current.AddMinutes(s.cfg.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		if end.IsAfter(closing) {
			break
		}

		slots = append(slots, &domain.TimeSlot{
			Date:      dateOnly(date),
			StartTime: current,
			EndTime:   end,
			Status:    domain.SlotAvailable,
		})
		current = end
	}
	return slots, nil
}

// ListForDate returns every slot for a date with the day's counters.
func (s *Service) ListForDate(ctx context.Context, date time.Time, status *domain.SlotStatus) ([]*domain.TimeSlot, domain.SlotDayStats, error) {
	slots, err := s.slotRepo.GetByDate(ctx, date, status)
	if err != nil {
		s.logger.Error("ListForDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, domain.SlotDayStats{}, fmt.Errorf("%w: ListForDate - repository error: %v", ErrInternal, err)
	}

	stats, err := s.slotRepo.CountByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListForDate: stats error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, domain.SlotDayStats{}, fmt.Errorf("%w: ListForDate - stats error: %v", ErrInternal, err)
	}

	return slots, stats, nil
}

// UpdateStatus applies a staff edit to one slot: opening it up or blocking
// it out. Booked slots are refused; the booking flow owns those.
func (s *Service) UpdateStatus(ctx context.Context, slotID int64, status domain.SlotStatus, notes *string) error {
	if status != domain.SlotAvailable && status != domain.SlotUnavailable {
		return ErrInvalidStatus
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("UpdateStatus: slot id=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("UpdateStatus: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if slot.IsBooked() {
		s.logger.Warn("UpdateStatus: slot id=%d is booked, refusing edit", slotID)
		return ErrSlotBooked
	}

	if status == domain.SlotAvailable {
		err = s.slotRepo.MarkAvailable(ctx, slotID)
	} else {
		err = s.slotRepo.MarkUnavailable(ctx, slotID, notes)
	}
	if err != nil {
		s.logger.Error("UpdateStatus: failed to update slot id=%d to %s: %v", slotID, status, err)
		return fmt.Errorf("%w: UpdateStatus - update slot: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: slot id=%d set to %s", slotID, status)
	return nil
}

// BulkUpdateResult reports a bulk edit: how many slots changed and which
// ids were skipped because they are booked.
type BulkUpdateResult struct {
	Updated    int
	SkippedIDs []int64
}

// BulkUpdateStatus applies one staff edit to many slots, skipping booked
// ones instead of failing the whole batch.
func (s *Service) BulkUpdateStatus(ctx context.Context, slotIDs []int64, status domain.SlotStatus, notes *string) (BulkUpdateResult, error) {
	if status != domain.SlotAvailable && status != domain.SlotUnavailable {
		return BulkUpdateResult{}, ErrInvalidStatus
	}

	var result BulkUpdateResult
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, id := range slotIDs {
			err := s.UpdateStatus(ctx, id, status, notes)
			if errors.Is(err, ErrSlotBooked) || errors.Is(err, ErrSlotNotFound) {
				result.SkippedIDs = append(result.SkippedIDs, id)
				continue
			}
			if err != nil {
				return err
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("BulkUpdateStatus: bulk edit failed: %v", err)
		return BulkUpdateResult{}, err
	}

	s.logger.Info("BulkUpdateStatus: updated %d slots to %s, skipped %d", result.Updated, status, len(result.SkippedIDs))
	return result, nil
}

// Delete removes one slot. Booked slots are refused.
func (s *Service) Delete(ctx context.Context, slotID int64) error {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if slot.IsBooked() {
		s.logger.Warn("Delete: slot id=%d is booked, refusing delete", slotID)
		return ErrSlotBooked
	}

	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: failed to delete slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Delete - delete slot: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: slot id=%d removed", slotID)
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
