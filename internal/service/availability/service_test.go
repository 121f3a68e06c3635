package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnails/salon-booking-service/internal/domain"
	slotRepo "github.com/jnails/salon-booking-service/internal/infra/storage/timeslot"
	"github.com/jnails/salon-booking-service/internal/service/availability/models"
	"github.com/jnails/salon-booking-service/pkg/types"
)

// Tuesday morning. Sunday in this week is June 15.
var testNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeSlotRepo keys slots by date string and start time.
type fakeSlotRepo struct {
	slots         map[string][]*domain.TimeSlot
	markBookedErr error
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string][]*domain.TimeSlot)}
}

func (f *fakeSlotRepo) add(slot *domain.TimeSlot) {
	key := slot.Date.Format(domain.DateFormat)
	f.slots[key] = append(f.slots[key], slot)
}

func (f *fakeSlotRepo) GetByDate(_ context.Context, date time.Time, status *domain.SlotStatus) ([]*domain.TimeSlot, error) {
	out := make([]*domain.TimeSlot, 0)
	for _, s := range f.slots[date.Format(domain.DateFormat)] {
		if status == nil || s.Status == *status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) GetByDateAndTime(_ context.Context, date time.Time, start, end string) (*domain.TimeSlot, error) {
	for _, s := range f.slots[date.Format(domain.DateFormat)] {
		if s.StartTime.String() == start && s.EndTime.String() == end {
			return s, nil
		}
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) GetByBookingID(_ context.Context, bookingID int64) (*domain.TimeSlot, error) {
	for _, daySlots := range f.slots {
		for _, s := range daySlots {
			if s.BookingID != nil && *s.BookingID == bookingID {
				return s, nil
			}
		}
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) HasAvailableForDate(_ context.Context, date time.Time) (bool, error) {
	for _, s := range f.slots[date.Format(domain.DateFormat)] {
		if s.IsAvailable() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSlotRepo) MarkBooked(_ context.Context, slotID, bookingID int64) error {
	if f.markBookedErr != nil {
		return f.markBookedErr
	}
	for _, daySlots := range f.slots {
		for _, s := range daySlots {
			if s.ID == slotID {
				if !s.IsAvailable() {
					return slotRepo.ErrSlotNotAvailable
				}
				s.Status = domain.SlotBooked
				s.BookingID = &bookingID
				return nil
			}
		}
	}
	return slotRepo.ErrSlotNotAvailable
}

func (f *fakeSlotRepo) MarkAvailable(_ context.Context, slotID int64) error {
	for _, daySlots := range f.slots {
		for _, s := range daySlots {
			if s.ID == slotID {
				s.Status = domain.SlotAvailable
				s.BookingID = nil
				return nil
			}
		}
	}
	return slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) CountByDate(_ context.Context, date time.Time) (domain.SlotDayStats, error) {
	var stats domain.SlotDayStats
	for _, s := range f.slots[date.Format(domain.DateFormat)] {
		stats.Total++
		switch s.Status {
		case domain.SlotAvailable:
			stats.Available++
		case domain.SlotBooked:
			stats.Booked++
		case domain.SlotUnavailable:
			stats.Unavailable++
		}
	}
	return stats, nil
}

func newTestService(repo *fakeSlotRepo) *Service {
	return NewService(repo, fixedClock{testNow}, DefaultConfig(), nopLogger{})
}

func slot(id int64, date time.Time, start string, status domain.SlotStatus) *domain.TimeSlot {
	startTS := types.TimeString(start)
	end, _ := startTS.AddMinutes(domain.DefaultSlotDurationMinutes)
	return &domain.TimeSlot{
		ID:        id,
		Date:      date,
		StartTime: startTS,
		EndTime:   end,
		Status:    status,
	}
}

func TestService_ValidateDate(t *testing.T) {
	svc := newTestService(newFakeSlotRepo())

	assert.ErrorIs(t, svc.ValidateDate(testNow.AddDate(0, 0, -1)), ErrDateInPast)

	sunday := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, svc.ValidateDate(sunday), ErrDateClosed)

	assert.ErrorIs(t, svc.ValidateDate(testNow.AddDate(0, 4, 0)), ErrDateTooFar)

	assert.NoError(t, svc.ValidateDate(testNow.AddDate(0, 0, 1)))
	assert.NoError(t, svc.ValidateDate(testNow)) // today is fine at the date level
}

func TestService_GetAvailableDates_SkipsClosedAndFullDays(t *testing.T) {
	repo := newFakeSlotRepo()
	// Open slots today and in three days; the Sunday in between gets slots
	// too, which must still be skipped by the calendar rule.
	repo.add(slot(1, testNow, "10:00", domain.SlotAvailable))
	booked := testNow.AddDate(0, 0, 1)
	repo.add(slot(2, booked, "10:00", domain.SlotBooked))
	sunday := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	repo.add(slot(3, sunday, "10:00", domain.SlotAvailable))
	later := testNow.AddDate(0, 0, 3)
	repo.add(slot(4, later, "10:00", domain.SlotAvailable))

	svc := newTestService(repo)

	dates, err := svc.GetAvailableDates(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, dates, 2)
	assert.Equal(t, testNow.Format(domain.DateFormat), dates[0].Date.Format(domain.DateFormat))
	assert.Equal(t, later.Format(domain.DateFormat), dates[1].Date.Format(domain.DateFormat))
	assert.Equal(t, "Tuesday", dates[0].Weekday)
	assert.Equal(t, "Tue, Jun 10", dates[0].Formatted)

	assert.True(t, dates[0].IsToday)
	assert.False(t, dates[0].IsTomorrow)
	assert.True(t, dates[0].HasAvailability)
	assert.False(t, dates[1].IsToday)
	assert.False(t, dates[1].IsTomorrow)
}

func TestService_GetAvailableDates_FlagsTomorrow(t *testing.T) {
	repo := newFakeSlotRepo()
	tomorrow := testNow.AddDate(0, 0, 1)
	repo.add(slot(1, tomorrow, "10:00", domain.SlotAvailable))

	svc := newTestService(repo)

	dates, err := svc.GetAvailableDates(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, dates, 1)
	assert.False(t, dates[0].IsToday)
	assert.True(t, dates[0].IsTomorrow)
	assert.True(t, dates[0].HasAvailability)
}

func TestService_GetAvailableTimeSlots_GroupsAndFlagsPeak(t *testing.T) {
	repo := newFakeSlotRepo()
	friday := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
	repo.add(slot(1, friday, "09:00", domain.SlotAvailable))
	repo.add(slot(2, friday, "11:00", domain.SlotAvailable))
	repo.add(slot(3, friday, "14:00", domain.SlotAvailable))
	repo.add(slot(4, friday, "17:00", domain.SlotAvailable))
	repo.add(slot(5, friday, "12:00", domain.SlotBooked))

	svc := newTestService(repo)

	day, err := svc.GetAvailableTimeSlots(context.Background(), friday)
	require.NoError(t, err)

	require.Len(t, day.Morning, 2)
	require.Len(t, day.Afternoon, 1)
	require.Len(t, day.Evening, 1)
	assert.Equal(t, 4, day.Total())
	assert.Equal(t, 5, day.Stats.Total)

	// Friday peak is 10:00-16:00; evenings are off-peak on Fridays.
	assert.False(t, day.Morning[0].IsPeak)  // 09:00
	assert.True(t, day.Morning[1].IsPeak)   // 11:00
	assert.True(t, day.Afternoon[0].IsPeak) // 14:00
	assert.False(t, day.Evening[0].IsPeak)  // 17:00

	assert.Equal(t, models.PeriodEvening, day.Evening[0].Period)
}

func TestService_GetAvailableTimeSlots_MinNoticeFiltersToday(t *testing.T) {
	repo := newFakeSlotRepo()
	// now is 09:00; the 2h notice window hides everything before 11:00.
	repo.add(slot(1, testNow, "09:30", domain.SlotAvailable))
	repo.add(slot(2, testNow, "11:00", domain.SlotAvailable))
	repo.add(slot(3, testNow, "15:00", domain.SlotAvailable))

	svc := newTestService(repo)

	day, err := svc.GetAvailableTimeSlots(context.Background(), testNow)
	require.NoError(t, err)

	assert.Equal(t, 2, day.Total())
	require.Len(t, day.Morning, 1)
	assert.Equal(t, types.TimeString("11:00"), day.Morning[0].StartTime)
}

func TestService_GetAvailableTimeSlots_RejectsClosedDay(t *testing.T) {
	svc := newTestService(newFakeSlotRepo())
	sunday := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetAvailableTimeSlots(context.Background(), sunday)
	assert.ErrorIs(t, err, ErrDateClosed)
}

func TestService_ValidateBookingTime(t *testing.T) {
	repo := newFakeSlotRepo()
	tomorrow := testNow.AddDate(0, 0, 1)
	repo.add(slot(1, tomorrow, "10:00", domain.SlotAvailable))
	repo.add(slot(2, tomorrow, "11:00", domain.SlotBooked))
	repo.add(slot(3, testNow, "09:30", domain.SlotAvailable))

	svc := newTestService(repo)
	ctx := context.Background()

	t.Run("clean booking", func(t *testing.T) {
		violations, err := svc.ValidateBookingTime(ctx, tomorrow, "10:00", "10:30")
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("past date short-circuits", func(t *testing.T) {
		violations, err := svc.ValidateBookingTime(ctx, testNow.AddDate(0, 0, -1), "10:00", "10:30")
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.ErrorIs(t, violations[0], ErrDateInPast)
	})

	t.Run("closed day", func(t *testing.T) {
		sunday := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		violations, err := svc.ValidateBookingTime(ctx, sunday, "10:00", "10:30")
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.ErrorIs(t, violations[0], ErrDateClosed)
	})

	t.Run("missing slot", func(t *testing.T) {
		violations, err := svc.ValidateBookingTime(ctx, tomorrow, "10:15", "10:45")
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.ErrorIs(t, violations[0], ErrSlotNotFound)
	})

	t.Run("interval not on the slot grid", func(t *testing.T) {
		// The 10:00 slot exists but ends at 10:30; a longer interval has
		// no exact slot match.
		violations, err := svc.ValidateBookingTime(ctx, tomorrow, "10:00", "11:45")
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.ErrorIs(t, violations[0], ErrSlotNotFound)
	})

	t.Run("slot already booked", func(t *testing.T) {
		violations, err := svc.ValidateBookingTime(ctx, tomorrow, "11:00", "11:30")
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.ErrorIs(t, violations[0], ErrSlotNotAvailable)
	})

	t.Run("too soon today", func(t *testing.T) {
		violations, err := svc.ValidateBookingTime(ctx, testNow, "09:30", "10:00")
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.ErrorIs(t, violations[0], ErrTooSoon)
	})
}

func TestService_BookTimeSlot(t *testing.T) {
	repo := newFakeSlotRepo()
	tomorrow := testNow.AddDate(0, 0, 1)
	repo.add(slot(7, tomorrow, "10:00", domain.SlotAvailable))

	svc := newTestService(repo)
	ctx := context.Background()

	slotID, err := svc.BookTimeSlot(ctx, tomorrow, "10:00", "10:30", 42)
	require.NoError(t, err)
	assert.Equal(t, int64(7), slotID)

	// Second reservation of the same slot loses the compare-and-set.
	_, err = svc.BookTimeSlot(ctx, tomorrow, "10:00", "10:30", 43)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = svc.BookTimeSlot(ctx, tomorrow, "12:00", "12:30", 44)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_ReleaseTimeSlot(t *testing.T) {
	repo := newFakeSlotRepo()
	tomorrow := testNow.AddDate(0, 0, 1)
	held := slot(7, tomorrow, "10:00", domain.SlotBooked)
	bookingID := int64(42)
	held.BookingID = &bookingID
	repo.add(held)

	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.ReleaseTimeSlot(ctx, 42))
	assert.Equal(t, domain.SlotAvailable, held.Status)
	assert.Nil(t, held.BookingID)

	// A booking without a slot is a no-op, not an error.
	assert.NoError(t, svc.ReleaseTimeSlot(ctx, 99))
}
