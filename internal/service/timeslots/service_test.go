package timeslots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnails/salon-booking-service/internal/domain"
	slotRepo "github.com/jnails/salon-booking-service/internal/infra/storage/timeslot"
	"github.com/jnails/salon-booking-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSlotRepo struct {
	nextID    int64
	byID      map[int64]*domain.TimeSlot
	batchErr  error
	deleteErr error
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{nextID: 1, byID: make(map[int64]*domain.TimeSlot)}
}

func (f *fakeSlotRepo) put(slot *domain.TimeSlot) *domain.TimeSlot {
	slot.ID = f.nextID
	f.nextID++
	f.byID[slot.ID] = slot
	return slot
}

func (f *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.TimeSlot) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, s := range slots {
		f.put(s)
	}
	return nil
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return s, nil
}

func (f *fakeSlotRepo) GetByDate(_ context.Context, date time.Time, status *domain.SlotStatus) ([]*domain.TimeSlot, error) {
	out := make([]*domain.TimeSlot, 0)
	for _, s := range f.byID {
		if !s.Date.Equal(dateOnly(date)) {
			continue
		}
		if status == nil || s.Status == *status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) ExistsForDate(_ context.Context, date time.Time) (bool, error) {
	for _, s := range f.byID {
		if s.Date.Equal(dateOnly(date)) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSlotRepo) MarkAvailable(_ context.Context, slotID int64) error {
	s, ok := f.byID[slotID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.Status = domain.SlotAvailable
	s.BookingID = nil
	return nil
}

func (f *fakeSlotRepo) MarkUnavailable(_ context.Context, slotID int64, notes *string) error {
	s, ok := f.byID[slotID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.Status = domain.SlotUnavailable
	s.Notes = notes
	return nil
}

func (f *fakeSlotRepo) CountByDate(_ context.Context, date time.Time) (domain.SlotDayStats, error) {
	var stats domain.SlotDayStats
	for _, s := range f.byID {
		if !s.Date.Equal(dateOnly(date)) {
			continue
		}
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

func (f *fakeSlotRepo) Delete(_ context.Context, slotID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[slotID]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(f.byID, slotID)
	return nil
}

func newTestService(repo *fakeSlotRepo) *Service {
	return NewService(repo, passthroughTx{}, DefaultConfig(), nopLogger{})
}

// Monday.
var monday = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

func TestService_GenerateSlotsForDate(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.GenerateSlotsForDate(ctx, monday)
	require.NoError(t, err)
	// 9:00-18:00 in 30-minute steps.
	assert.Equal(t, 18, created)

	first, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "09:00", first.StartTime.String())
	assert.Equal(t, "09:30", first.EndTime.String())
	assert.Equal(t, domain.SlotAvailable, first.Status)

	last, err := repo.GetByID(ctx, 18)
	require.NoError(t, err)
	assert.Equal(t, "17:30", last.StartTime.String())
	assert.Equal(t, "18:00", last.EndTime.String())
}

func TestService_GenerateSlotsForDate_Idempotent(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.GenerateSlotsForDate(ctx, monday)
	require.NoError(t, err)

	created, err := svc.GenerateSlotsForDate(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, repo.byID, 18)
}

func TestService_GenerateSlotsForDate_ClosedDay(t *testing.T) {
	svc := newTestService(newFakeSlotRepo())
	sunday := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.GenerateSlotsForDate(context.Background(), sunday)
	assert.ErrorIs(t, err, ErrDateClosed)
}

func TestService_GenerateSlotsForDate_ConcurrentRun(t *testing.T) {
	repo := newFakeSlotRepo()
	repo.batchErr = slotRepo.ErrDuplicateSlot
	svc := newTestService(repo)

	created, err := svc.GenerateSlotsForDate(context.Background(), monday)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestService_GenerateSlotsForRange(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newTestService(repo)

	// Monday through Sunday: six working days, one closed.
	sunday := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	result, err := svc.GenerateSlotsForRange(context.Background(), monday, sunday)
	require.NoError(t, err)

	assert.Equal(t, 6*18, result.Created)
	assert.Equal(t, 1, result.DatesSkipped)
}

func TestService_UpdateStatus(t *testing.T) {
	repo := newFakeSlotRepo()
	available := repo.put(&domain.TimeSlot{Date: monday, StartTime: "09:00", EndTime: "09:30", Status: domain.SlotAvailable})
	booked := repo.put(&domain.TimeSlot{Date: monday, StartTime: "09:30", EndTime: "10:00", Status: domain.SlotBooked})

	svc := newTestService(repo)
	ctx := context.Background()

	notes := ptr.Ptr("staff training")
	require.NoError(t, svc.UpdateStatus(ctx, available.ID, domain.SlotUnavailable, notes))
	assert.Equal(t, domain.SlotUnavailable, available.Status)
	assert.Equal(t, notes, available.Notes)

	require.NoError(t, svc.UpdateStatus(ctx, available.ID, domain.SlotAvailable, nil))
	assert.Equal(t, domain.SlotAvailable, available.Status)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, booked.ID, domain.SlotUnavailable, nil), ErrSlotBooked)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, available.ID, domain.SlotBooked, nil), ErrInvalidStatus)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 999, domain.SlotAvailable, nil), ErrSlotNotFound)
}

func TestService_BulkUpdateStatus_SkipsBookedAndMissing(t *testing.T) {
	repo := newFakeSlotRepo()
	a := repo.put(&domain.TimeSlot{Date: monday, StartTime: "09:00", EndTime: "09:30", Status: domain.SlotAvailable})
	b := repo.put(&domain.TimeSlot{Date: monday, StartTime: "09:30", EndTime: "10:00", Status: domain.SlotBooked})
	c := repo.put(&domain.TimeSlot{Date: monday, StartTime: "10:00", EndTime: "10:30", Status: domain.SlotAvailable})

	svc := newTestService(repo)

	result, err := svc.BulkUpdateStatus(context.Background(),
		[]int64{a.ID, b.ID, c.ID, 999}, domain.SlotUnavailable, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, []int64{b.ID, 999}, result.SkippedIDs)
	assert.Equal(t, domain.SlotUnavailable, a.Status)
	assert.Equal(t, domain.SlotBooked, b.Status)
}

func TestService_Delete(t *testing.T) {
	repo := newFakeSlotRepo()
	free := repo.put(&domain.TimeSlot{Date: monday, StartTime: "09:00", EndTime: "09:30", Status: domain.SlotAvailable})
	booked := repo.put(&domain.TimeSlot{Date: monday, StartTime: "09:30", EndTime: "10:00", Status: domain.SlotBooked})

	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, free.ID))
	assert.NotContains(t, repo.byID, free.ID)

	assert.ErrorIs(t, svc.Delete(ctx, booked.ID), ErrSlotBooked)
	assert.ErrorIs(t, svc.Delete(ctx, 999), ErrSlotNotFound)
}
