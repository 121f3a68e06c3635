package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/availability/models"
	"github.com/jnails/salon-booking-service/internal/service/servicecatalog"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAvailability struct {
	day   *models.DaySlots
	err   error
	calls int
}

func (f *fakeAvailability) GetAvailableTimeSlots(_ context.Context, _ time.Time) (*models.DaySlots, error) {
	f.calls++
	return f.day, f.err
}

type fakeCatalog struct {
	active map[int64]*domain.Service
	asked  []int64
}

func (f *fakeCatalog) GetActiveByIDs(_ context.Context, ids []int64) ([]*domain.Service, error) {
	f.asked = ids
	services := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := f.active[id]
		if !ok {
			return nil, servicecatalog.ErrServiceNotFound
		}
		services = append(services, svc)
	}
	return services, nil
}

func testDay() *models.DaySlots {
	date := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	return &models.DaySlots{
		Date: date,
		Morning: []models.SlotView{
			{ID: 1, StartTime: "10:00", EndTime: "10:30", Period: models.PeriodMorning},
		},
		Afternoon: []models.SlotView{
			{ID: 2, StartTime: "14:00", EndTime: "14:30", Period: models.PeriodAfternoon, IsPeak: true},
		},
		Stats: domain.SlotDayStats{Total: 18, Available: 2, Booked: 16},
	}
}

func activeService(id int64) *domain.Service {
	return &domain.Service{ID: id, Name: "Manicure", Price: 1500, DurationMinutes: 45, Status: domain.ServiceActive}
}

func TestUseCase_Execute_ServiceIDsDoNotNarrowSlots(t *testing.T) {
	engine := &fakeAvailability{day: testDay()}
	catalog := &fakeCatalog{active: map[int64]*domain.Service{1: activeService(1), 2: activeService(2)}}
	uc := NewUseCase(engine, catalog, nopLogger{})

	date := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	plain, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	withServices, err := uc.Execute(context.Background(), &Request{Date: date, ServiceIDs: []int64{1, 2}})
	require.NoError(t, err)

	// The ids are resolved but the slot list is the same either way.
	assert.Equal(t, []int64{1, 2}, catalog.asked)
	assert.Equal(t, plain, withServices)
	assert.Len(t, withServices.Morning, 1)
	assert.Len(t, withServices.Afternoon, 1)
	assert.Equal(t, 18, withServices.TotalSlots)
	assert.Equal(t, 2, withServices.AvailableSlots)
}

func TestUseCase_Execute_UnknownServiceID(t *testing.T) {
	engine := &fakeAvailability{day: testDay()}
	catalog := &fakeCatalog{active: map[int64]*domain.Service{1: activeService(1)}}
	uc := NewUseCase(engine, catalog, nopLogger{})

	date := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{Date: date, ServiceIDs: []int64{1, 99}})
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Zero(t, engine.calls, "slot lookup is skipped when a service id does not resolve")
}

func TestUseCase_Execute_TooManyServiceIDs(t *testing.T) {
	engine := &fakeAvailability{day: testDay()}
	catalog := &fakeCatalog{active: map[int64]*domain.Service{1: activeService(1), 2: activeService(2), 3: activeService(3)}}
	uc := NewUseCase(engine, catalog, nopLogger{})

	date := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{Date: date, ServiceIDs: []int64{1, 2, 3}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_MissingDate(t *testing.T) {
	uc := NewUseCase(&fakeAvailability{}, &fakeCatalog{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
