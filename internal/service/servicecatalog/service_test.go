package servicecatalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnails/salon-booking-service/internal/domain"
	catalogRepo "github.com/jnails/salon-booking-service/internal/infra/storage/service"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCatalogRepo struct {
	nextID int64
	byID   map[int64]*domain.Service
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{nextID: 1, byID: make(map[int64]*domain.Service)}
}

func (f *fakeCatalogRepo) put(s *domain.Service) *domain.Service {
	s.ID = f.nextID
	f.nextID++
	f.byID[s.ID] = s
	return s
}

func (f *fakeCatalogRepo) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	return f.put(s), nil
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalogRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) List(_ context.Context, status *domain.ServiceStatus) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0)
	for _, s := range f.byID {
		if status == nil || s.Status == *status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) Update(_ context.Context, id int64, s *domain.Service) (*domain.Service, error) {
	if _, ok := f.byID[id]; !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	s.ID = id
	f.byID[id] = s
	return s, nil
}

func (f *fakeCatalogRepo) UpdateStatus(_ context.Context, id int64, status domain.ServiceStatus) error {
	s, ok := f.byID[id]
	if !ok {
		return catalogRepo.ErrServiceNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeCatalogRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeBookingChecker struct {
	referenced map[int64]bool
}

func (f *fakeBookingChecker) ExistsByServiceID(_ context.Context, serviceID int64) (bool, error) {
	return f.referenced[serviceID], nil
}

func newTestService() (*Service, *fakeCatalogRepo, *fakeBookingChecker) {
	repo := newFakeCatalogRepo()
	checker := &fakeBookingChecker{referenced: make(map[int64]bool)}
	return NewService(repo, checker, nopLogger{}), repo, checker
}

func TestService_Create(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), &domain.Service{
		Name: "Gel Manicure", Price: 1500, DurationMinutes: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceActive, created.Status, "status defaults to active")

	_, err = svc.Create(context.Background(), &domain.Service{Name: "", Price: 100, DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &domain.Service{Name: "X", Price: -1, DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &domain.Service{Name: "X", Price: 100, DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetActiveByIDs(t *testing.T) {
	svc, repo, _ := newTestService()
	active := repo.put(&domain.Service{Name: "Manicure", Price: 1000, DurationMinutes: 30, Status: domain.ServiceActive})
	inactive := repo.put(&domain.Service{Name: "Old Treatment", Price: 500, DurationMinutes: 30, Status: domain.ServiceInactive})

	services, err := svc.GetActiveByIDs(context.Background(), []int64{active.ID})
	require.NoError(t, err)
	assert.Len(t, services, 1)

	_, err = svc.GetActiveByIDs(context.Background(), []int64{active.ID, 99})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.GetActiveByIDs(context.Background(), []int64{active.ID, inactive.ID})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_Delete(t *testing.T) {
	svc, repo, checker := newTestService()
	free := repo.put(&domain.Service{Name: "Manicure", Price: 1000, DurationMinutes: 30, Status: domain.ServiceActive})
	used := repo.put(&domain.Service{Name: "Pedicure", Price: 2000, DurationMinutes: 60, Status: domain.ServiceActive})
	checker.referenced[used.ID] = true

	require.NoError(t, svc.Delete(context.Background(), free.ID))
	assert.NotContains(t, repo.byID, free.ID)

	err := svc.Delete(context.Background(), used.ID)
	assert.ErrorIs(t, err, ErrServiceReferenced)
	assert.Contains(t, repo.byID, used.ID)

	err = svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_Deactivate(t *testing.T) {
	svc, repo, _ := newTestService()
	s := repo.put(&domain.Service{Name: "Pedicure", Price: 2000, DurationMinutes: 60, Status: domain.ServiceActive})

	require.NoError(t, svc.Deactivate(context.Background(), s.ID))
	assert.Equal(t, domain.ServiceInactive, s.Status)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), 99), ErrServiceNotFound)
}
