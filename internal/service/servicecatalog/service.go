package servicecatalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jnails/salon-booking-service/internal/domain"
	catalogRepo "github.com/jnails/salon-booking-service/internal/infra/storage/service"
)

// Service manages the salon's service catalog. Edits never rewrite booking
// history: prices and durations are snapshotted at booking time, and
// services referenced by bookings can only be deactivated, not deleted.
type Service struct {
	catalogRepo CatalogRepository
	bookings    BookingChecker
	logger      Logger
}

// NewService creates the catalog service.
func NewService(catalogRepo CatalogRepository, bookings BookingChecker, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		bookings:    bookings,
		logger:      logger,
	}
}

// List returns catalog services, optionally filtered by status. The public
// surface passes active; the admin surface passes nil for everything.
func (s *Service) List(ctx context.Context, status *domain.ServiceStatus) ([]*domain.Service, error) {
	services, err := s.catalogRepo.List(ctx, status)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return services, nil
}

// GetByID fetches one catalog service.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return service, nil
}

// GetActiveByIDs fetches the given services and checks that all of them
// exist and are active. Used by the booking flow.
func (s *Service) GetActiveByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	services, err := s.catalogRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("GetActiveByIDs: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetActiveByIDs - repository error: %v", ErrInternal, err)
	}

	if len(services) != len(ids) {
		s.logger.Warn("GetActiveByIDs: requested %d services, found %d", len(ids), len(services))
		return nil, ErrServiceNotFound
	}
	for _, service := range services {
		if !service.IsActive() {
			s.logger.Warn("GetActiveByIDs: service id=%d is inactive", service.ID)
			return nil, ErrServiceNotFound
		}
	}
	return services, nil
}

// Create adds a new catalog service.
func (s *Service) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	if err := validate(service); err != nil {
		return nil, err
	}
	if service.Status == "" {
		service.Status = domain.ServiceActive
	}

	created, err := s.catalogRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service id=%d %q added", created.ID, created.Name)
	return created, nil
}

// Update rewrites a catalog service. Existing booking snapshots keep their
// old price and duration.
func (s *Service) Update(ctx context.Context, id int64, service *domain.Service) (*domain.Service, error) {
	if err := validate(service); err != nil {
		return nil, err
	}

	updated, err := s.catalogRepo.Update(ctx, id, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: service id=%d updated", id)
	return updated, nil
}

// Delete removes a catalog service, or refuses when booking history
// references it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	referenced, err := s.bookings.ExistsByServiceID(ctx, id)
	if err != nil {
		s.logger.Error("Delete: reference check failed for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - reference check: %v", ErrInternal, err)
	}
	if referenced {
		s.logger.Warn("Delete: service id=%d referenced by bookings, refusing", id)
		return ErrServiceReferenced
	}

	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: service id=%d removed", id)
	return nil
}

// Deactivate takes a service off the menu without touching history.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if err := s.catalogRepo.UpdateStatus(ctx, id, domain.ServiceInactive); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Deactivate: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: service id=%d deactivated", id)
	return nil
}

func validate(service *domain.Service) error {
	if strings.TrimSpace(service.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if service.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}
