package servicecatalog

import (
	"context"

	"github.com/jnails/salon-booking-service/internal/domain"
)

// CatalogRepository is the service catalog store.
type CatalogRepository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
	List(ctx context.Context, status *domain.ServiceStatus) ([]*domain.Service, error)
	Update(ctx context.Context, id int64, s *domain.Service) (*domain.Service, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ServiceStatus) error
	Delete(ctx context.Context, id int64) error
}

// BookingChecker answers whether bookings reference a catalog service.
type BookingChecker interface {
	ExistsByServiceID(ctx context.Context, serviceID int64) (bool, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
