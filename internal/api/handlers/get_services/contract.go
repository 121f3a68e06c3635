package get_services

import (
	"context"

	"github.com/jnails/salon-booking-service/internal/domain"
)

type CatalogService interface {
	List(ctx context.Context, status *domain.ServiceStatus) ([]*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
