package admin_services

import (
	"github.com/jnails/salon-booking-service/internal/domain"
)

// ServiceRequest is the HTTP request body for creating or editing a
// catalog service.
type ServiceRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	ImageURL        *string `json:"imageUrl,omitempty"`
	IsPopular       bool    `json:"isPopular"`
	Status          *string `json:"status,omitempty"`
}

// ServiceResponse is one catalog service in the admin view.
type ServiceResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	Price             float64 `json:"price"`
	DurationMinutes   int     `json:"durationMinutes"`
	FormattedDuration string  `json:"formattedDuration"`
	ImageURL          *string `json:"imageUrl,omitempty"`
	IsPopular         bool    `json:"isPopular"`
	Status            string  `json:"status"`
}

// ListResponse is the full catalog listing.
type ListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ToDomainService converts the request into the domain shape.
func (r *ServiceRequest) ToDomainService() *domain.Service {
	service := &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		ImageURL:        r.ImageURL,
		IsPopular:       r.IsPopular,
	}
	if r.Status != nil {
		service.Status = domain.ServiceStatus(*r.Status)
	}
	return service
}

// FromDomainService converts one catalog service into the HTTP shape.
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Price:             s.Price,
		DurationMinutes:   s.DurationMinutes,
		FormattedDuration: s.FormattedDuration(),
		ImageURL:          s.ImageURL,
		IsPopular:         s.IsPopular,
		Status:            string(s.Status),
	}
}

// FromDomainServices converts the catalog into the listing shape.
func FromDomainServices(services []*domain.Service) *ListResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, FromDomainService(s))
	}
	return &ListResponse{Services: out}
}
