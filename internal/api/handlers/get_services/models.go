package get_services

import (
	"github.com/jnails/salon-booking-service/internal/domain"
)

// ServiceResponse is one catalog entry on the public menu.
type ServiceResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	Price             float64 `json:"price"`
	DurationMinutes   int     `json:"durationMinutes"`
	FormattedDuration string  `json:"formattedDuration"`
	ImageURL          *string `json:"imageUrl,omitempty"`
	IsPopular         bool    `json:"isPopular"`
}

// Response is the HTTP response body.
type Response struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainServices converts catalog entries into the HTTP shape.
func FromDomainServices(services []*domain.Service) *Response {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceResponse{
			ID:                s.ID,
			Name:              s.Name,
			Description:       s.Description,
			Price:             s.Price,
			DurationMinutes:   s.DurationMinutes,
			FormattedDuration: s.FormattedDuration(),
			ImageURL:          s.ImageURL,
			IsPopular:         s.IsPopular,
		})
	}
	return &Response{Services: out}
}
