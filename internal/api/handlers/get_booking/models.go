package get_booking

import (
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
)

// ServiceLine is one snapshotted service on the booking.
type ServiceLine struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingResponse is the HTTP response body.
type BookingResponse struct {
	ID               int64         `json:"id"`
	BookingReference string        `json:"bookingReference"`
	ClientName       string        `json:"clientName"`
	ClientEmail      string        `json:"clientEmail"`
	ClientPhone      string        `json:"clientPhone"`
	Date             string        `json:"date"`
	StartTime        string        `json:"startTime"`
	EndTime          string        `json:"endTime"`
	Status           string        `json:"status"`
	PaymentStatus    string        `json:"paymentStatus"`
	PaymentMethod    string        `json:"paymentMethod"`
	TotalAmount      float64       `json:"totalAmount"`
	Notes            *string       `json:"notes,omitempty"`
	Services         []ServiceLine `json:"services"`
	CreatedAt        string        `json:"createdAt"`
}

// FromDomainBooking converts a booking into the HTTP shape.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	services := make([]ServiceLine, 0, len(b.Services))
	for _, s := range b.Services {
		services = append(services, ServiceLine{
			ServiceID:       s.ServiceID,
			Name:            s.ServiceName,
			Price:           s.ServicePrice,
			DurationMinutes: s.ServiceDurationMinutes,
		})
	}

	return &BookingResponse{
		ID:               b.ID,
		BookingReference: b.BookingReference,
		ClientName:       b.ClientName,
		ClientEmail:      b.ClientEmail,
		ClientPhone:      b.ClientPhone,
		Date:             b.AppointmentDate.Format(domain.DateFormat),
		StartTime:        b.StartTime.String(),
		EndTime:          b.EndTime.String(),
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		PaymentMethod:    string(b.PaymentMethod),
		TotalAmount:      b.TotalAmount,
		Notes:            b.Notes,
		Services:         services,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
}
