package create_booking

import (
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
	createBooking "github.com/jnails/salon-booking-service/internal/usecase/create_booking"
	"github.com/jnails/salon-booking-service/pkg/types"
)

// CreateBookingRequest is the HTTP request body.
type CreateBookingRequest struct {
	ClientName    string  `json:"clientName"`
	ClientEmail   string  `json:"clientEmail"`
	ClientPhone   string  `json:"clientPhone"`
	Date          string  `json:"date"`      // "2026-09-15"
	StartTime     string  `json:"startTime"` // "10:00"
	ServiceIDs    []int64 `json:"serviceIds"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// BookedServiceResponse is one service line on the confirmation.
type BookedServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingResponse is the HTTP response body.
type BookingResponse struct {
	ID               int64                   `json:"id"`
	BookingReference string                  `json:"bookingReference"`
	ClientName       string                  `json:"clientName"`
	ClientEmail      string                  `json:"clientEmail"`
	ClientPhone      string                  `json:"clientPhone"`
	Date             string                  `json:"date"`
	StartTime        string                  `json:"startTime"`
	EndTime          string                  `json:"endTime"`
	Status           string                  `json:"status"`
	PaymentStatus    string                  `json:"paymentStatus"`
	PaymentMethod    string                  `json:"paymentMethod"`
	TotalAmount      float64                 `json:"totalAmount"`
	Notes            *string                 `json:"notes,omitempty"`
	Services         []BookedServiceResponse `json:"services"`
	CreatedAt        string                  `json:"createdAt"`
}

// ToUseCaseRequest parses the HTTP body into the flow request.
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		ClientPhone:   r.ClientPhone,
		Date:          date,
		StartTime:     startTime,
		ServiceIDs:    r.ServiceIDs,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse converts the flow result into the HTTP shape.
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	services := make([]BookedServiceResponse, 0, len(resp.Services))
	for _, s := range resp.Services {
		services = append(services, BookedServiceResponse{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &BookingResponse{
		ID:               resp.ID,
		BookingReference: resp.BookingReference,
		ClientName:       resp.ClientName,
		ClientEmail:      resp.ClientEmail,
		ClientPhone:      resp.ClientPhone,
		Date:             resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		EndTime:          resp.EndTime.String(),
		Status:           resp.Status,
		PaymentStatus:    resp.PaymentStatus,
		PaymentMethod:    resp.PaymentMethod,
		TotalAmount:      resp.TotalAmount,
		Notes:            resp.Notes,
		Services:         services,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
