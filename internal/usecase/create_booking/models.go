package create_booking

import (
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/pkg/types"
)

// Request is the input for creating a booking.
type Request struct {
	ClientName  string
	ClientEmail string
	ClientPhone string

	Date      time.Time        // appointment date, no time part
	StartTime types.TimeString // slot start, e.g. "10:00"

	ServiceIDs    []int64
	PaymentMethod domain.PaymentMethod
	Notes         *string
}

// BookedService is one service line on the confirmation.
type BookedService struct {
	ServiceID       int64
	Name            string
	Price           float64
	DurationMinutes int
}

// Response is the confirmation returned to the client.
type Response struct {
	ID               int64
	BookingReference string

	ClientName  string
	ClientEmail string
	ClientPhone string

	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString

	Status        string
	PaymentStatus string
	PaymentMethod string
	TotalAmount   float64
	Notes         *string

	Services []BookedService

	CreatedAt time.Time
}
