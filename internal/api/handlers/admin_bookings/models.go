package admin_bookings

import (
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
)

// BookingRow is one booking in the admin listing.
type BookingRow struct {
	ID               int64   `json:"id"`
	BookingReference string  `json:"bookingReference"`
	ClientName       string  `json:"clientName"`
	ClientEmail      string  `json:"clientEmail"`
	ClientPhone      string  `json:"clientPhone"`
	Date             string  `json:"date"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"paymentStatus"`
	TotalAmount      float64 `json:"totalAmount"`
	CreatedAt        string  `json:"createdAt"`
}

// ListResponse is the paginated admin listing.
type ListResponse struct {
	Bookings []BookingRow `json:"bookings"`
	Total    int64        `json:"total"`
	Limit    uint64       `json:"limit"`
	Offset   uint64       `json:"offset"`
}

// UpdateStatusRequest is the HTTP request body for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// FromDomainBookings converts bookings into admin rows.
func FromDomainBookings(bookings []*domain.Booking, total int64, filter domain.BookingsFilter) *ListResponse {
	rows := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, BookingRow{
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
			TotalAmount:      b.TotalAmount,
			CreatedAt:        b.CreatedAt.Format(time.RFC3339),
		})
	}

	return &ListResponse{
		Bookings: rows,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
}
