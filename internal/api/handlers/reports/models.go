package reports

import (
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/reports"
)

// SlotStats is today's slot picture on the dashboard.
type SlotStats struct {
	Total             int `json:"total"`
	Available         int `json:"available"`
	Booked            int `json:"booked"`
	Unavailable       int `json:"unavailable"`
	BookingPercentage int `json:"bookingPercentage"`
}

// SummaryResponse is the dashboard headline for a period.
type SummaryResponse struct {
	From              string    `json:"from"`
	To                string    `json:"to"`
	TotalBookings     int64     `json:"totalBookings"`
	CompletedBookings int64     `json:"completedBookings"`
	CancelledBookings int64     `json:"cancelledBookings"`
	NoShowBookings    int64     `json:"noShowBookings"`
	TotalRevenue      float64   `json:"totalRevenue"`
	TodaySlots        SlotStats `json:"todaySlots"`
}

// ClientRow is one client in the top-clients report.
type ClientRow struct {
	ClientName    string  `json:"clientName"`
	ClientEmail   string  `json:"clientEmail"`
	BookingsCount int64   `json:"bookingsCount"`
	TotalSpent    float64 `json:"totalSpent"`
	LastVisit     *string `json:"lastVisit,omitempty"`
	IsVIP         bool    `json:"isVip"`
	IsInactive    bool    `json:"isInactive"`
}

// ClientsResponse is the top-clients report.
type ClientsResponse struct {
	Clients []ClientRow `json:"clients"`
}

// FromSummary converts the service summary into the HTTP shape.
func FromSummary(s *reports.Summary) *SummaryResponse {
	return &SummaryResponse{
		From:              s.From.Format(domain.DateFormat),
		To:                s.To.Format(domain.DateFormat),
		TotalBookings:     s.TotalBookings,
		CompletedBookings: s.CompletedBookings,
		CancelledBookings: s.CancelledBookings,
		NoShowBookings:    s.NoShowBookings,
		TotalRevenue:      s.TotalRevenue,
		TodaySlots: SlotStats{
			Total:             s.TodaySlots.Total,
			Available:         s.TodaySlots.Available,
			Booked:            s.TodaySlots.Booked,
			Unavailable:       s.TodaySlots.Unavailable,
			BookingPercentage: s.TodaySlots.BookingPercentage(),
		},
	}
}

// FromClientReports converts the client reports into the HTTP shape.
func FromClientReports(clients []*reports.ClientReport) *ClientsResponse {
	rows := make([]ClientRow, 0, len(clients))
	for _, c := range clients {
		var lastVisit *string
		if c.LastVisit != nil {
			s := c.LastVisit.Format(time.RFC3339)
			lastVisit = &s
		}
		rows = append(rows, ClientRow{
			ClientName:    c.ClientName,
			ClientEmail:   c.ClientEmail,
			BookingsCount: c.BookingsCount,
			TotalSpent:    c.TotalSpent,
			LastVisit:     lastVisit,
			IsVIP:         c.IsVIP,
			IsInactive:    c.IsInactive,
		})
	}
	return &ClientsResponse{Clients: rows}
}
