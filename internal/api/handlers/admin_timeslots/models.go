package admin_timeslots

import (
	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/timeslots"
)

// SlotRow is one slot in the admin listing.
type SlotRow struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Status    string  `json:"status"`
	BookingID *int64  `json:"bookingId,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// StatsResponse is the day's slot counters.
type StatsResponse struct {
	Total             int `json:"total"`
	Available         int `json:"available"`
	Booked            int `json:"booked"`
	Unavailable       int `json:"unavailable"`
	BookingPercentage int `json:"bookingPercentage"`
}

// ListResponse is the admin slot listing for a date.
type ListResponse struct {
	Date  string        `json:"date"`
	Slots []SlotRow     `json:"slots"`
	Stats StatsResponse `json:"stats"`
}

// GenerateRequest asks for slot generation on a date or a range.
type GenerateRequest struct {
	Date     *string `json:"date,omitempty"`
	FromDate *string `json:"fromDate,omitempty"`
	ToDate   *string `json:"toDate,omitempty"`
}

// GenerateResponse reports what generation did.
type GenerateResponse struct {
	Created      int `json:"created"`
	DatesSkipped int `json:"datesSkipped"`
}

// UpdateRequest is the HTTP request body for a single slot edit.
type UpdateRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// BulkUpdateRequest is the HTTP request body for a bulk edit.
type BulkUpdateRequest struct {
	SlotIDs []int64 `json:"slotIds"`
	Status  string  `json:"status"`
	Notes   *string `json:"notes,omitempty"`
}

// BulkUpdateResponse reports the bulk edit outcome.
type BulkUpdateResponse struct {
	Updated    int     `json:"updated"`
	SkippedIDs []int64 `json:"skippedIds"`
}

// FromDomainSlots converts slots and counters into the HTTP shape.
func FromDomainSlots(date string, slots []*domain.TimeSlot, stats domain.SlotDayStats) *ListResponse {
	rows := make([]SlotRow, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, SlotRow{
			ID:        s.ID,
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Status:    string(s.Status),
			BookingID: s.BookingID,
			Notes:     s.Notes,
		})
	}

	return &ListResponse{
		Date:  date,
		Slots: rows,
		Stats: StatsResponse{
			Total:             stats.Total,
			Available:         stats.Available,
			Booked:            stats.Booked,
			Unavailable:       stats.Unavailable,
			BookingPercentage: stats.BookingPercentage(),
		},
	}
}

// FromBulkResult converts the bulk edit outcome into the HTTP shape.
func FromBulkResult(result timeslots.BulkUpdateResult) *BulkUpdateResponse {
	skipped := result.SkippedIDs
	if skipped == nil {
		skipped = []int64{}
	}
	return &BulkUpdateResponse{
		Updated:    result.Updated,
		SkippedIDs: skipped,
	}
}
