package get_available_slots

import (
	"time"

	"github.com/jnails/salon-booking-service/pkg/types"
)

// Request is the input for listing open slots on a date. Service ids are
// optional; they are resolved against the catalog but do not narrow the
// slot list, every slot holds any combination of services.
type Request struct {
	Date       time.Time
	ServiceIDs []int64
}

// Slot is one bookable slot offered to the client.
type Slot struct {
	ID        int64            `json:"id"`
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
	IsPeak    bool             `json:"is_peak"`
}

// Response groups the open slots by period of day.
type Response struct {
	Date      time.Time `json:"date"`
	Morning   []Slot    `json:"morning"`
	Afternoon []Slot    `json:"afternoon"`
	Evening   []Slot    `json:"evening"`

	TotalSlots     int `json:"total_slots"`
	AvailableSlots int `json:"available_slots"`
}
