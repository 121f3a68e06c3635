package models

import (
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/pkg/types"
)

// Period is a display bucket for time slots.
type Period string

const (
	PeriodMorning   Period = "morning"   // before 12:00
	PeriodAfternoon Period = "afternoon" // 12:00 to 16:59
	PeriodEvening   Period = "evening"   // 17:00 onwards
)

// AvailableDate is one bookable calendar date offered to the client.
type AvailableDate struct {
	Date            time.Time `json:"date"`
	Weekday         string    `json:"weekday"`
	Formatted       string    `json:"formatted"`
	IsToday         bool      `json:"is_today"`
	IsTomorrow      bool      `json:"is_tomorrow"`
	HasAvailability bool      `json:"has_availability"`
}

// SlotView is one slot as shown to the client.
type SlotView struct {
	ID        int64            `json:"id"`
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
	Period    Period           `json:"period"`
	IsPeak    bool             `json:"is_peak"`
}

// DaySlots is the availability picture for one date, slots grouped
// by period in day order.
type DaySlots struct {
	Date      time.Time           `json:"date"`
	Morning   []SlotView          `json:"morning"`
	Afternoon []SlotView          `json:"afternoon"`
	Evening   []SlotView          `json:"evening"`
	Stats     domain.SlotDayStats `json:"stats"`
}

// Total returns the number of offered slots across all periods.
func (d *DaySlots) Total() int {
	return len(d.Morning) + len(d.Afternoon) + len(d.Evening)
}
