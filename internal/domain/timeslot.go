package domain

import (
	"time"

	"github.com/jnails/salon-booking-service/pkg/types"
)

// SlotStatus represents the lifecycle state of a time slot.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotBooked      SlotStatus = "booked"
	SlotUnavailable SlotStatus = "unavailable"
)

// TimeSlot represents one bookable interval on a calendar date.
// Invariant: BookingID is non-nil iff Status == SlotBooked.
// At most one slot exists per (date, start, end) triple.
type TimeSlot struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    SlotStatus
	BookingID *int64
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailable returns true if the slot can be reserved.
func (s *TimeSlot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// IsBooked returns true if the slot is held by a booking.
func (s *TimeSlot) IsBooked() bool {
	return s.Status == SlotBooked
}

// IsUnavailable returns true if the slot was blocked by staff.
func (s *TimeSlot) IsUnavailable() bool {
	return s.Status == SlotUnavailable
}

// SlotDayStats aggregates slot counts for one date.
type SlotDayStats struct {
	Total       int
	Available   int
	Booked      int
	Unavailable int
}

// BookingPercentage returns booked/total as a rounded percentage, 0 when empty.
func (s SlotDayStats) BookingPercentage() int {
	if s.Total == 0 {
		return 0
	}
	return int(float64(s.Booked)/float64(s.Total)*100 + 0.5)
}

// ValidSlotStatus reports whether the string is a known slot status.
func ValidSlotStatus(s string) bool {
	switch SlotStatus(s) {
	case SlotAvailable, SlotBooked, SlotUnavailable:
		return true
	}
	return false
}
