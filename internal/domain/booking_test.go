package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanBeCancelled(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   BookingStatus
		date     time.Time
		start    string
		expected bool
	}{
		{
			name:     "pending booking two days out",
			status:   StatusPending,
			date:     time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
			start:    "10:00",
			expected: true,
		},
		{
			name:     "confirmed booking exactly 24h away",
			status:   StatusConfirmed,
			date:     time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
			start:    "12:00",
			expected: true,
		},
		{
			name:     "confirmed booking under 24h away",
			status:   StatusConfirmed,
			date:     time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
			start:    "11:30",
			expected: false,
		},
		{
			name:     "completed booking",
			status:   StatusCompleted,
			date:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			start:    "10:00",
			expected: false,
		},
		{
			name:     "cancelled booking",
			status:   StatusCancelled,
			date:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			start:    "10:00",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{
				Status:          tt.status,
				AppointmentDate: tt.date,
				StartTime:       mustTime(t, tt.start),
			}
			assert.Equal(t, tt.expected, b.CanBeCancelled(now))
		})
	}
}

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusInProgress, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusNoShow, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusNoShow, StatusCompleted, false},
	}

	for _, tt := range tests {
		b := &Booking{Status: tt.from}
		assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusNoShow}).IsActive())
}

func TestValidBookingStatus(t *testing.T) {
	assert.True(t, ValidBookingStatus("confirmed"))
	assert.True(t, ValidBookingStatus("no_show"))
	assert.False(t, ValidBookingStatus("unknown"))
	assert.False(t, ValidBookingStatus(""))
}
