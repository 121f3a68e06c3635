package availability

import (
	"time"

	"github.com/jnails/salon-booking-service/internal/service/availability/models"
	"github.com/jnails/salon-booking-service/pkg/types"
)

// periodFor buckets a slot start time into the display period.
// Before 12:00 is morning, 12:00 to 16:59 is afternoon, 17:00 on is evening.
func periodFor(start types.TimeString) models.Period {
	hour, err := start.Hour()
	if err != nil {
		return models.PeriodMorning
	}
	switch {
	case hour < 12:
		return models.PeriodMorning
	case hour < 17:
		return models.PeriodAfternoon
	default:
		return models.PeriodEvening
	}
}

// isPeakTime reports whether the slot falls into a high-demand window:
// Friday and Saturday 10:00-16:00, or weekday evenings 17:00-19:00.
func isPeakTime(date time.Time, start types.TimeString) bool {
	hour, err := start.Hour()
	if err != nil {
		return false
	}

	weekday := date.Weekday()
	if weekday == time.Friday || weekday == time.Saturday {
		return hour >= 10 && hour < 16
	}
	if weekday == time.Sunday {
		return false
	}
	return hour >= 17 && hour < 19
}

// isSameDay reports whether two instants fall on the same calendar date.
func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// dateOnly truncates an instant to its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isDateInPast reports whether the date is before today.
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}

// isBeyondHorizon reports whether the date is past the advance booking window.
func isBeyondHorizon(date, now time.Time, maxAdvanceMonths int) bool {
	horizon := dateOnly(now).AddDate(0, maxAdvanceMonths, 0)
	return dateOnly(date).After(horizon)
}

// meetsMinNotice reports whether a slot starting at start on date leaves at
// least the minimum notice from now. Dates after today always qualify.
func meetsMinNotice(date time.Time, start types.TimeString, now time.Time, minNoticeHours int) bool {
	startAt, err := start.OnDate(date)
	if err != nil {
		return false
	}
	return !startAt.Before(now.Add(time.Duration(minNoticeHours) * time.Hour))
}
