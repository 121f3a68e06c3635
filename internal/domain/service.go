package domain

import (
	"fmt"
	"time"
)

// ServiceStatus represents the catalog status of a salon service.
type ServiceStatus string

const (
	ServiceActive   ServiceStatus = "active"
	ServiceInactive ServiceStatus = "inactive"
)

// Service represents a bookable salon service.
// Price and duration are snapshotted into BookingService rows at booking
// time, so editing a service never rewrites history.
type Service struct {
	ID              int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	ImageURL        *string
	IsPopular       bool
	Status          ServiceStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the service can be offered to clients.
func (s *Service) IsActive() bool {
	return s.Status == ServiceActive
}

// FormattedDuration renders the duration as "1h 30min" / "45min".
func (s *Service) FormattedDuration() string {
	return FormatDuration(s.DurationMinutes)
}

// FormatDuration renders a minute count the way the salon displays it.
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dmin", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dmin", mins)
	}
}
