package get_available_dates

import "time"

// Request is the input for listing bookable dates.
type Request struct {
	Count int // how many dates to offer; 0 means the default
}

// Date is one bookable calendar date.
type Date struct {
	Date            time.Time `json:"date"`
	Weekday         string    `json:"weekday"`
	Formatted       string    `json:"formatted"`
	IsToday         bool      `json:"is_today"`
	IsTomorrow      bool      `json:"is_tomorrow"`
	HasAvailability bool      `json:"has_availability"`
}

// Response is the list of bookable dates, nearest first.
type Response struct {
	Dates []Date `json:"dates"`
}
