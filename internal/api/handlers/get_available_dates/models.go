package get_available_dates

import (
	"github.com/jnails/salon-booking-service/internal/domain"
	getAvailableDates "github.com/jnails/salon-booking-service/internal/usecase/get_available_dates"
)

// DateResponse is one bookable date.
type DateResponse struct {
	Date            string `json:"date"`
	Weekday         string `json:"weekday"`
	Formatted       string `json:"formatted"`
	IsToday         bool   `json:"isToday"`
	IsTomorrow      bool   `json:"isTomorrow"`
	HasAvailability bool   `json:"hasAvailability"`
}

// Response is the HTTP response body.
type Response struct {
	Dates []DateResponse `json:"dates"`
}

// FromUseCaseResponse converts the flow result into the HTTP shape.
func FromUseCaseResponse(resp *getAvailableDates.Response) *Response {
	dates := make([]DateResponse, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		dates = append(dates, DateResponse{
			Date:            d.Date.Format(domain.DateFormat),
			Weekday:         d.Weekday,
			Formatted:       d.Formatted,
			IsToday:         d.IsToday,
			IsTomorrow:      d.IsTomorrow,
			HasAvailability: d.HasAvailability,
		})
	}
	return &Response{Dates: dates}
}
