package get_available_slots

import (
	"github.com/jnails/salon-booking-service/internal/domain"
	getAvailableSlots "github.com/jnails/salon-booking-service/internal/usecase/get_available_slots"
)

// SlotResponse is one bookable slot.
type SlotResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsPeak    bool   `json:"isPeak"`
}

// Response groups the day's open slots by period.
type Response struct {
	Date           string         `json:"date"`
	Morning        []SlotResponse `json:"morning"`
	Afternoon      []SlotResponse `json:"afternoon"`
	Evening        []SlotResponse `json:"evening"`
	TotalSlots     int            `json:"totalSlots"`
	AvailableSlots int            `json:"availableSlots"`
}

// FromUseCaseResponse converts the flow result into the HTTP shape.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *Response {
	return &Response{
		Date:           resp.Date.Format(domain.DateFormat),
		Morning:        toSlots(resp.Morning),
		Afternoon:      toSlots(resp.Afternoon),
		Evening:        toSlots(resp.Evening),
		TotalSlots:     resp.TotalSlots,
		AvailableSlots: resp.AvailableSlots,
	}
}

func toSlots(slots []getAvailableSlots.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			ID:        s.ID,
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			IsPeak:    s.IsPeak,
		})
	}
	return out
}
