package get_available_dates

import (
	"context"
	"fmt"
)

const maxDatesCount = 60

// UseCase lists the upcoming dates a client can book.
type UseCase struct {
	availability AvailabilityService
	logger       Logger
}

// NewUseCase creates the date listing flow.
func NewUseCase(availabilitySvc AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availabilitySvc,
		logger:       logger,
	}
}

// Execute returns up to Count bookable dates starting from today.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Count < 0 || req.Count > maxDatesCount {
		return nil, fmt.Errorf("%w: count must be between 0 and %d", ErrInvalidInput, maxDatesCount)
	}

	available, err := uc.availability.GetAvailableDates(ctx, req.Count)
	if err != nil {
		uc.logger.Error("GetAvailableDates: engine error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	dates := make([]Date, 0, len(available))
	for _, d := range available {
		dates = append(dates, Date{
			Date:            d.Date,
			Weekday:         d.Weekday,
			Formatted:       d.Formatted,
			IsToday:         d.IsToday,
			IsTomorrow:      d.IsTomorrow,
			HasAvailability: d.HasAvailability,
		})
	}

	return &Response{Dates: dates}, nil
}
