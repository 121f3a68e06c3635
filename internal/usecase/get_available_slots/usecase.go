package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/availability"
	"github.com/jnails/salon-booking-service/internal/service/availability/models"
)

// UseCase lists the bookable slots for one date.
type UseCase struct {
	availability AvailabilityService
	catalog      CatalogService
	logger       Logger
}

// NewUseCase creates the slot listing flow.
func NewUseCase(availabilitySvc AvailabilityService, catalog CatalogService, logger Logger) *UseCase {
	return &UseCase{
		availability: availabilitySvc,
		catalog:      catalog,
		logger:       logger,
	}
}

// Execute returns the open slots for the requested date grouped by period.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return nil, fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}
	if len(req.ServiceIDs) > 0 {
		// Existence check only. Slots are uniform half-hour units, the
		// list is not narrowed by service duration.
		if _, err := uc.catalog.GetActiveByIDs(ctx, req.ServiceIDs); err != nil {
			uc.logger.Warn("GetAvailableSlots: service lookup failed for ids=%v: %v", req.ServiceIDs, err)
			return nil, ErrServiceNotFound
		}
	}

	day, err := uc.availability.GetAvailableTimeSlots(ctx, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrDateInPast):
			return nil, ErrInvalidDate
		case errors.Is(err, availability.ErrDateClosed):
			return nil, ErrSalonClosed
		case errors.Is(err, availability.ErrDateTooFar):
			return nil, ErrDateTooFarInFuture
		default:
			uc.logger.Error("GetAvailableSlots: engine error for date=%s: %v",
				req.Date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return toResponse(day), nil
}

func toResponse(day *models.DaySlots) *Response {
	return &Response{
		Date:           day.Date,
		Morning:        toSlots(day.Morning),
		Afternoon:      toSlots(day.Afternoon),
		Evening:        toSlots(day.Evening),
		TotalSlots:     day.Stats.Total,
		AvailableSlots: day.Total(),
	}
}

func toSlots(views []models.SlotView) []Slot {
	slots := make([]Slot, 0, len(views))
	for _, v := range views {
		slots = append(slots, Slot{
			ID:        v.ID,
			StartTime: v.StartTime,
			EndTime:   v.EndTime,
			IsPeak:    v.IsPeak,
		})
	}
	return slots
}
