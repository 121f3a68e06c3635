package get_available_slots

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jnails/salon-booking-service/internal/api/handlers"
	"github.com/jnails/salon-booking-service/internal/domain"
	getAvailableSlots "github.com/jnails/salon-booking-service/internal/usecase/get_available_slots"
)

const (
	msgMissingDate       = "date query parameter is required, format YYYY-MM-DD"
	msgInvalidDate       = "invalid date, format YYYY-MM-DD"
	msgInvalidServiceIDs = "serviceIds must be a comma-separated list of positive integers"
	msgTooManyServiceIDs = "too many services requested"
	msgServiceNotFound   = "one or more services not found"
	msgDateInPast        = "date is in the past"
	msgSalonClosed       = "salon is closed on this date"
	msgDateTooFar        = "date is too far in the future"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/slots?date=YYYY-MM-DD&serviceIds=1,2
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		h.logger.Warn("GET /availability/slots - invalid date=%q", raw)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceIDs, err := parseServiceIDs(r.URL.Query().Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /availability/slots - invalid serviceIds=%q", r.URL.Query().Get("serviceIds"))
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date, ServiceIDs: serviceIDs})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)
		case errors.Is(err, getAvailableSlots.ErrSalonClosed):
			handlers.RespondBadRequest(w, msgSalonClosed)
		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgTooManyServiceIDs)
		default:
			h.logger.Error("GET /availability/slots - failed for date=%s: %v", raw, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseServiceIDs reads the optional comma-separated serviceIds parameter.
func parseServiceIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid service id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
