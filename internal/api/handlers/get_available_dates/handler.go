package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jnails/salon-booking-service/internal/api/handlers"
	getAvailableDates "github.com/jnails/salon-booking-service/internal/usecase/get_available_dates"
)

const msgInvalidCount = "invalid count parameter"

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /availability/dates - invalid count=%q", raw)
			handlers.RespondBadRequest(w, msgInvalidCount)
			return
		}
		count = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{Count: count})
	if err != nil {
		if errors.Is(err, getAvailableDates.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidCount)
			return
		}
		h.logger.Error("GET /availability/dates - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
