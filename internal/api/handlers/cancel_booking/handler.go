package cancel_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jnails/salon-booking-service/internal/api/handlers"
	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
	msgCannotCancel       = "booking can no longer be cancelled, 24 hours notice is required"
	msgReasonTooLong      = "cancellation reason is too long"
)

type Handler struct {
	bookings BookingService
	logger   Logger
}

func NewHandler(bookingSvc BookingService, logger Logger) *Handler {
	return &Handler{
		bookings: bookingSvc,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/{reference}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	// The body is optional; an empty one means no reason given.
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{reference}/cancel - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancelReasonLength {
		handlers.RespondBadRequest(w, msgReasonTooLong)
		return
	}

	if err := h.bookings.Cancel(r.Context(), reference, req.Reason); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("POST /bookings/{reference}/cancel - refused for ref=%s", reference)
			handlers.RespondUnprocessable(w, msgCannotCancel)
		default:
			h.logger.Error("POST /bookings/{reference}/cancel - failed for ref=%s: %v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{reference}/cancel - cancelled ref=%s", reference)
	handlers.RespondJSON(w, http.StatusOK, CancelBookingResponse{
		BookingReference: reference,
		Status:           string(domain.StatusCancelled),
	})
}
