package admin_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/jnails/salon-booking-service/internal/api/handlers"
	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/bookings"
	"github.com/jnails/salon-booking-service/pkg/ptr"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidID          = "invalid booking id"
	msgInvalidStatus      = "invalid booking status"
	msgInvalidDate        = "invalid date filter, format YYYY-MM-DD"
	msgBookingNotFound    = "booking not found"
	msgInvalidTransition  = "status transition not allowed"
	msgPaymentIncomplete  = "booking cannot be completed until its payment is completed"
	msgBookingActive      = "active bookings cannot be deleted"
)

const defaultPageSize = 20

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

// HandleList GET /api/v1/admin/bookings?search=&status=&date=&limit=&offset=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - bad filter: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	list, total, err := h.bookings.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /admin/bookings - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainBookings(list, total, filter))
}

func parseFilter(r *http.Request) (domain.BookingsFilter, error) {
	q := r.URL.Query()
	filter := domain.BookingsFilter{Limit: defaultPageSize}

	if search := q.Get("search"); search != "" {
		filter.Search = ptr.Ptr(search)
	}
	if status := q.Get("status"); status != "" {
		if !domain.ValidBookingStatus(status) {
			return filter, errors.New(msgInvalidStatus)
		}
		filter.Status = ptr.Ptr(domain.BookingStatus(status))
	}
	if rawDate := q.Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			return filter, errors.New(msgInvalidDate)
		}
		filter.Date = ptr.Ptr(date)
	}
	if rawLimit := q.Get("limit"); rawLimit != "" {
		limit, err := strconv.ParseUint(rawLimit, 10, 32)
		if err != nil || limit == 0 {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = limit
	}
	if rawOffset := q.Get("offset"); rawOffset != "" {
		offset, err := strconv.ParseUint(rawOffset, 10, 32)
		if err != nil {
			return filter, errors.New("invalid offset")
		}
		filter.Offset = offset
	}

	return filter, nil
}

// HandleUpdateStatus PATCH /api/v1/admin/bookings/{id}/status
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !domain.ValidBookingStatus(req.Status) {
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	if err := h.bookings.UpdateStatus(r.Context(), id, domain.BookingStatus(req.Status)); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - bad transition for id=%d to %s", id, req.Status)
			handlers.RespondUnprocessable(w, msgInvalidTransition)
		case errors.Is(err, bookings.ErrPaymentIncomplete):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - payment incomplete for id=%d", id)
			handlers.RespondUnprocessable(w, msgPaymentIncomplete)
		default:
			h.logger.Error("PATCH /admin/bookings/{id}/status - failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/status - booking id=%d set to %s", id, req.Status)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// HandleDelete DELETE /api/v1/admin/bookings/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.bookings.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrBookingActive):
			handlers.RespondUnprocessable(w, msgBookingActive)
		default:
			h.logger.Error("DELETE /admin/bookings/{id} - failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id} - booking id=%d removed", id)
	w.WriteHeader(http.StatusNoContent)
}
