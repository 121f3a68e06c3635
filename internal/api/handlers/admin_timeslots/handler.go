package admin_timeslots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/jnails/salon-booking-service/internal/api/handlers"
	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/timeslots"
	"github.com/jnails/salon-booking-service/pkg/ptr"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidID          = "invalid slot id"
	msgMissingDate        = "date query parameter is required, format YYYY-MM-DD"
	msgInvalidDate        = "invalid date, format YYYY-MM-DD"
	msgInvalidStatus      = "status must be available or unavailable"
	msgInvalidRange       = "provide either date, or fromDate and toDate"
	msgSlotNotFound       = "time slot not found"
	msgSlotBooked         = "booked slots cannot be edited"
	msgDateClosed         = "the salon is closed on this date"
	msgEmptySlotIDs       = "slotIds must not be empty"
)

type Handler struct {
	slots  TimeslotService
	logger Logger
}

func NewHandler(slotSvc TimeslotService, logger Logger) *Handler {
	return &Handler{
		slots:  slotSvc,
		logger: logger,
	}
}

// HandleList GET /api/v1/admin/timeslots?date=YYYY-MM-DD&status=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var status *domain.SlotStatus
	if rawStatus := r.URL.Query().Get("status"); rawStatus != "" {
		if !domain.ValidSlotStatus(rawStatus) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = ptr.Ptr(domain.SlotStatus(rawStatus))
	}

	slots, stats, err := h.slots.ListForDate(r.Context(), date, status)
	if err != nil {
		h.logger.Error("GET /admin/timeslots - failed for date=%s: %v", raw, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainSlots(raw, slots, stats))
}

// HandleGenerate POST /api/v1/admin/timeslots/generate
// Accepts a single date or a fromDate/toDate range.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/timeslots/generate - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch {
	case req.Date != nil:
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}

		created, err := h.slots.GenerateSlotsForDate(r.Context(), date)
		if err != nil {
			if errors.Is(err, timeslots.ErrDateClosed) {
				handlers.RespondUnprocessable(w, msgDateClosed)
				return
			}
			h.logger.Error("POST /admin/timeslots/generate - failed for date=%s: %v", *req.Date, err)
			handlers.RespondInternalError(w)
			return
		}

		skipped := 0
		if created == 0 {
			skipped = 1
		}
		handlers.RespondJSON(w, http.StatusOK, GenerateResponse{Created: created, DatesSkipped: skipped})

	case req.FromDate != nil && req.ToDate != nil:
		from, err := time.Parse(domain.DateFormat, *req.FromDate)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		to, err := time.Parse(domain.DateFormat, *req.ToDate)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		if to.Before(from) {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}

		result, err := h.slots.GenerateSlotsForRange(r.Context(), from, to)
		if err != nil {
			h.logger.Error("POST /admin/timeslots/generate - failed for range %s..%s: %v",
				*req.FromDate, *req.ToDate, err)
			handlers.RespondInternalError(w)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, GenerateResponse{
			Created:      result.Created,
			DatesSkipped: result.DatesSkipped,
		})

	default:
		handlers.RespondBadRequest(w, msgInvalidRange)
	}
}

// HandleUpdate PATCH /api/v1/admin/timeslots/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/timeslots/{id} - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.slots.UpdateStatus(r.Context(), id, domain.SlotStatus(req.Status), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)
		case errors.Is(err, timeslots.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, timeslots.ErrSlotBooked):
			handlers.RespondConflict(w, msgSlotBooked)
		default:
			h.logger.Error("PATCH /admin/timeslots/{id} - failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// HandleBulkUpdate POST /api/v1/admin/timeslots/bulk
func (h *Handler) HandleBulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/timeslots/bulk - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.SlotIDs) == 0 {
		handlers.RespondBadRequest(w, msgEmptySlotIDs)
		return
	}

	result, err := h.slots.BulkUpdateStatus(r.Context(), req.SlotIDs, domain.SlotStatus(req.Status), req.Notes)
	if err != nil {
		if errors.Is(err, timeslots.ErrInvalidStatus) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("POST /admin/timeslots/bulk - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromBulkResult(result))
}

// HandleDelete DELETE /api/v1/admin/timeslots/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.slots.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, timeslots.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, timeslots.ErrSlotBooked):
			handlers.RespondConflict(w, msgSlotBooked)
		default:
			h.logger.Error("DELETE /admin/timeslots/{id} - failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
