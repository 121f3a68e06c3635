package admin_payments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/jnails/salon-booking-service/internal/api/handlers"
	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/payments"
	"github.com/jnails/salon-booking-service/pkg/ptr"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidID          = "invalid payment id"
	msgInvalidAmount      = "amount must be greater than zero"
	msgInvalidMethod      = "unknown payment method"
	msgInvalidStatus      = "invalid payment status"
	msgInvalidDate        = "invalid date filter, format YYYY-MM-DD"
	msgInvalidAction      = "action must be complete, fail or refund"
	msgPaymentNotFound    = "payment not found"
	msgBookingNotFound    = "booking not found"
	msgInvalidTransition  = "payment status transition not allowed"
	msgNotRefundable      = "payment is outside the refund window or was never completed"
	msgTooManyRetries     = "could not allocate a payment reference, try again"
)

const defaultPageSize = 20

type Handler struct {
	payments PaymentService
	timeProv TimeProvider
	logger   Logger
}

func NewHandler(paymentSvc PaymentService, timeProv TimeProvider, logger Logger) *Handler {
	return &Handler{
		payments: paymentSvc,
		timeProv: timeProv,
		logger:   logger,
	}
}

// HandleCreate POST /api/v1/admin/payments
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/payments - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	payment, err := h.payments.CreateForBooking(r.Context(), payments.CreateRequest{
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Method:    domain.PaymentMethod(req.Method),
		Provider:  req.Provider,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidAmount):
			handlers.RespondBadRequest(w, msgInvalidAmount)
		case errors.Is(err, payments.ErrInvalidMethod):
			handlers.RespondBadRequest(w, msgInvalidMethod)
		case errors.Is(err, payments.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, payments.ErrReferenceExhausted):
			h.logger.Error("POST /admin/payments - reference space exhausted for booking id=%d", req.BookingID)
			handlers.RespondConflict(w, msgTooManyRetries)
		default:
			h.logger.Error("POST /admin/payments - failed for booking id=%d: %v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromDomainPayment(payment, h.timeProv.Now()))
}

// HandleList GET /api/v1/admin/payments?search=&status=&method=&date=&limit=&offset=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("GET /admin/payments - bad filter: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	list, total, err := h.payments.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /admin/payments - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainPayments(list, total, filter))
}

func parseFilter(r *http.Request) (domain.PaymentsFilter, error) {
	q := r.URL.Query()
	filter := domain.PaymentsFilter{Limit: defaultPageSize}

	if search := q.Get("search"); search != "" {
		filter.Search = ptr.Ptr(search)
	}
	if status := q.Get("status"); status != "" {
		if !domain.ValidPaymentStatus(status) {
			return filter, errors.New(msgInvalidStatus)
		}
		filter.Status = ptr.Ptr(domain.PaymentStatus(status))
	}
	if method := q.Get("method"); method != "" {
		if !domain.ValidPaymentMethod(method) {
			return filter, errors.New(msgInvalidMethod)
		}
		filter.Method = ptr.Ptr(domain.PaymentMethod(method))
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

// HandleGet GET /api/v1/admin/payments/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	payment, err := h.payments.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, payments.ErrPaymentNotFound) {
			handlers.RespondNotFound(w, msgPaymentNotFound)
			return
		}
		h.logger.Error("GET /admin/payments/{id} - failed for id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainPayment(payment, h.timeProv.Now()))
}

// HandleUpdateStatus POST /api/v1/admin/payments/{id}/status
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/payments/{id}/status - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch req.Action {
	case "complete":
		err = h.payments.MarkAsCompleted(r.Context(), id, req.TransactionID)
	case "fail":
		err = h.payments.MarkAsFailed(r.Context(), id, req.Reason)
	case "refund":
		err = h.payments.MarkAsRefunded(r.Context(), id)
	default:
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			handlers.RespondNotFound(w, msgPaymentNotFound)
		case errors.Is(err, payments.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, payments.ErrInvalidTransition):
			h.logger.Warn("POST /admin/payments/{id}/status - bad transition for id=%d action=%s", id, req.Action)
			handlers.RespondUnprocessable(w, msgInvalidTransition)
		case errors.Is(err, payments.ErrNotRefundable):
			h.logger.Warn("POST /admin/payments/{id}/status - refund refused for id=%d", id)
			handlers.RespondUnprocessable(w, msgNotRefundable)
		default:
			h.logger.Error("POST /admin/payments/{id}/status - failed for id=%d action=%s: %v", id, req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	payment, err := h.payments.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("POST /admin/payments/{id}/status - reload failed for id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainPayment(payment, h.timeProv.Now()))
}
