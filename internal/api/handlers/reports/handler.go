package reports

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jnails/salon-booking-service/internal/api/handlers"
	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/reports"
)

const (
	msgInvalidDate   = "invalid date, format YYYY-MM-DD"
	msgInvalidPeriod = "from must not be after to"
	msgInvalidLimit  = "invalid limit"
)

// defaultSummaryDays is the dashboard period when no range is given.
const defaultSummaryDays = 30

const defaultClientsLimit = 10

type Handler struct {
	reports  ReportService
	timeProv TimeProvider
	logger   Logger
}

func NewHandler(reportSvc ReportService, timeProv TimeProvider, logger Logger) *Handler {
	return &Handler{
		reports:  reportSvc,
		timeProv: timeProv,
		logger:   logger,
	}
}

// HandleSummary GET /api/v1/admin/reports/summary?from=&to=
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	now := h.timeProv.Now()
	from := now.AddDate(0, 0, -defaultSummaryDays)
	to := now

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		to = parsed
	}

	summary, err := h.reports.GetSummary(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, reports.ErrInvalidPeriod) {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /admin/reports/summary - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSummary(summary))
}

// HandleTopClients GET /api/v1/admin/reports/clients?limit=
func (h *Handler) HandleTopClients(w http.ResponseWriter, r *http.Request) {
	limit := uint64(defaultClientsLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	clients, err := h.reports.GetTopClients(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /admin/reports/clients - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromClientReports(clients))
}
