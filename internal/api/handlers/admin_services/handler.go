package admin_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jnails/salon-booking-service/internal/api/handlers"
	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/servicecatalog"
	"github.com/jnails/salon-booking-service/pkg/ptr"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidID          = "invalid service id"
	msgInvalidStatus      = "status must be active or inactive"
	msgServiceNotFound    = "service not found"
	msgServiceReferenced  = "service has bookings and cannot be deleted, deactivate it instead"
)

type Handler struct {
	catalog CatalogService
	logger  Logger
}

func NewHandler(catalogSvc CatalogService, logger Logger) *Handler {
	return &Handler{
		catalog: catalogSvc,
		logger:  logger,
	}
}

// HandleList GET /api/v1/admin/services?status=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var status *domain.ServiceStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		if raw != string(domain.ServiceActive) && raw != string(domain.ServiceInactive) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = ptr.Ptr(domain.ServiceStatus(raw))
	}

	services, err := h.catalog.List(r.Context(), status)
	if err != nil {
		h.logger.Error("GET /admin/services - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainServices(services))
}

// HandleCreate POST /api/v1/admin/services
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Status != nil && *req.Status != string(domain.ServiceActive) && *req.Status != string(domain.ServiceInactive) {
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	created, err := h.catalog.Create(r.Context(), req.ToDomainService())
	if err != nil {
		if errors.Is(err, servicecatalog.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/services - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromDomainService(created))
}

// HandleUpdate PUT /api/v1/admin/services/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Status != nil && *req.Status != string(domain.ServiceActive) && *req.Status != string(domain.ServiceInactive) {
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	updated, err := h.catalog.Update(r.Context(), id, req.ToDomainService())
	if err != nil {
		switch {
		case errors.Is(err, servicecatalog.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, servicecatalog.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		default:
			h.logger.Error("PUT /admin/services/{id} - failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainService(updated))
}

// HandleDelete DELETE /api/v1/admin/services/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, servicecatalog.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, servicecatalog.ErrServiceReferenced):
			handlers.RespondConflict(w, msgServiceReferenced)
		default:
			h.logger.Error("DELETE /admin/services/{id} - failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDeactivate POST /api/v1/admin/services/{id}/deactivate
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.catalog.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, servicecatalog.ErrServiceNotFound) {
			handlers.RespondNotFound(w, msgServiceNotFound)
			return
		}
		h.logger.Error("POST /admin/services/{id}/deactivate - failed for id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": string(domain.ServiceInactive)})
}
