package get_services

import (
	"net/http"

	"github.com/jnails/salon-booking-service/internal/api/handlers"
	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/pkg/ptr"
)

type Handler struct {
	catalog CatalogService
	logger  Logger
}

func NewHandler(catalog CatalogService, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
// The public menu only ever shows active services.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.List(r.Context(), ptr.Ptr(domain.ServiceActive))
	if err != nil {
		h.logger.Error("GET /services - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainServices(services))
}
