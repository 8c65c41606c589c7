package handler

import (
	"net/http"
	"time"

	"foodchain-api/internal/service"
	"foodchain-api/pkg/response"
)

// AdminHandler exposes operational statistics about the catalog store.
type AdminHandler struct {
	catalogService *service.CatalogService
	dbType         string
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(catalogService *service.CatalogService, dbType string) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
		dbType:         dbType,
	}
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalogService.Stats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, response.Payload{
		"stats": response.Payload{
			"backend":        h.dbType,
			"records":        stats,
			"uptime_seconds": int64(time.Since(StartTime).Seconds()),
		},
	})
}
