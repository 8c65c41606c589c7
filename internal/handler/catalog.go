package handler

import (
	"encoding/json"
	"net/http"

	"foodchain-api/internal/service"
	"foodchain-api/pkg/apierror"
	"foodchain-api/pkg/response"
)

// CatalogHandler handles catalog-related HTTP requests.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// createItemRequest is the accepted request schema. Unknown fields are
// rejected so malformed payloads fail instead of being silently stored.
type createItemRequest struct {
	OwnerID         string          `json:"ownerId"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	EstimatedExpiry string          `json:"estimatedExpiry"`
	Meta            json.RawMessage `json:"meta"`
}

// CreateItem handles POST /api/items
func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req createItemRequest
	if err := dec.Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	item, err := h.catalogService.CreateItem(r.Context(), req.OwnerID, req.Name, req.Category, req.EstimatedExpiry, req.Meta)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, response.Payload{
		"item": item,
	})
}

// ListItems handles GET /api/items and GET /api/items/nearby.
// Geolocation filtering does not exist: every item is "nearby".
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalogService.ListItems(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, response.Payload{
		"items": items,
	})
}

// createOfferRequest is the accepted request schema.
type createOfferRequest struct {
	ItemID  string `json:"itemId"`
	Type    string `json:"type"`
	ActorID string `json:"actorId"`
}

// CreateOffer handles POST /api/offers
func (h *CatalogHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req createOfferRequest
	if err := dec.Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	offer, err := h.catalogService.CreateOffer(r.Context(), req.ItemID, req.Type, req.ActorID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, response.Payload{
		"offer": offer,
	})
}

// ListOffers handles GET /api/offers
func (h *CatalogHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.catalogService.ListOffers(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, response.Payload{
		"offers": offers,
	})
}
