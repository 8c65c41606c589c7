package service

import (
	"context"
	"encoding/json"
	"time"

	"foodchain-api/internal/cache"
	"foodchain-api/internal/model"
	"foodchain-api/internal/repository"
	"foodchain-api/pkg/apierror"
	"foodchain-api/pkg/uid"
)

// itemsCacheKey is the cache key for the serialized item listing.
const itemsCacheKey = "items"

// CatalogService handles catalog business logic: record validation, id
// and timestamp assignment, and listing.
type CatalogService struct {
	repo     repository.CatalogRepository
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewCatalogService creates a new catalog service. cache may be nil to
// disable listing caching. Returns nil if repo is nil (required dependency).
func NewCatalogService(repo repository.CatalogRepository, listCache cache.Cache, cacheTTL time.Duration) *CatalogService {
	if repo == nil {
		return nil
	}
	// A repository that re-reads its backing store on every listing must
	// not sit behind the cache: a cached listing would hide out-of-process
	// edits until the TTL expires.
	if _, ok := repo.(repository.SelfRefreshing); ok {
		listCache = nil
	}
	return &CatalogService{
		repo:     repo,
		cache:    listCache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// CreateItem validates the request, assigns an id and creation time, and
// durably appends the item. Category, estimatedExpiry and meta are
// optional and stored as given.
func (s *CatalogService) CreateItem(ctx context.Context, ownerID, name, category, estimatedExpiry string, meta json.RawMessage) (*model.Item, error) {
	var details []apierror.FieldError
	if ownerID == "" {
		details = append(details, apierror.FieldError{Field: "ownerId", Message: "ownerId is required"})
	}
	if name == "" {
		details = append(details, apierror.FieldError{Field: "name", Message: "name is required"})
	}
	if len(details) > 0 {
		return nil, apierror.ValidationError("invalid item", details...)
	}

	item := model.Item{
		ID:              uid.New(),
		OwnerID:         ownerID,
		Name:            name,
		Category:        category,
		EstimatedExpiry: estimatedExpiry,
		Meta:            meta,
		CreatedAt:       s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.InsertItem(ctx, item); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, itemsCacheKey)
	}

	return &item, nil
}

// ListItems returns all items in insertion order. The serialized listing
// is cached for a short TTL and invalidated on every create.
func (s *CatalogService) ListItems(ctx context.Context) ([]model.Item, error) {
	if s.cache == nil {
		return s.repo.ListItems(ctx)
	}

	data, err := s.cache.GetOrSet(ctx, itemsCacheKey, s.cacheTTL, func() ([]byte, error) {
		items, err := s.repo.ListItems(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(items)
	})
	if err != nil {
		return nil, err
	}

	items := []model.Item{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateOffer validates the request, assigns an id and timestamp, and
// durably appends the offer. The referenced item is deliberately not
// checked for existence: offers are recorded intents, not reservations.
func (s *CatalogService) CreateOffer(ctx context.Context, itemID, offerType, actorID string) (*model.Offer, error) {
	var details []apierror.FieldError
	if itemID == "" {
		details = append(details, apierror.FieldError{Field: "itemId", Message: "itemId is required"})
	}
	if actorID == "" {
		details = append(details, apierror.FieldError{Field: "actorId", Message: "actorId is required"})
	}
	switch offerType {
	case model.OfferTypeClaim, model.OfferTypeDonation, model.OfferTypePurchase:
	default:
		details = append(details, apierror.FieldError{
			Field:   "type",
			Message: "type must be one of claim, donation, purchase",
		})
	}
	if len(details) > 0 {
		return nil, apierror.ValidationError("invalid offer", details...)
	}

	offer := model.Offer{
		ID:      uid.New(),
		ItemID:  itemID,
		Type:    offerType,
		ActorID: actorID,
		TS:      s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.InsertOffer(ctx, offer); err != nil {
		return nil, err
	}

	return &offer, nil
}

// ListOffers returns all offers in insertion order.
func (s *CatalogService) ListOffers(ctx context.Context) ([]model.Offer, error) {
	return s.repo.ListOffers(ctx)
}

// Stats returns storage statistics.
func (s *CatalogService) Stats(ctx context.Context) (map[string]interface{}, error) {
	return s.repo.Stats(ctx)
}
