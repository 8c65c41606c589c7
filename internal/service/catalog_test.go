package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"foodchain-api/internal/cache"
	"foodchain-api/internal/model"
	"foodchain-api/internal/repository"
	"foodchain-api/pkg/apierror"
	"foodchain-api/pkg/uid"
)

// memRepo is an in-memory CatalogRepository fake.
type memRepo struct {
	items  []model.Item
	offers []model.Offer
}

func (m *memRepo) InsertItem(ctx context.Context, item model.Item) error {
	m.items = append(m.items, item)
	return nil
}

func (m *memRepo) ListItems(ctx context.Context) ([]model.Item, error) {
	return append([]model.Item{}, m.items...), nil
}

func (m *memRepo) InsertOffer(ctx context.Context, offer model.Offer) error {
	m.offers = append(m.offers, offer)
	return nil
}

func (m *memRepo) ListOffers(ctx context.Context) ([]model.Offer, error) {
	return append([]model.Offer{}, m.offers...), nil
}

func (m *memRepo) Stats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"items": len(m.items), "offers": len(m.offers)}, nil
}

func (m *memRepo) Close() error { return nil }

func TestCreateItemAssignsIDAndCreatedAt(t *testing.T) {
	svc := NewCatalogService(&memRepo{}, nil, 0)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, "anon", "tomatoes", "produce", "2025-09-10T00:00:00Z", nil)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if !uid.IsValid(item.ID) {
		t.Errorf("expected generated UUID id, got %q", item.ID)
	}
	if item.CreatedAt == "" {
		t.Error("expected createdAt to be set")
	}
	if _, err := time.Parse(time.RFC3339, item.CreatedAt); err != nil {
		t.Errorf("createdAt is not RFC3339: %v", err)
	}
	if item.EstimatedExpiry != "2025-09-10T00:00:00Z" {
		t.Errorf("estimatedExpiry changed: %s", item.EstimatedExpiry)
	}
}

func TestCreateItemIDsAreUnique(t *testing.T) {
	svc := NewCatalogService(&memRepo{}, nil, 0)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		item, err := svc.CreateItem(ctx, "anon", "bread", "", "", nil)
		if err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
		if seen[item.ID] {
			t.Fatalf("duplicate id %s", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewCatalogService(&memRepo{}, nil, 0)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, "", "", "", "", nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	apiErr, ok := err.(*apierror.Error)
	if !ok || apiErr.StatusCode != 400 {
		t.Errorf("expected 400 apierror, got %v", err)
	}
	if len(apiErr.Details) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(apiErr.Details))
	}
}

func TestListItemsPreservesInsertionOrder(t *testing.T) {
	svc := NewCatalogService(&memRepo{}, nil, 0)
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		if _, err := svc.CreateItem(ctx, "anon", name, "", "", nil); err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
	}

	items, err := svc.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != len(names) {
		t.Fatalf("expected %d items, got %d", len(names), len(items))
	}
	for i, name := range names {
		if items[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, items[i].Name)
		}
	}
}

func TestCreateOfferDoesNotCheckItemExists(t *testing.T) {
	svc := NewCatalogService(&memRepo{}, nil, 0)
	ctx := context.Background()

	offer, err := svc.CreateOffer(ctx, "does-not-exist", model.OfferTypeClaim, "anon")
	if err != nil {
		t.Fatalf("CreateOffer against missing item should succeed: %v", err)
	}
	if offer.ItemID != "does-not-exist" {
		t.Errorf("unexpected itemId %s", offer.ItemID)
	}
}

func TestCreateOfferRejectsUnknownType(t *testing.T) {
	svc := NewCatalogService(&memRepo{}, nil, 0)
	ctx := context.Background()

	for _, typ := range []string{"", "steal", "CLAIM"} {
		_, err := svc.CreateOffer(ctx, "item-1", typ, "anon")
		if err == nil {
			t.Errorf("expected validation error for type %q", typ)
		}
	}

	for _, typ := range []string{model.OfferTypeClaim, model.OfferTypeDonation, model.OfferTypePurchase} {
		if _, err := svc.CreateOffer(ctx, "item-1", typ, "anon"); err != nil {
			t.Errorf("expected type %q to be accepted: %v", typ, err)
		}
	}
}

func TestListItemsCacheInvalidatedOnCreate(t *testing.T) {
	memCache := cache.NewMemoryCache()
	t.Cleanup(func() { memCache.Close() })

	svc := NewCatalogService(&memRepo{}, memCache, time.Minute)
	ctx := context.Background()

	if _, err := svc.CreateItem(ctx, "anon", "apples", "", "", nil); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// Prime the cache.
	items, err := svc.ListItems(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected 1 item, got %d (err %v)", len(items), err)
	}

	// A create must invalidate, so the next listing sees the new item.
	if _, err := svc.CreateItem(ctx, "anon", "pears", "", "", nil); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	items, err = svc.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items after cache invalidation, got %d", len(items))
	}
}

func TestListItemsNotCachedForFileBackedRepo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	repo, err := repository.NewJSONCatalogRepository(path)
	if err != nil {
		t.Fatalf("NewJSONCatalogRepository: %v", err)
	}

	memCache := cache.NewMemoryCache()
	t.Cleanup(func() { memCache.Close() })

	// The file-backed repository reloads its document on every listing;
	// the service must refuse to cache in front of it.
	svc := NewCatalogService(repo, memCache, time.Minute)
	ctx := context.Background()

	if _, err := svc.CreateItem(ctx, "anon", "tomatoes", "produce", "", nil); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if _, err := svc.ListItems(ctx); err != nil {
		t.Fatalf("ListItems: %v", err)
	}

	// Simulate another process rewriting the backing document.
	doc := model.NewCatalog()
	doc.Items = append(doc.Items, model.Item{ID: "external", OwnerID: "other", Name: "milk", CreatedAt: "2025-01-01T00:00:00Z"})
	data, _ := json.Marshal(doc)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("rewrite document: %v", err)
	}

	items, err := svc.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != "external" {
		t.Errorf("listing does not reflect out-of-process edit, got %+v", items)
	}
}
