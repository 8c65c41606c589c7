package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"foodchain-api/internal/model"
)

func newTestRepo(t *testing.T) (*JSONCatalogRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	repo, err := NewJSONCatalogRepository(path)
	if err != nil {
		t.Fatalf("NewJSONCatalogRepository: %v", err)
	}
	return repo, path
}

func TestNewRepoWritesInitialDocument(t *testing.T) {
	_, path := newTestRepo(t)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading document: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	for _, key := range []string{"users", "items", "donations", "offers"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("document missing top-level key %q", key)
		}
	}
}

func TestInsertAndListItemsPreservesOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		item := model.Item{ID: id, OwnerID: "anon", Name: "item-" + id, CreatedAt: "2025-01-01T00:00:00Z"}
		if err := repo.InsertItem(ctx, item); err != nil {
			t.Fatalf("InsertItem: %v", err)
		}
	}

	items, err := repo.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, id := range []string{"a", "b", "c"} {
		if items[i].ID != id {
			t.Errorf("position %d: expected id %s, got %s", i, id, items[i].ID)
		}
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	item := model.Item{ID: "i1", OwnerID: "anon", Name: "tomatoes", Category: "produce", CreatedAt: "2025-01-01T00:00:00Z"}
	if err := repo.InsertItem(ctx, item); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	offer := model.Offer{ID: "o1", ItemID: "i1", Type: model.OfferTypeClaim, ActorID: "anon", TS: "2025-01-02T00:00:00Z"}
	if err := repo.InsertOffer(ctx, offer); err != nil {
		t.Fatalf("InsertOffer: %v", err)
	}

	reopened, err := NewJSONCatalogRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	items, _ := reopened.ListItems(ctx)
	if len(items) != 1 || !reflect.DeepEqual(items[0], item) {
		t.Errorf("items after reopen: %+v", items)
	}
	offers, _ := reopened.ListOffers(ctx)
	if len(offers) != 1 || offers[0] != offer {
		t.Errorf("offers after reopen: %+v", offers)
	}
}

func TestListItemsSeesOutOfProcessEdits(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	// Simulate another process rewriting the backing document.
	doc := model.NewCatalog()
	doc.Items = append(doc.Items, model.Item{ID: "external", OwnerID: "other", Name: "milk", CreatedAt: "2025-01-01T00:00:00Z"})
	data, _ := json.Marshal(doc)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("rewrite document: %v", err)
	}

	items, err := repo.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != "external" {
		t.Errorf("expected externally written item, got %+v", items)
	}
}

func TestInsertOfferWithoutMatchingItem(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	offer := model.Offer{ID: "o1", ItemID: "missing", Type: model.OfferTypeClaim, ActorID: "anon", TS: "2025-01-01T00:00:00Z"}
	if err := repo.InsertOffer(ctx, offer); err != nil {
		t.Fatalf("offers must not be checked against items: %v", err)
	}

	offers, _ := repo.ListOffers(ctx)
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}
}

func TestPersistLeavesNoTempFiles(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := repo.InsertItem(ctx, model.Item{ID: string(rune('a' + i)), OwnerID: "anon", Name: "x"}); err != nil {
			t.Fatalf("InsertItem: %v", err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the catalog document, found %d entries", len(entries))
	}
}

func TestStatsCountsRecords(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	repo.InsertItem(ctx, model.Item{ID: "i1", OwnerID: "anon", Name: "x"})
	repo.InsertOffer(ctx, model.Offer{ID: "o1", ItemID: "i1", Type: model.OfferTypeClaim, ActorID: "anon"})
	repo.InsertOffer(ctx, model.Offer{ID: "o2", ItemID: "i1", Type: model.OfferTypePurchase, ActorID: "anon"})

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats["items"] != 1 || stats["offers"] != 2 {
		t.Errorf("unexpected stats: %v", stats)
	}
}
