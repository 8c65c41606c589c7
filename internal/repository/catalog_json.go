package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"foodchain-api/internal/model"
)

// JSONCatalogRepository implements CatalogRepository over a single flat
// JSON document with top-level keys users, items, donations, offers.
//
// The in-memory catalog is authoritative and guarded by a mutex, so
// concurrent mutations serialize instead of racing on the file. Every
// mutation rewrites the whole document to a temp file and renames it
// over the previous one, so a crash mid-write never corrupts the store.
type JSONCatalogRepository struct {
	path    string
	mu      sync.Mutex
	catalog *model.Catalog
}

// NewJSONCatalogRepository opens (or creates) the JSON document at path.
func NewJSONCatalogRepository(path string) (*JSONCatalogRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	r := &JSONCatalogRepository{
		path:    path,
		catalog: model.NewCatalog(),
	}

	if err := r.load(); err != nil {
		return nil, err
	}
	// Write the initial document so the file exists from the start.
	if err := r.persist(); err != nil {
		return nil, err
	}

	log.Printf("[JSONCatalogRepository] Initialized with document: %s", path)
	return r, nil
}

// load replaces the in-memory catalog with the persisted document.
// A missing file leaves the current catalog in place.
func (r *JSONCatalogRepository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read catalog document: %w", err)
	}

	catalog := model.NewCatalog()
	if err := json.Unmarshal(data, catalog); err != nil {
		return fmt.Errorf("failed to parse catalog document: %w", err)
	}

	r.catalog = catalog
	return nil
}

// persist rewrites the full document atomically (temp file + rename).
func (r *JSONCatalogRepository) persist() error {
	data, err := json.MarshalIndent(r.catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write catalog document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace catalog document: %w", err)
	}
	return nil
}

// InsertItem appends an item and persists the document before returning.
func (r *JSONCatalogRepository) InsertItem(ctx context.Context, item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catalog.Items = append(r.catalog.Items, item)
	if err := r.persist(); err != nil {
		// Roll back the in-memory append so memory matches disk.
		r.catalog.Items = r.catalog.Items[:len(r.catalog.Items)-1]
		return err
	}
	return nil
}

// ListItems reloads the persisted document and returns all items in
// insertion order, so out-of-process edits to the file are visible.
func (r *JSONCatalogRepository) ListItems(ctx context.Context) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(); err != nil {
		return nil, err
	}

	items := make([]model.Item, len(r.catalog.Items))
	copy(items, r.catalog.Items)
	return items, nil
}

// InsertOffer appends an offer and persists the document before returning.
func (r *JSONCatalogRepository) InsertOffer(ctx context.Context, offer model.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catalog.Offers = append(r.catalog.Offers, offer)
	if err := r.persist(); err != nil {
		r.catalog.Offers = r.catalog.Offers[:len(r.catalog.Offers)-1]
		return err
	}
	return nil
}

// ListOffers reloads the persisted document and returns all offers in
// insertion order.
func (r *JSONCatalogRepository) ListOffers(ctx context.Context) ([]model.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(); err != nil {
		return nil, err
	}

	offers := make([]model.Offer, len(r.catalog.Offers))
	copy(offers, r.catalog.Offers)
	return offers, nil
}

// Stats returns record counts and the document size.
func (r *JSONCatalogRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := map[string]interface{}{
		"items":  len(r.catalog.Items),
		"offers": len(r.catalog.Offers),
	}

	if info, err := os.Stat(r.path); err == nil {
		stats["db_size_bytes"] = info.Size()
	}

	return stats, nil
}

// Close is a no-op; the document is fully persisted after every mutation.
func (r *JSONCatalogRepository) Close() error {
	return nil
}

// RefreshesOnList marks the repository as SelfRefreshing: ListItems and
// ListOffers reload the document, so listings must not be cached.
func (r *JSONCatalogRepository) RefreshesOnList() {}

// Ensure JSONCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*JSONCatalogRepository)(nil)
var _ SelfRefreshing = (*JSONCatalogRepository)(nil)
