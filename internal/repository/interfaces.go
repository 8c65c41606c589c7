package repository

import (
	"context"

	"foodchain-api/internal/model"
)

// CatalogRepository defines catalog data access methods. Records are
// write-once: there are no update or delete operations.
type CatalogRepository interface {
	// InsertItem appends an item and persists it durably before returning.
	InsertItem(ctx context.Context, item model.Item) error

	// ListItems returns all items in insertion order.
	ListItems(ctx context.Context) ([]model.Item, error)

	// InsertOffer appends an offer and persists it durably before returning.
	InsertOffer(ctx context.Context, offer model.Offer) error

	// ListOffers returns all offers in insertion order.
	ListOffers(ctx context.Context) ([]model.Offer, error)

	// Stats returns statistics about the catalog storage.
	Stats(ctx context.Context) (map[string]interface{}, error)

	// Close closes the repository.
	Close() error
}

// SelfRefreshing marks repositories whose ListItems re-reads the backing
// store on every call. Their listings must never be cached: a stale cache
// entry would hide out-of-process edits the re-read exists to surface.
type SelfRefreshing interface {
	RefreshesOnList()
}
