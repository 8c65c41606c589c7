package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	"foodchain-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteCatalogRepository implements CatalogRepository using SQLite.
// Thread-safe with WAL mode for high-concurrency reads. Insertion order
// is the rowid order.
type SQLiteCatalogRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteCatalogRepository creates a new SQLite catalog repository.
// dbPath is the path to the SQLite database file (e.g., "./data/catalog.db")
func NewSQLiteCatalogRepository(dbPath string) (*SQLiteCatalogRepository, error) {
	// Open with WAL mode and other optimizations
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite connection pool settings
	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0) // Keep connection alive

	if err := createCatalogTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteCatalogRepository] Initialized with database: %s", dbPath)
	return &SQLiteCatalogRepository{db: db}, nil
}

// createCatalogTables creates the items and offers tables.
func createCatalogTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS catalog_items (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		estimated_expiry TEXT NOT NULL DEFAULT '',
		meta TEXT,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS catalog_offers (
		id TEXT PRIMARY KEY,
		item_id TEXT NOT NULL,
		type TEXT NOT NULL,
		actor_id TEXT NOT NULL,
		ts TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_offers_item ON catalog_offers(item_id);
	`
	_, err := db.Exec(query)
	return err
}

// InsertItem appends a catalog item.
func (r *SQLiteCatalogRepository) InsertItem(ctx context.Context, item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO catalog_items (id, owner_id, name, category, estimated_expiry, meta, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	var meta sql.NullString
	if len(item.Meta) > 0 {
		meta = sql.NullString{String: string(item.Meta), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.OwnerID, item.Name, item.Category, item.EstimatedExpiry, meta, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// ListItems returns all items in insertion order.
func (r *SQLiteCatalogRepository) ListItems(ctx context.Context) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT id, owner_id, name, category, estimated_expiry, meta, created_at
		FROM catalog_items ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var item model.Item
		var meta sql.NullString
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Category,
			&item.EstimatedExpiry, &meta, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if meta.Valid {
			item.Meta = []byte(meta.String)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// InsertOffer appends an offer.
func (r *SQLiteCatalogRepository) InsertOffer(ctx context.Context, offer model.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `INSERT INTO catalog_offers (id, item_id, type, actor_id, ts) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, offer.ID, offer.ItemID, offer.Type, offer.ActorID, offer.TS)
	if err != nil {
		return fmt.Errorf("failed to insert offer: %w", err)
	}
	return nil
}

// ListOffers returns all offers in insertion order.
func (r *SQLiteCatalogRepository) ListOffers(ctx context.Context) ([]model.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT id, item_id, type, actor_id, ts FROM catalog_offers ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	offers := []model.Offer{}
	for rows.Next() {
		var offer model.Offer
		if err := rows.Scan(&offer.ID, &offer.ItemID, &offer.Type, &offer.ActorID, &offer.TS); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}

// Stats returns statistics about the catalog database.
func (r *SQLiteCatalogRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[string]interface{})

	var items, offers int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_items").Scan(&items); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_offers").Scan(&offers); err != nil {
		return nil, err
	}
	stats["items"] = items
	stats["offers"] = offers

	// Database file size (approximate from page count)
	var pageCount, pageSize int64
	r.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	r.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
	stats["db_size_bytes"] = pageCount * pageSize

	return stats, nil
}

// Close closes the database connection.
func (r *SQLiteCatalogRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*SQLiteCatalogRepository)(nil)
