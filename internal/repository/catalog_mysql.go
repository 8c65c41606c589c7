package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"foodchain-api/internal/model"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLCatalogRepository implements CatalogRepository using MySQL.
// Insertion order is preserved through an auto-increment sequence column.
type MySQLCatalogRepository struct {
	db *sql.DB
}

// NewMySQLCatalogRepository opens a MySQL connection and prepares the schema.
func NewMySQLCatalogRepository(dsn string) (*MySQLCatalogRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	r := &MySQLCatalogRepository{db: db}
	if err := r.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[MySQLCatalogRepository] Initialized")
	return r, nil
}

func (r *MySQLCatalogRepository) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS catalog_items (
			seq BIGINT AUTO_INCREMENT PRIMARY KEY,
			id VARCHAR(64) NOT NULL UNIQUE,
			owner_id VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(255) NOT NULL DEFAULT '',
			estimated_expiry VARCHAR(64) NOT NULL DEFAULT '',
			meta TEXT,
			created_at VARCHAR(64) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_offers (
			seq BIGINT AUTO_INCREMENT PRIMARY KEY,
			id VARCHAR(64) NOT NULL UNIQUE,
			item_id VARCHAR(64) NOT NULL,
			type VARCHAR(32) NOT NULL,
			actor_id VARCHAR(255) NOT NULL,
			ts VARCHAR(64) NOT NULL,
			INDEX idx_offers_item (item_id)
		)`,
	}
	for _, q := range queries {
		if _, err := r.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// InsertItem appends a catalog item.
func (r *MySQLCatalogRepository) InsertItem(ctx context.Context, item model.Item) error {
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
func (r *MySQLCatalogRepository) ListItems(ctx context.Context) ([]model.Item, error) {
	query := `SELECT id, owner_id, name, category, estimated_expiry, meta, created_at
		FROM catalog_items ORDER BY seq`

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
func (r *MySQLCatalogRepository) InsertOffer(ctx context.Context, offer model.Offer) error {
	query := `INSERT INTO catalog_offers (id, item_id, type, actor_id, ts) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, offer.ID, offer.ItemID, offer.Type, offer.ActorID, offer.TS)
	if err != nil {
		return fmt.Errorf("failed to insert offer: %w", err)
	}
	return nil
}

// ListOffers returns all offers in insertion order.
func (r *MySQLCatalogRepository) ListOffers(ctx context.Context) ([]model.Offer, error) {
	query := `SELECT id, item_id, type, actor_id, ts FROM catalog_offers ORDER BY seq`

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
func (r *MySQLCatalogRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
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

	return stats, nil
}

// Close closes the database connection.
func (r *MySQLCatalogRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*MySQLCatalogRepository)(nil)
