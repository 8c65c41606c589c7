package model

import "encoding/json"

// Item represents a surplus food record available in the catalog.
// Items are write-once: created through the catalog service and never
// mutated or deleted afterwards.
type Item struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"ownerId"`
	Name            string          `json:"name"`
	Category        string          `json:"category,omitempty"`
	EstimatedExpiry string          `json:"estimatedExpiry,omitempty"`
	Meta            json.RawMessage `json:"meta,omitempty"`
	CreatedAt       string          `json:"createdAt"`
}

// Offer type values. The accepted set is closed: anything else is
// rejected at the service layer.
const (
	OfferTypeClaim    = "claim"
	OfferTypeDonation = "donation"
	OfferTypePurchase = "purchase"
)

// Offer represents a recorded intent against an item. The referenced
// item is not required to exist; offers are facts, not reservations.
type Offer struct {
	ID      string `json:"id"`
	ItemID  string `json:"itemId"`
	Type    string `json:"type"`
	ActorID string `json:"actorId"`
	TS      string `json:"ts"`
}

// User is declared in the persisted document for forward compatibility
// with account support. No operation reads or writes users yet.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Donation is declared in the persisted document but unused; donation
// intents are currently recorded as offers with type "donation".
type Donation struct {
	ID        string `json:"id"`
	ItemID    string `json:"itemId,omitempty"`
	DonorID   string `json:"donorId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Catalog is the store root: the full persisted document. Each
// collection is an ordered sequence; insertion order is display order.
type Catalog struct {
	Users     []User     `json:"users"`
	Items     []Item     `json:"items"`
	Donations []Donation `json:"donations"`
	Offers    []Offer    `json:"offers"`
}

// NewCatalog returns an empty catalog with non-nil collections so the
// persisted document always carries all four keys.
func NewCatalog() *Catalog {
	return &Catalog{
		Users:     []User{},
		Items:     []Item{},
		Donations: []Donation{},
		Offers:    []Offer{},
	}
}
