package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Product is a purchasable catalog item. Price and XPReward are snapshotted
// onto order items at checkout time, so later catalog edits never affect
// existing orders. Stock and IsActive are informational for the storefront;
// the ledger engine does not decrement stock.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64  // Unit price, non-negative.
	XPReward    int      // XP granted per unit purchased, non-negative.
	CategoryID  uuid.UUID
	ImageURL    string
	Sizes       []string // Allowed size labels; empty means the product has no size axis.
	Stock       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasSize reports whether the given size label is offered for this product.
func (p *Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

// Category groups catalog products for browsing.
type Category struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
