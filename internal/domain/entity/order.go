package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatusCompleted is the only status the checkout engine produces;
// orders are settled synchronously against the stored balance.
const OrderStatusCompleted = "completed"

// OrderItem is one purchased line with the product attributes snapshotted at
// order-build time.
type OrderItem struct {
	ProductID   uuid.UUID
	ProductName string
	Price       float64 // Unit price at checkout time.
	Quantity    int
	Size        string // Empty when the product has no size axis.
	XPAwarded   int    // Total XP granted by this line (unit reward * quantity).
}

// Order is the immutable record of one successful checkout. It is created
// exactly once and never mutated afterwards.
type Order struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Items     []OrderItem
	Total     float64
	TotalXP   int
	Status    string
	CreatedAt time.Time
}
