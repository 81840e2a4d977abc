package usecase

import (
	"context"

	"tsmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// CartLine is one requested purchase line.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Size      string    `json:"size,omitempty"`
}

// CheckoutInput carries the caller's cart.
type CheckoutInput struct {
	// An empty or missing items list passes struct validation so the checkout
	// engine can reject it with its own error code.
	Lines []CartLine `json:"items" validate:"dive"`
}

// CheckoutOutput reports the committed order and the progression effects of
// the purchase.
type CheckoutOutput struct {
	Order     *entity.Order `json:"order"`
	XPGained  int           `json:"xp_gained"`
	NewLevel  int           `json:"new_level"`
	LeveledUp bool          `json:"level_up"`
}

// CheckoutUsecase validates a cart against the catalog, settles it against
// the stored balance and produces the immutable order record.
type CheckoutUsecase interface {
	// Checkout settles the cart for the user. Either the order is created and
	// balance/XP mutate exactly once, or nothing is persisted.
	Checkout(ctx context.Context, userID uuid.UUID, input *CheckoutInput) (*CheckoutOutput, error)

	// ListOrders returns the caller's order history, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
}
