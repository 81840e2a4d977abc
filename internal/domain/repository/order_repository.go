package repository

import (
	"context"

	"tsmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderRepository persists the immutable order records produced by checkout.
// Orders are inserted exactly once and never updated.
type OrderRepository interface {
	// Insert stores a new order together with its line items.
	Insert(ctx context.Context, order *entity.Order) error

	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]*entity.Order, error)

	// Count returns the number of orders.
	Count(ctx context.Context) (int64, error)

	// TotalRevenue returns the sum of all order totals.
	TotalRevenue(ctx context.Context) (float64, error)
}
