package repository

import (
	"context"
	"errors"

	"tsmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrWheelPrizeNotFound is returned when a prize lookup misses.
var ErrWheelPrizeNotFound = errors.New("wheel prize not found")

// WheelPrizeRepository manages the configured prize wheel segments.
type WheelPrizeRepository interface {
	// List returns all prizes in creation order. The wheel engine relies on
	// this order being stable across calls for the weighted walk.
	List(ctx context.Context) ([]*entity.WheelPrize, error)

	Create(ctx context.Context, prize *entity.WheelPrize) error

	Delete(ctx context.Context, id uuid.UUID) error
}
