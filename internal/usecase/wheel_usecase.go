package usecase

import (
	"context"

	"tsmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// SpinOutput reports the prize won and the spins left after the mutation.
type SpinOutput struct {
	Prize          *entity.WheelPrize `json:"prize"`
	SpinsRemaining int                `json:"spins_remaining"`
}

// WheelUsecase exposes the probability-weighted prize wheel.
type WheelUsecase interface {
	// ListPrizes returns the configured wheel segments in their stable order.
	ListPrizes(ctx context.Context) ([]*entity.WheelPrize, error)

	// Spin consumes one spin entitlement and applies the drawn prize through
	// the ledger in a single mutation.
	Spin(ctx context.Context, userID uuid.UUID) (*SpinOutput, error)
}
