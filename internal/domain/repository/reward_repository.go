package repository

import (
	"context"
	"errors"

	"tsmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRewardNotFound is returned when no reward exists for a level threshold.
var ErrRewardNotFound = errors.New("reward not found")

// RewardRepository manages the level-gated reward definitions.
type RewardRepository interface {
	// FindByLevel retrieves the reward definition keyed by its level threshold.
	FindByLevel(ctx context.Context, levelRequired int) (*entity.Reward, error)

	// List returns all rewards ordered by ascending level threshold.
	List(ctx context.Context) ([]*entity.Reward, error)

	Create(ctx context.Context, reward *entity.Reward) error

	Delete(ctx context.Context, id uuid.UUID) error
}
