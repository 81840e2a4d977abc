package usecase

import (
	"context"

	"tsmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// RewardView decorates a reward definition with the caller's claim state.
type RewardView struct {
	*entity.Reward
	CanClaim  bool `json:"can_claim"`
	IsClaimed bool `json:"is_claimed"`
}

// RewardUsecase exposes the level-gated, one-time reward claims.
type RewardUsecase interface {
	// ListRewards returns all reward definitions ordered by level threshold,
	// annotated with whether the user can claim or already claimed each one.
	ListRewards(ctx context.Context, userID uuid.UUID) ([]*RewardView, error)

	// ClaimReward redeems the reward gated at the given level. The claim-set
	// membership and the numeric effect commit together.
	ClaimReward(ctx context.Context, userID uuid.UUID, levelRequired int) (*entity.Reward, error)
}
