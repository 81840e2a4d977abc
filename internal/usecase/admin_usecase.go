package usecase

import (
	"context"

	"tsmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminStats summarizes the storefront for the admin overview.
type AdminStats struct {
	UsersCount    int64   `json:"users_count"`
	OrdersCount   int64   `json:"orders_count"`
	ProductsCount int64   `json:"products_count"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// RewardInput carries the fields for creating a reward definition.
type RewardInput struct {
	LevelRequired int     `json:"level_required" validate:"required,min=1"`
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	RewardType    string  `json:"reward_type" validate:"required,oneof=coins xp_boost discount exclusive"`
	Value         float64 `json:"value" validate:"min=0"`
	IsExclusive   bool    `json:"is_exclusive"`
}

// WheelPrizeInput carries the fields for creating a wheel prize.
type WheelPrizeInput struct {
	Name        string  `json:"name" validate:"required"`
	PrizeType   string  `json:"prize_type" validate:"required,oneof=coins xp"`
	Value       float64 `json:"value" validate:"min=0"`
	Probability float64 `json:"probability" validate:"min=0"`
	Color       string  `json:"color"`
}

// AdminUsecase groups the privileged operations: absolute balance/XP
// overrides (no level-up spin bonus), account management and the reward and
// wheel-prize configuration.
type AdminUsecase interface {
	// AdjustBalance sets the user's balance to an absolute value.
	AdjustBalance(ctx context.Context, userID uuid.UUID, balance float64) (*entity.User, error)

	// AdjustXP sets the user's XP to an absolute value; the level is
	// recomputed but no compensating wheel spins are granted.
	AdjustXP(ctx context.Context, userID uuid.UUID, xp int) (*entity.User, error)

	Stats(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	SetAdmin(ctx context.Context, userID uuid.UUID, isAdmin bool) error
	DeleteUser(ctx context.Context, callerID, userID uuid.UUID) error

	ListAllOrders(ctx context.Context) ([]*entity.Order, error)

	CreateReward(ctx context.Context, input *RewardInput) (*entity.Reward, error)
	DeleteReward(ctx context.Context, id uuid.UUID) error

	CreateWheelPrize(ctx context.Context, input *WheelPrizeInput) (*entity.WheelPrize, error)
	DeleteWheelPrize(ctx context.Context, id uuid.UUID) error
}
