package entity

import (
	"time"

	"github.com/google/uuid"
)

// RewardType distinguishes how a claimed reward affects the ledger.
type RewardType string

const (
	// RewardTypeCoins credits the reward value to the balance.
	RewardTypeCoins RewardType = "coins"
	// RewardTypeXPBoost credits the truncated reward value as XP.
	RewardTypeXPBoost RewardType = "xp_boost"
	// RewardTypeDiscount is recorded as claimed; redemption happens outside the ledger.
	RewardTypeDiscount RewardType = "discount"
	// RewardTypeExclusive is recorded as claimed; fulfilment happens outside the ledger.
	RewardTypeExclusive RewardType = "exclusive"
)

// Reward is a level-gated, one-time-claimable perk. LevelRequired is the
// unique claim key: a user may redeem each threshold at most once.
type Reward struct {
	ID            uuid.UUID
	LevelRequired int
	Name          string
	Description   string
	RewardType    RewardType
	Value         float64
	IsExclusive   bool
	CreatedAt     time.Time
}
