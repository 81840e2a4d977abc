package entity

import (
	"time"

	"github.com/google/uuid"
)

// PrizeType distinguishes how a wheel prize affects the ledger.
type PrizeType string

const (
	// PrizeTypeCoins credits the prize value to the balance.
	PrizeTypeCoins PrizeType = "coins"
	// PrizeTypeXP credits the truncated prize value as XP.
	PrizeTypeXP PrizeType = "xp"
)

// WheelPrize is one segment of the prize wheel. Probability is a non-negative
// weight; the configured set is not required to sum to 1 and is normalized at
// draw time. Prizes are walked in creation order during selection.
type WheelPrize struct {
	ID          uuid.UUID
	Name        string
	PrizeType   PrizeType
	Value       float64
	Probability float64
	Color       string
	CreatedAt   time.Time
}
