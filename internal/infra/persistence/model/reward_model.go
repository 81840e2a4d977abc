package model

import (
	"time"

	"github.com/google/uuid"
)

// RewardModel mirrors the 'rewards' table. LevelRequired is the unique claim
// key users redeem against.
type RewardModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	LevelRequired int       `gorm:"unique;not null"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	RewardType    string    `gorm:"type:varchar(32);not null"`
	Value         float64   `gorm:"not null;default:0"`
	IsExclusive   bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (RewardModel) TableName() string {
	return "rewards"
}

// WheelPrizeModel mirrors the 'wheel_prizes' table. The weighted draw walks
// prizes in creation order, so listing sorts by created_at then id.
type WheelPrizeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	PrizeType   string    `gorm:"type:varchar(32);not null"`
	Value       float64   `gorm:"not null;default:0"`
	Probability float64   `gorm:"not null;default:0"`
	Color       string    `gorm:"type:varchar(16)"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (WheelPrizeModel) TableName() string {
	return "wheel_prizes"
}
