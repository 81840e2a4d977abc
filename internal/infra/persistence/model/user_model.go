// Package model contains the GORM persistence models mirroring the database
// tables. Mapping to and from domain entities happens in the repositories.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(). Version guards every ledger write: the update is
// conditional on the version read and increments it, giving per-user
// serializability without row locks.
type UserModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email      string    `gorm:"type:varchar(255);unique;not null"`
	Name       string    `gorm:"type:varchar(100)"`
	Picture    string    `gorm:"type:varchar(512)"`
	IsAdmin    bool      `gorm:"not null;default:false"`
	Balance    float64   `gorm:"not null;default:0"`
	XP         int       `gorm:"column:xp;not null;default:0"`
	Level      int       `gorm:"not null;default:1"`
	WheelSpins int       `gorm:"not null;default:1"`
	Version    int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	ClaimedRewards []ClaimedRewardModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ClaimedRewardModel mirrors the 'claimed_rewards' table. The composite
// unique index makes a duplicate claim a constraint violation, which the
// repository surfaces as ErrDuplicateClaim.
type ClaimedRewardModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_claimed_rewards_user_level"`
	Level     int       `gorm:"not null;uniqueIndex:idx_claimed_rewards_user_level"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ClaimedRewardModel) TableName() string {
	return "claimed_rewards"
}
