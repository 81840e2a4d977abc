package model

import (
	"time"

	"github.com/google/uuid"
)

// TopUpCodeModel mirrors the 'topup_codes' table. IsUsed flips exactly once;
// the repository's conditional update makes concurrent redemptions lose.
type TopUpCodeModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code      string     `gorm:"type:varchar(64);unique;not null"`
	Amount    float64    `gorm:"not null"`
	IsUsed    bool       `gorm:"not null;default:false"`
	UsedBy    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TopUpCodeModel) TableName() string {
	return "topup_codes"
}

// TopUpRequestModel mirrors the 'topup_requests' table. UserName and
// UserEmail are snapshots taken at submission time.
type TopUpRequestModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserName    string    `gorm:"type:varchar(100)"`
	UserEmail   string    `gorm:"type:varchar(255)"`
	Amount      float64   `gorm:"not null"`
	ReceiptURL  string    `gorm:"type:varchar(512)"`
	Status      string    `gorm:"type:varchar(16);not null;index"`
	AdminNote   string    `gorm:"type:text"`
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// TableName explicitly sets the table name for GORM.
func (TopUpRequestModel) TableName() string {
	return "topup_requests"
}

// PaymentSettingsModel mirrors the 'payment_settings' table, a single-row
// table holding the card details for manual transfers.
type PaymentSettingsModel struct {
	ID             int    `gorm:"primary_key"`
	CardNumber     string `gorm:"type:varchar(32)"`
	CardHolder     string `gorm:"type:varchar(100)"`
	AdditionalInfo string `gorm:"type:text"`
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentSettingsModel) TableName() string {
	return "payment_settings"
}
