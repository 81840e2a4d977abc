package entity

import (
	"time"

	"github.com/google/uuid"
)

// TopUpRequestStatus tracks the lifecycle of a card-based top-up request.
type TopUpRequestStatus string

const (
	TopUpStatusPending  TopUpRequestStatus = "pending"
	TopUpStatusApproved TopUpRequestStatus = "approved"
	TopUpStatusRejected TopUpRequestStatus = "rejected"
)

// TopUpCode is a one-shot voucher that credits the balance when redeemed.
type TopUpCode struct {
	ID        uuid.UUID
	Code      string
	Amount    float64
	IsUsed    bool
	UsedBy    *uuid.UUID
	CreatedAt time.Time
}

// TopUpRequest is a card-payment top-up awaiting admin review. The user name
// and email are snapshotted so the review queue stays readable even if the
// account changes later. Approval credits the balance through the ledger.
type TopUpRequest struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	UserName    string
	UserEmail   string
	Amount      float64
	ReceiptURL  string
	Status      TopUpRequestStatus
	AdminNote   string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// PaymentSettings holds the card details shown to users for manual top-up
// transfers. A single row exists per deployment.
type PaymentSettings struct {
	CardNumber     string
	CardHolder     string
	AdditionalInfo string
	UpdatedAt      time.Time
}
