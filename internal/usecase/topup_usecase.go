package usecase

import (
	"context"

	"tsmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// RedeemOutput reports a successful voucher redemption.
type RedeemOutput struct {
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"new_balance"`
}

// TopUpRequestInput carries a card-payment top-up submission.
type TopUpRequestInput struct {
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	ReceiptURL string  `json:"receipt_url" validate:"required"`
}

// TopUpCodeInput carries an admin-created voucher code.
type TopUpCodeInput struct {
	Code   string  `json:"code" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// PaymentSettingsInput carries the card details for manual transfers.
type PaymentSettingsInput struct {
	CardNumber     string `json:"card_number" validate:"required"`
	CardHolder     string `json:"card_holder"`
	AdditionalInfo string `json:"additional_info"`
}

// TopUpUsecase covers voucher redemption and the card-payment top-up review
// flow. All balance credits go through the ledger engine.
type TopUpUsecase interface {
	// RedeemCode consumes a voucher and credits its amount; the code flip and
	// the balance credit commit in one transaction.
	RedeemCode(ctx context.Context, userID uuid.UUID, code string) (*RedeemOutput, error)

	// CreateRequest files a pending card-payment top-up for admin review.
	CreateRequest(ctx context.Context, userID uuid.UUID, input *TopUpRequestInput) (*entity.TopUpRequest, error)

	// ListRequests returns the caller's top-up requests, newest first.
	ListRequests(ctx context.Context, userID uuid.UUID) ([]*entity.TopUpRequest, error)

	// PaymentSettings returns the public card details for manual transfers.
	PaymentSettings(ctx context.Context) (*entity.PaymentSettings, error)

	// PaymentSettingsQR renders the card details as a PNG QR code.
	PaymentSettingsQR(ctx context.Context) ([]byte, error)

	// Admin operations.
	ApproveRequest(ctx context.Context, requestID uuid.UUID) (*entity.TopUpRequest, error)
	RejectRequest(ctx context.Context, requestID uuid.UUID, note string) (*entity.TopUpRequest, error)
	ListAllRequests(ctx context.Context) ([]*entity.TopUpRequest, error)
	SavePaymentSettings(ctx context.Context, input *PaymentSettingsInput) error
	CreateCode(ctx context.Context, input *TopUpCodeInput) (*entity.TopUpCode, error)
	ListCodes(ctx context.Context) ([]*entity.TopUpCode, error)
	DeleteCode(ctx context.Context, id uuid.UUID) error
}
