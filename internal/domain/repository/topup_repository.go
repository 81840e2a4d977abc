package repository

import (
	"context"
	"errors"

	"tsmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTopUpCodeNotFound is returned when a code lookup misses or the code was
// already consumed.
var ErrTopUpCodeNotFound = errors.New("top-up code not found")

// ErrTopUpCodeUsed is returned by MarkUsed when another redemption won the race.
var ErrTopUpCodeUsed = errors.New("top-up code already used")

// ErrTopUpRequestNotFound is returned when a top-up request lookup misses.
var ErrTopUpRequestNotFound = errors.New("top-up request not found")

// TopUpRepository covers both voucher codes and card-payment top-up requests,
// plus the payment settings shown to users.
type TopUpRepository interface {
	// FindUnusedCode retrieves an unredeemed code by its literal value.
	FindUnusedCode(ctx context.Context, code string) (*entity.TopUpCode, error)

	// MarkCodeUsed consumes the code for the given user. The update is
	// conditional on the code being unused so concurrent redemptions cannot
	// both succeed.
	MarkCodeUsed(ctx context.Context, codeID, userID uuid.UUID) error

	CreateCode(ctx context.Context, code *entity.TopUpCode) error

	ListCodes(ctx context.Context) ([]*entity.TopUpCode, error)

	DeleteCode(ctx context.Context, id uuid.UUID) error

	// CreateRequest stores a pending card-payment top-up request.
	CreateRequest(ctx context.Context, request *entity.TopUpRequest) error

	FindRequestByID(ctx context.Context, id uuid.UUID) (*entity.TopUpRequest, error)

	ListRequestsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TopUpRequest, error)

	ListRequests(ctx context.Context) ([]*entity.TopUpRequest, error)

	// UpdateRequest persists a processed (approved/rejected) request.
	UpdateRequest(ctx context.Context, request *entity.TopUpRequest) error

	// PaymentSettings returns the card details for manual transfers; a zero
	// value is returned when none were configured yet.
	PaymentSettings(ctx context.Context) (*entity.PaymentSettings, error)

	// SavePaymentSettings upserts the card details.
	SavePaymentSettings(ctx context.Context, settings *entity.PaymentSettings) error
}
