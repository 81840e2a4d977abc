package impl

import (
	"context"
	"testing"

	"tsmarket/internal/domain/entity"
	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQRCode struct{ png []byte }

func (s stubQRCode) GeneratePNG(string) ([]byte, error) { return s.png, nil }

func newTopUp(store *memStore) usecase.TopUpUsecase {
	logger := testLogger()
	ledger := NewLedger(store, nil, logger)

	return NewTopUpService(store, ledger, stubQRCode{png: []byte("png")}, logger)
}

func seedCode(store *memStore, literal string, amount float64) *entity.TopUpCode {
	code := &entity.TopUpCode{Code: literal, Amount: amount}
	_ = store.TopUpRepo().CreateCode(context.Background(), code)

	return code
}

func TestRedeemCode(t *testing.T) {
	t.Run("credits the amount and consumes the code", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 10, 0, 1)
		seedCode(store, "WELCOME50", 50)
		topup := newTopUp(store)

		output, err := topup.RedeemCode(context.Background(), user.ID, "WELCOME50")
		require.NoError(t, err)
		assert.InDelta(t, 50.0, output.Amount, 1e-9)
		assert.InDelta(t, 60.0, output.NewBalance, 1e-9)

		// A second redemption of the same code must fail and credit nothing.
		_, err = topup.RedeemCode(context.Background(), user.ID, "WELCOME50")
		require.ErrorIs(t, err, domainerrors.ErrTopUpCodeInvalid)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.InDelta(t, 60.0, stored.Balance, 1e-9)
	})

	t.Run("unknown code", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 0, 1)
		topup := newTopUp(store)

		_, err := topup.RedeemCode(context.Background(), user.ID, "NOPE")
		require.ErrorIs(t, err, domainerrors.ErrTopUpCodeInvalid)
	})
}

func TestTopUpRequestLifecycle(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, 0, 0, 1)
	topup := newTopUp(store)

	request, err := topup.CreateRequest(context.Background(), user.ID, &usecase.TopUpRequestInput{
		Amount:     120,
		ReceiptURL: "https://receipts.example.com/1.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TopUpStatusPending, request.Status)
	assert.Equal(t, user.Email, request.UserEmail)

	approved, err := topup.ApproveRequest(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TopUpStatusApproved, approved.Status)
	require.NotNil(t, approved.ProcessedAt)

	stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, stored.Balance, 1e-9)

	// Approving the same request again must not double-credit.
	_, err = topup.ApproveRequest(context.Background(), request.ID)
	require.ErrorIs(t, err, domainerrors.ErrTopUpRequestProcessed)

	stored, err = store.UserRepo().FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, stored.Balance, 1e-9)
}

func TestRejectTopUpRequest(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, 0, 0, 1)
	topup := newTopUp(store)

	request, err := topup.CreateRequest(context.Background(), user.ID, &usecase.TopUpRequestInput{
		Amount:     80,
		ReceiptURL: "https://receipts.example.com/2.jpg",
	})
	require.NoError(t, err)

	rejected, err := topup.RejectRequest(context.Background(), request.ID, "receipt unreadable")
	require.NoError(t, err)
	assert.Equal(t, entity.TopUpStatusRejected, rejected.Status)
	assert.Equal(t, "receipt unreadable", rejected.AdminNote)

	stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, stored.Balance, 1e-9)
}

func TestTopUpRequestUnknownID(t *testing.T) {
	store := newMemStore()
	topup := newTopUp(store)

	_, err := topup.ApproveRequest(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrTopUpRequestNotFound)
}

func TestPaymentSettings(t *testing.T) {
	store := newMemStore()
	topup := newTopUp(store)

	require.NoError(t, topup.SavePaymentSettings(context.Background(), &usecase.PaymentSettingsInput{
		CardNumber: "4111 1111 1111 1111",
		CardHolder: "TSMARKET LLC",
	}))

	settings, err := topup.PaymentSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TSMARKET LLC", settings.CardHolder)

	png, err := topup.PaymentSettingsQR(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)
}

func TestPaymentSettingsQRUnconfigured(t *testing.T) {
	store := newMemStore()
	topup := newTopUp(store)

	_, err := topup.PaymentSettingsQR(context.Background())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTopUpCodeAdmin(t *testing.T) {
	store := newMemStore()
	topup := newTopUp(store)

	code, err := topup.CreateCode(context.Background(), &usecase.TopUpCodeInput{Code: "SPRING", Amount: 25})
	require.NoError(t, err)

	codes, err := topup.ListCodes(context.Background())
	require.NoError(t, err)
	assert.Len(t, codes, 1)

	require.NoError(t, topup.DeleteCode(context.Background(), code.ID))

	codes, err = topup.ListCodes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, codes)
}
