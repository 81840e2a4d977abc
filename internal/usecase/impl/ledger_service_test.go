package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tsmarket/internal/domain/entity"
	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/domain/repository"
	"tsmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedUser(store *memStore, balance float64, xp, spins int) *entity.User {
	user := entity.NewUser("user@example.com", "Test User")
	user.Balance = balance
	user.XP = xp
	user.Level = 1
	user.WheelSpins = spins
	store.addUser(user)

	return user
}

func TestLedgerApplyDelta(t *testing.T) {
	t.Run("credits balance and xp and derives level", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 50, 0, 1)
		ledger := NewLedger(store, nil, testLogger())

		result, err := ledger.ApplyDelta(context.Background(), user.ID, usecase.LedgerDelta{
			Balance:         100,
			XP:              160,
			GrantLevelSpins: true,
		})
		require.NoError(t, err)

		assert.InDelta(t, 150.0, result.User.Balance, 1e-9)
		assert.Equal(t, 160, result.User.XP)
		assert.Equal(t, 2, result.User.Level)
	})
}

func TestLedgerApplyDeltaLevelUp(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, 0, 0, 1)
	publisher := &capturingPublisher{}
	ledger := NewLedger(store, publisher, testLogger())

	result, err := ledger.ApplyDelta(context.Background(), user.ID, usecase.LedgerDelta{
		XP:              160,
		GrantLevelSpins: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.OldLevel)
	assert.Equal(t, 2, result.NewLevel)
	assert.True(t, result.LeveledUp)
	// One level gained grants exactly one bonus spin on top of the existing one.
	assert.Equal(t, 2, result.User.WheelSpins)
	assert.Contains(t, publisher.eventTypes(), "user.leveled_up")
}

func TestLedgerApplyDeltaInsufficientFunds(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, 30, 50, 1)
	ledger := NewLedger(store, nil, testLogger())

	_, err := ledger.ApplyDelta(context.Background(), user.ID, usecase.LedgerDelta{
		Balance: -31,
		XP:      10,
	})
	require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

	// The failed delta must leave every field untouched.
	stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, stored.Balance, 1e-9)
	assert.Equal(t, 50, stored.XP)
	assert.Equal(t, 1, stored.WheelSpins)
}

func TestLedgerApplyDeltaNegativeSpins(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, 0, 0, 0)
	ledger := NewLedger(store, nil, testLogger())

	_, err := ledger.ApplyDelta(context.Background(), user.ID, usecase.LedgerDelta{Spins: -1})
	require.ErrorIs(t, err, domainerrors.ErrNoSpinsAvailable)
}

func TestLedgerApplyDeltaUnknownUser(t *testing.T) {
	store := newMemStore()
	ledger := NewLedger(store, nil, testLogger())

	_, err := ledger.ApplyDelta(context.Background(), uuid.New(), usecase.LedgerDelta{XP: 1})
	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestLedgerApplyOverride(t *testing.T) {
	t.Run("sets absolute values and recomputes level without spin bonus", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 10, 0, 1)
		ledger := NewLedger(store, nil, testLogger())

		balance := 500.0
		xp := 400
		result, err := ledger.ApplyOverride(context.Background(), user.ID, usecase.AdminOverride{
			Balance: &balance,
			XP:      &xp,
		})
		require.NoError(t, err)

		assert.InDelta(t, 500.0, result.User.Balance, 1e-9)
		assert.Equal(t, 400, result.User.XP)
		assert.Equal(t, 3, result.User.Level)
		// Overrides never grant compensating spins for the level jump.
		assert.Equal(t, 1, result.User.WheelSpins)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 10, 0, 1)
		ledger := NewLedger(store, nil, testLogger())

		balance := -1.0
		_, err := ledger.ApplyOverride(context.Background(), user.ID, usecase.AdminOverride{Balance: &balance})
		require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

// conflictTxManager fails UpdateLedger with a version conflict a fixed number
// of times before delegating to the real store.
type conflictTxManager struct {
	store     *memStore
	conflicts int
}

func (m *conflictTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.conflicts > 0 {
		m.conflicts--

		return repository.ErrVersionConflict
	}

	return m.store.Execute(ctx, fn)
}

func TestLedgerConflictRetry(t *testing.T) {
	t.Run("retries transient conflicts", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 0, 1)
		txManager := &conflictTxManager{store: store, conflicts: 2}
		ledger := NewLedger(txManager, nil, testLogger())

		result, err := ledger.ApplyDelta(context.Background(), user.ID, usecase.LedgerDelta{XP: 10})
		require.NoError(t, err)
		assert.Equal(t, 10, result.User.XP)
	})

	t.Run("surfaces sustained conflicts", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 0, 1)
		txManager := &conflictTxManager{store: store, conflicts: maxLedgerAttempts}
		ledger := NewLedger(txManager, nil, testLogger())

		_, err := ledger.ApplyDelta(context.Background(), user.ID, usecase.LedgerDelta{XP: 10})
		require.ErrorIs(t, err, domainerrors.ErrLedgerConflict)
	})
}
