package impl

import (
	"context"
	"testing"

	"tsmarket/internal/domain/entity"
	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/domain/repository"
	"tsmarket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRewards(store *memStore) usecase.RewardUsecase {
	logger := testLogger()
	ledger := NewLedger(store, nil, logger)

	return NewRewardService(store, ledger, nil, logger)
}

func seedReward(store *memStore, level int, rewardType entity.RewardType, value float64) *entity.Reward {
	reward := &entity.Reward{
		LevelRequired: level,
		Name:          "Perk",
		RewardType:    rewardType,
		Value:         value,
	}
	_ = store.RewardRepo().Create(context.Background(), reward)

	return reward
}

func TestClaimReward(t *testing.T) {
	t.Run("coins reward credits the balance once", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 160, 1)
		user.Level = 2
		store.addUser(user)
		seedReward(store, 2, entity.RewardTypeCoins, 50)
		rewards := newRewards(store)

		claimed, err := rewards.ClaimReward(context.Background(), user.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, entity.RewardTypeCoins, claimed.RewardType)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, stored.Balance, 1e-9)
		assert.True(t, stored.HasClaimed(2))

		// A second claim of the same level must fail without re-applying.
		_, err = rewards.ClaimReward(context.Background(), user.ID, 2)
		require.ErrorIs(t, err, domainerrors.ErrAlreadyClaimed)

		stored, err = store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, stored.Balance, 1e-9)
	})

	t.Run("xp boost reward credits truncated xp", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 160, 1)
		user.Level = 2
		store.addUser(user)
		seedReward(store, 2, entity.RewardTypeXPBoost, 75.9)
		rewards := newRewards(store)

		_, err := rewards.ClaimReward(context.Background(), user.ID, 2)
		require.NoError(t, err)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, 235, stored.XP)
	})

	t.Run("discount reward only records the claim", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 10, 160, 1)
		user.Level = 2
		store.addUser(user)
		seedReward(store, 2, entity.RewardTypeDiscount, 15)
		rewards := newRewards(store)

		_, err := rewards.ClaimReward(context.Background(), user.ID, 2)
		require.NoError(t, err)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.InDelta(t, 10.0, stored.Balance, 1e-9)
		assert.Equal(t, 160, stored.XP)
		assert.True(t, stored.HasClaimed(2))
	})

	t.Run("unknown reward", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 0, 1)
		rewards := newRewards(store)

		_, err := rewards.ClaimReward(context.Background(), user.ID, 5)
		require.ErrorIs(t, err, domainerrors.ErrRewardNotFound)
	})

	t.Run("demotion landing just before the claim rejects it", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 100, 160, 1)
		user.Level = 2
		store.addUser(user)
		seedReward(store, 2, entity.RewardTypeCoins, 50)

		logger := testLogger()
		ledger := NewLedger(store, nil, logger)

		// An admin XP override commits right before the claim's transaction
		// opens; the gate must see the demoted level, not the stale one.
		zero := 0
		manager := &interceptTxManager{store: store}
		manager.before = func() {
			_, err := ledger.ApplyOverride(context.Background(), user.ID, usecase.AdminOverride{XP: &zero})
			require.NoError(t, err)
		}
		rewards := NewRewardService(manager, ledger, nil, logger)

		_, err := rewards.ClaimReward(context.Background(), user.ID, 2)
		require.ErrorIs(t, err, domainerrors.ErrLevelTooLow)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.False(t, stored.HasClaimed(2))
		assert.InDelta(t, 100.0, stored.Balance, 1e-9)
	})

	t.Run("level too low", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 0, 1)
		seedReward(store, 3, entity.RewardTypeCoins, 100)
		rewards := newRewards(store)

		_, err := rewards.ClaimReward(context.Background(), user.ID, 3)
		require.ErrorIs(t, err, domainerrors.ErrLevelTooLow)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.False(t, stored.HasClaimed(3))
	})
}

// interceptTxManager runs a hook once before the next transaction opens,
// simulating a mutation that commits just ahead of it.
type interceptTxManager struct {
	store  *memStore
	before func()
}

func (m *interceptTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.before != nil {
		hook := m.before
		m.before = nil
		hook()
	}

	return m.store.Execute(ctx, fn)
}

func TestListRewards(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, 0, 160, 1)
	user.Level = 2
	user.ClaimedRewards = []int{2}
	store.addUser(user)
	seedReward(store, 2, entity.RewardTypeCoins, 50)
	seedReward(store, 3, entity.RewardTypeDiscount, 10)
	rewards := newRewards(store)

	views, err := rewards.ListRewards(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.True(t, views[0].IsClaimed)
	assert.False(t, views[0].CanClaim)

	assert.False(t, views[1].IsClaimed)
	assert.False(t, views[1].CanClaim) // level 2 cannot claim the level 3 perk yet
}
