package impl

import (
	"context"
	"testing"

	"tsmarket/internal/domain/entity"
	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdmin(store *memStore) usecase.AdminUsecase {
	logger := testLogger()
	ledger := NewLedger(store, nil, logger)

	return NewAdminService(store, ledger, logger)
}

func TestAdminAdjustments(t *testing.T) {
	t.Run("balance override is absolute", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 75, 0, 1)
		admin := newAdmin(store)

		updated, err := admin.AdjustBalance(context.Background(), user.ID, 500)
		require.NoError(t, err)
		assert.InDelta(t, 500.0, updated.Balance, 1e-9)
	})

	t.Run("xp override recomputes level without spin bonus", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 0, 1)
		admin := newAdmin(store)

		updated, err := admin.AdjustXP(context.Background(), user.ID, 560)
		require.NoError(t, err)
		assert.Equal(t, 560, updated.XP)
		assert.Equal(t, 4, updated.Level)
		assert.Equal(t, 1, updated.WheelSpins)
	})
}

func TestAdminStats(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, 1000, 0, 1)
	product := seedShirt(store, 25, 10)
	checkout := newCheckout(store, nil)

	for range 2 {
		_, err := checkout.Checkout(context.Background(), user.ID, &usecase.CheckoutInput{
			Lines: []usecase.CartLine{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	admin := newAdmin(store)
	stats, err := admin.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.UsersCount)
	assert.Equal(t, int64(2), stats.OrdersCount)
	assert.Equal(t, int64(1), stats.ProductsCount)
	assert.InDelta(t, 50.0, stats.TotalRevenue, 1e-9)
}

func TestAdminUserManagement(t *testing.T) {
	t.Run("set admin flag", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 0, 1)
		admin := newAdmin(store)

		require.NoError(t, admin.SetAdmin(context.Background(), user.ID, true))

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsAdmin)
	})

	t.Run("admins cannot delete themselves", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 0, 1)
		admin := newAdmin(store)

		err := admin.DeleteUser(context.Background(), user.ID, user.ID)
		require.ErrorIs(t, err, domainerrors.ErrSelfDeletion)
	})

	t.Run("delete another user", func(t *testing.T) {
		store := newMemStore()
		caller := seedUser(store, 0, 0, 1)
		target := entity.NewUser("target@example.com", "Target")
		store.addUser(target)
		admin := newAdmin(store)

		require.NoError(t, admin.DeleteUser(context.Background(), caller.ID, target.ID))

		_, err := store.UserRepo().FindByID(context.Background(), target.ID)
		require.Error(t, err)
	})
}

func TestAdminRewardAndPrizeConfig(t *testing.T) {
	store := newMemStore()
	admin := newAdmin(store)

	reward, err := admin.CreateReward(context.Background(), &usecase.RewardInput{
		LevelRequired: 2,
		Name:          "Free Sticker Pack",
		RewardType:    "coins",
		Value:         25,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RewardTypeCoins, reward.RewardType)

	prize, err := admin.CreateWheelPrize(context.Background(), &usecase.WheelPrizeInput{
		Name:        "10 Coins",
		PrizeType:   "coins",
		Value:       10,
		Probability: 0.5,
	})
	require.NoError(t, err)

	require.NoError(t, admin.DeleteReward(context.Background(), reward.ID))
	require.NoError(t, admin.DeleteWheelPrize(context.Background(), prize.ID))

	prizes, err := store.WheelPrizeRepo().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prizes)
}
