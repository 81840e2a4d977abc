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

func newCheckout(store *memStore, publisher *capturingPublisher) usecase.CheckoutUsecase {
	logger := testLogger()
	ledger := NewLedger(store, nil, logger)
	if publisher == nil {
		return NewCheckoutService(store, ledger, nil, logger)
	}

	return NewCheckoutService(store, ledger, publisher, logger)
}

func seedShirt(store *memStore, price float64, xp int, sizes ...string) *entity.Product {
	product := &entity.Product{
		Name:     "Logo Tee",
		Price:    price,
		XPReward: xp,
		Sizes:    sizes,
		IsActive: true,
	}
	store.addProduct(product)

	return product
}

func TestCheckout(t *testing.T) {
	t.Run("debits balance, awards xp and snapshots items", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 200, 0, 1)
		product := seedShirt(store, 40, 30, "M", "L")
		checkout := newCheckout(store, nil)

		output, err := checkout.Checkout(context.Background(), user.ID, &usecase.CheckoutInput{
			Lines: []usecase.CartLine{{ProductID: product.ID, Quantity: 2, Size: "M"}},
		})
		require.NoError(t, err)

		assert.InDelta(t, 80.0, output.Order.Total, 1e-9)
		assert.Equal(t, 60, output.XPGained)
		assert.Equal(t, entity.OrderStatusCompleted, output.Order.Status)
		require.Len(t, output.Order.Items, 1)
		assert.Equal(t, "Logo Tee", output.Order.Items[0].ProductName)
		assert.InDelta(t, 40.0, output.Order.Items[0].Price, 1e-9)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.InDelta(t, 120.0, stored.Balance, 1e-9)
		assert.Equal(t, 60, stored.XP)
	})

	t.Run("crossing a level boundary grants one bonus spin", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 1000, 0, 1)
		product := seedShirt(store, 10, 160)
		checkout := newCheckout(store, nil)

		output, err := checkout.Checkout(context.Background(), user.ID, &usecase.CheckoutInput{
			Lines: []usecase.CartLine{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		assert.True(t, output.LeveledUp)
		assert.Equal(t, 2, output.NewLevel)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Level)
		assert.Equal(t, 2, stored.WheelSpins)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 100, 0, 1)
		checkout := newCheckout(store, nil)

		_, err := checkout.Checkout(context.Background(), user.ID, &usecase.CheckoutInput{})
		require.ErrorIs(t, err, domainerrors.ErrEmptyCart)
	})

	t.Run("unknown product fails the whole order", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 100, 0, 1)
		product := seedShirt(store, 10, 5)
		checkout := newCheckout(store, nil)

		_, err := checkout.Checkout(context.Background(), user.ID, &usecase.CheckoutInput{
			Lines: []usecase.CartLine{
				{ProductID: product.ID, Quantity: 1},
				{ProductID: uuid.New(), Quantity: 1},
			},
		})
		require.ErrorIs(t, err, domainerrors.ErrProductNotFound)

		orders, err := store.OrderRepo().ListByUser(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Empty(t, orders)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.InDelta(t, 100.0, stored.Balance, 1e-9)
		assert.Equal(t, 0, stored.XP)
	})

	t.Run("size outside the allowed set is rejected", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 100, 0, 1)
		product := seedShirt(store, 10, 5, "S", "M")
		checkout := newCheckout(store, nil)

		_, err := checkout.Checkout(context.Background(), user.ID, &usecase.CheckoutInput{
			Lines: []usecase.CartLine{{ProductID: product.ID, Quantity: 1, Size: "XXL"}},
		})
		require.ErrorIs(t, err, domainerrors.ErrInvalidSize)
	})

	t.Run("insufficient funds leaves no partial effects", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 50, 20, 1)
		product := seedShirt(store, 60, 100)
		checkout := newCheckout(store, nil)

		_, err := checkout.Checkout(context.Background(), user.ID, &usecase.CheckoutInput{
			Lines: []usecase.CartLine{{ProductID: product.ID, Quantity: 1}},
		})
		require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

		orders, err := store.OrderRepo().ListByUser(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Empty(t, orders)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, stored.Balance, 1e-9)
		assert.Equal(t, 20, stored.XP)
		assert.Equal(t, 1, stored.WheelSpins)
	})

	t.Run("publishes order completed event", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 100, 0, 1)
		product := seedShirt(store, 10, 5)
		publisher := &capturingPublisher{}
		checkout := newCheckout(store, publisher)

		_, err := checkout.Checkout(context.Background(), user.ID, &usecase.CheckoutInput{
			Lines: []usecase.CartLine{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Contains(t, publisher.eventTypes(), "order.completed")
	})
}

func TestCheckoutListOrders(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, 100, 0, 1)
	product := seedShirt(store, 10, 5)
	checkout := newCheckout(store, nil)

	for range 3 {
		_, err := checkout.Checkout(context.Background(), user.ID, &usecase.CheckoutInput{
			Lines: []usecase.CartLine{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	orders, err := checkout.ListOrders(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}
