package impl

import (
	"context"
	"sync"
	"testing"

	"tsmarket/internal/domain/entity"
	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPrizes(store *memStore, weights []float64) []*entity.WheelPrize {
	prizes := make([]*entity.WheelPrize, 0, len(weights))
	for i, weight := range weights {
		prize := &entity.WheelPrize{
			Name:        string(rune('A' + i)),
			PrizeType:   entity.PrizeTypeCoins,
			Value:       float64(10 * (i + 1)),
			Probability: weight,
		}
		_ = store.WheelPrizeRepo().Create(context.Background(), prize)
		prizes = append(prizes, prize)
	}

	return prizes
}

func newWheel(store *memStore, r float64) usecase.WheelUsecase {
	logger := testLogger()
	ledger := NewLedger(store, nil, logger)

	return NewWheelService(store, ledger, fixedRandom{value: r}, logger)
}

func TestDrawPrize(t *testing.T) {
	weights := []float64{0.30, 0.25, 0.20, 0.10, 0.10, 0.05}
	prizes := make([]*entity.WheelPrize, len(weights))
	for i, weight := range weights {
		prizes[i] = &entity.WheelPrize{Name: string(rune('A' + i)), Probability: weight}
	}

	tests := []struct {
		name string
		r    float64
		want string
	}{
		{name: "zero lands on first segment", r: 0.0, want: "A"},
		{name: "segment boundary belongs to the earlier prize", r: 0.30, want: "A"},
		{name: "just past the boundary", r: 0.31, want: "B"},
		{name: "draw deep into the tail", r: 0.81, want: "E"},
		{name: "top of the range lands on the last segment", r: 0.999, want: "F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, drawPrize(prizes, tt.r).Name)
		})
	}
}

func TestDrawPrizeUnnormalizedWeights(t *testing.T) {
	// Weights are relative; tripling them must not change the outcome.
	prizes := []*entity.WheelPrize{
		{Name: "A", Probability: 0.9},
		{Name: "B", Probability: 0.75},
		{Name: "C", Probability: 0.6},
	}
	assert.Equal(t, "A", drawPrize(prizes, 0.1).Name)
	assert.Equal(t, "B", drawPrize(prizes, 0.5).Name)
	assert.Equal(t, "C", drawPrize(prizes, 0.99).Name)
}

func TestDrawPrizeFallsBackToLastOnDrift(t *testing.T) {
	prizes := []*entity.WheelPrize{
		{Name: "A", Probability: 0.5},
		{Name: "B", Probability: 0.5},
	}
	assert.Equal(t, "B", drawPrize(prizes, 1.0).Name)
}

func TestWheelSpin(t *testing.T) {
	t.Run("consumes a spin and credits the drawn prize", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 0, 2)
		seedPrizes(store, []float64{1.0})
		wheel := newWheel(store, 0.5)

		output, err := wheel.Spin(context.Background(), user.ID)
		require.NoError(t, err)

		assert.Equal(t, "A", output.Prize.Name)
		assert.Equal(t, 1, output.SpinsRemaining)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.InDelta(t, 10.0, stored.Balance, 1e-9)
		assert.Equal(t, 1, stored.WheelSpins)
	})

	t.Run("xp prize crossing a level grants the bonus spin", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 90, 1)
		prize := &entity.WheelPrize{Name: "XP", PrizeType: entity.PrizeTypeXP, Value: 50, Probability: 1}
		require.NoError(t, store.WheelPrizeRepo().Create(context.Background(), prize))
		wheel := newWheel(store, 0.5)

		output, err := wheel.Spin(context.Background(), user.ID)
		require.NoError(t, err)

		// The spin itself is consumed but the level-up grants one back.
		assert.Equal(t, 1, output.SpinsRemaining)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, 140, stored.XP)
		assert.Equal(t, 2, stored.Level)
	})

	t.Run("no spins available", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 0, 0)
		seedPrizes(store, []float64{1.0})
		wheel := newWheel(store, 0.5)

		_, err := wheel.Spin(context.Background(), user.ID)
		require.ErrorIs(t, err, domainerrors.ErrNoSpinsAvailable)
	})

	t.Run("no prizes configured leaves the spin unconsumed", func(t *testing.T) {
		store := newMemStore()
		user := seedUser(store, 0, 0, 1)
		wheel := newWheel(store, 0.5)

		_, err := wheel.Spin(context.Background(), user.ID)
		require.ErrorIs(t, err, domainerrors.ErrNoPrizesConfigured)

		stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.WheelSpins)
	})
}

func TestWheelSpinConcurrentSingleEntitlement(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, 0, 0, 1)
	seedPrizes(store, []float64{1.0})
	wheel := newWheel(store, 0.5)

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = wheel.Spin(context.Background(), user.ID)
		}()
	}
	wg.Wait()

	var successes, rejections int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, domainerrors.ErrNoSpinsAvailable)
			rejections++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, rejections)

	stored, err := store.UserRepo().FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.WheelSpins)
	assert.InDelta(t, 10.0, stored.Balance, 1e-9)
}

func TestWheelListPrizes(t *testing.T) {
	store := newMemStore()
	seedPrizes(store, []float64{0.5, 0.5})
	wheel := newWheel(store, 0.5)

	prizes, err := wheel.ListPrizes(context.Background())
	require.NoError(t, err)
	require.Len(t, prizes, 2)
	assert.Equal(t, "A", prizes[0].Name)
	assert.Equal(t, "B", prizes[1].Name)
}
