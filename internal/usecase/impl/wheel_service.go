package impl

import (
	"context"
	"log/slog"
	"math"

	"tsmarket/internal/domain/entity"
	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/domain/repository"
	"tsmarket/internal/domain/service"
	"tsmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// wheelService implements the WheelUsecase interface.
type wheelService struct {
	txManager repository.TransactionManager
	ledger    usecase.Ledger
	random    service.RandomSource
	logger    *slog.Logger
}

// NewWheelService is the constructor for wheelService.
func NewWheelService(
	txManager repository.TransactionManager,
	ledger usecase.Ledger,
	random service.RandomSource,
	logger *slog.Logger,
) usecase.WheelUsecase {
	return &wheelService{
		txManager: txManager,
		ledger:    ledger,
		random:    random,
		logger:    logger,
	}
}

// ListPrizes returns the configured wheel segments in creation order.
func (srv *wheelService) ListPrizes(ctx context.Context) ([]*entity.WheelPrize, error) {
	var prizes []*entity.WheelPrize

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := repos.WheelPrizeRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list wheel prizes")
		}
		prizes = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return prizes, nil
}

// Spin consumes one spin entitlement, draws a prize weighted by the
// configured probabilities and applies both in a single ledger mutation.
// The spin debit and the prize credit commit together or not at all.
func (srv *wheelService) Spin(ctx context.Context, userID uuid.UUID) (*usecase.SpinOutput, error) {
	var output *usecase.SpinOutput

	err := withConflictRetry(ctx, srv.logger, func() error {
		return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
			user, err := repos.UserRepo().FindByID(ctx, userID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return errors.WithStack(domainerrors.ErrUserNotFound)
				}

				return errors.Wrap(err, "failed to read user for spin")
			}
			if user.WheelSpins < 1 {
				return errors.WithStack(domainerrors.ErrNoSpinsAvailable)
			}

			prizes, err := repos.WheelPrizeRepo().List(ctx)
			if err != nil {
				return errors.Wrap(err, "failed to list wheel prizes")
			}
			if len(prizes) == 0 {
				return errors.WithStack(domainerrors.ErrNoPrizesConfigured)
			}

			prize := drawPrize(prizes, srv.random.Float64())

			delta := usecase.LedgerDelta{
				Spins:           -1,
				GrantLevelSpins: true,
			}
			switch prize.PrizeType {
			case entity.PrizeTypeCoins:
				delta.Balance = prize.Value
			case entity.PrizeTypeXP:
				delta.XP = int(math.Floor(prize.Value))
			}

			result, err := srv.ledger.ApplyDeltaTx(ctx, repos, userID, delta)
			if err != nil {
				return err
			}

			output = &usecase.SpinOutput{
				Prize:          prize,
				SpinsRemaining: result.User.WheelSpins,
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Wheel spin resolved",
		"userID", userID, "prize", output.Prize.Name, "spinsRemaining", output.SpinsRemaining)

	return output, nil
}

// drawPrize selects the first prize whose cumulative weight reaches the draw
// point r*totalWeight. Weights need not sum to 1. If float accumulation drifts
// past every segment, the last prize wins.
func drawPrize(prizes []*entity.WheelPrize, r float64) *entity.WheelPrize {
	total := 0.0
	for _, prize := range prizes {
		total += prize.Probability
	}

	point := r * total
	cumulative := 0.0
	for _, prize := range prizes {
		cumulative += prize.Probability
		if point <= cumulative {
			return prize
		}
	}

	return prizes[len(prizes)-1]
}
