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

// rewardService implements the RewardUsecase interface.
type rewardService struct {
	txManager repository.TransactionManager
	ledger    usecase.Ledger
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewRewardService is the constructor for rewardService.
func NewRewardService(
	txManager repository.TransactionManager,
	ledger usecase.Ledger,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.RewardUsecase {
	return &rewardService{
		txManager: txManager,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
	}
}

// ListRewards returns all reward definitions annotated with the caller's
// claim state.
func (srv *rewardService) ListRewards(ctx context.Context, userID uuid.UUID) ([]*usecase.RewardView, error) {
	var views []*usecase.RewardView

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		user, err := repos.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrUserNotFound)
			}

			return errors.Wrap(err, "failed to read user")
		}

		rewards, err := repos.RewardRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list rewards")
		}

		views = make([]*usecase.RewardView, 0, len(rewards))
		for _, reward := range rewards {
			claimed := user.HasClaimed(reward.LevelRequired)
			views = append(views, &usecase.RewardView{
				Reward:    reward,
				CanClaim:  user.Level >= reward.LevelRequired && !claimed,
				IsClaimed: claimed,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return views, nil
}

// ClaimReward redeems the reward gated at the given level. The validation
// order is fixed: unknown reward, then level gate, then re-claim. The lookup,
// the gate checks and the ledger mutation share one transaction, so the level
// that passed the gate is the level the claim commits against, and a
// concurrent duplicate claim fails instead of double-applying.
func (srv *rewardService) ClaimReward(ctx context.Context, userID uuid.UUID, levelRequired int) (*entity.Reward, error) {
	var reward *entity.Reward
	var result *usecase.LedgerResult

	err := withConflictRetry(ctx, srv.logger, func() error {
		return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
			found, err := repos.RewardRepo().FindByLevel(ctx, levelRequired)
			if err != nil {
				if errors.Is(err, repository.ErrRewardNotFound) {
					return errors.WithStack(domainerrors.ErrRewardNotFound)
				}

				return errors.Wrap(err, "failed to resolve reward")
			}
			reward = found

			user, err := repos.UserRepo().FindByID(ctx, userID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return errors.WithStack(domainerrors.ErrUserNotFound)
				}

				return errors.Wrap(err, "failed to read user")
			}

			if user.Level < levelRequired {
				return errors.WithStack(domainerrors.ErrLevelTooLow)
			}
			if user.HasClaimed(levelRequired) {
				return errors.WithStack(domainerrors.ErrAlreadyClaimed)
			}

			delta := usecase.LedgerDelta{
				ClaimLevel:      &levelRequired,
				GrantLevelSpins: true,
			}
			switch reward.RewardType {
			case entity.RewardTypeCoins:
				delta.Balance = reward.Value
			case entity.RewardTypeXPBoost:
				delta.XP = int(math.Floor(reward.Value))
			default:
				// discount/exclusive rewards are recorded as claimed; their
				// redemption happens outside the ledger.
			}

			// The ledger re-reads the same row inside this transaction, so the
			// gate checks above cannot go stale before the write.
			res, err := srv.ledger.ApplyDeltaTx(ctx, repos, userID, delta)
			if err != nil {
				return err
			}
			result = res

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	srv.publishLevelUp(ctx, userID, result)

	srv.logger.Info("Reward claimed", "userID", userID, "level", levelRequired, "type", reward.RewardType)

	return reward, nil
}

// publishLevelUp emits the post-commit level-up event for claims whose XP
// effect crossed a threshold.
func (srv *rewardService) publishLevelUp(ctx context.Context, userID uuid.UUID, result *usecase.LedgerResult) {
	if srv.publisher == nil || result == nil || !result.LeveledUp {
		return
	}

	event := &service.LedgerEvent{
		EventType: service.EventLevelUp,
		UserID:    userID.String(),
		OldLevel:  result.OldLevel,
		NewLevel:  result.NewLevel,
	}
	if err := srv.publisher.PublishLedgerEvent(ctx, event); err != nil {
		srv.logger.Warn("failed to publish level-up event", "userID", userID, "error", err)
	}
}
