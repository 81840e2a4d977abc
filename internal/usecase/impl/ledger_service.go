// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/domain/progression"
	"tsmarket/internal/domain/repository"
	"tsmarket/internal/domain/service"
	"tsmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// maxLedgerAttempts bounds the internal retries on version conflicts. A
// conflict means another mutation for the same user committed between our
// read and write; a fresh re-read usually resolves it.
const maxLedgerAttempts = 3

// ledgerService implements the Ledger interface. It is the only place that
// writes balance, XP, level, spins or the claimed set, so every caller gets
// identical level-up and spin-bonus semantics.
type ledgerService struct {
	txManager repository.TransactionManager
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewLedger is the constructor for ledgerService.
func NewLedger(
	txManager repository.TransactionManager,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.Ledger {
	return &ledgerService{
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// ApplyDelta runs the mutation in its own transaction, retrying on
// concurrent-update conflicts with a fresh re-read.
func (srv *ledgerService) ApplyDelta(ctx context.Context, userID uuid.UUID, delta usecase.LedgerDelta) (*usecase.LedgerResult, error) {
	var result *usecase.LedgerResult

	err := withConflictRetry(ctx, srv.logger, func() error {
		return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
			res, err := srv.ApplyDeltaTx(ctx, repos, userID, delta)
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

	srv.publishLevelUp(ctx, result)

	return result, nil
}

// ApplyDeltaTx validates and applies the delta against the repositories of an
// already-open transaction. The enclosing caller owns conflict retries and
// post-commit event publishing.
func (srv *ledgerService) ApplyDeltaTx(ctx context.Context, repos repository.RepositoryFactory, userID uuid.UUID, delta usecase.LedgerDelta) (*usecase.LedgerResult, error) {
	userRepo := repos.UserRepo()

	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to read user for ledger mutation")
	}

	newBalance := user.Balance + delta.Balance
	if newBalance < 0 {
		return nil, errors.WithStack(domainerrors.ErrInsufficientFunds)
	}

	newXP := user.XP + delta.XP
	oldLevel := user.Level
	// The level is always derived from the post-delta XP, never trusted from
	// the caller, so level and XP cannot desynchronize.
	newLevel := progression.LevelForXP(newXP)

	newSpins := user.WheelSpins + delta.Spins
	if delta.GrantLevelSpins && newLevel > oldLevel {
		newSpins += newLevel - oldLevel
	}
	if newSpins < 0 {
		return nil, errors.WithStack(domainerrors.ErrNoSpinsAvailable)
	}

	if delta.ClaimLevel != nil {
		if err := userRepo.AppendClaimedReward(ctx, userID, *delta.ClaimLevel); err != nil {
			if errors.Is(err, repository.ErrDuplicateClaim) {
				return nil, errors.WithStack(domainerrors.ErrAlreadyClaimed)
			}

			return nil, errors.Wrap(err, "failed to record claimed reward")
		}
		user.ClaimedRewards = append(user.ClaimedRewards, *delta.ClaimLevel)
	}

	user.Balance = newBalance
	user.XP = newXP
	user.Level = newLevel
	user.WheelSpins = newSpins

	if err := userRepo.UpdateLedger(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to write ledger state")
	}

	return &usecase.LedgerResult{
		User:      user,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		LeveledUp: newLevel > oldLevel,
	}, nil
}

// ApplyOverride performs the admin absolute write. The level is recomputed
// from the new XP but, unlike organic gains, no level-up spins are granted.
func (srv *ledgerService) ApplyOverride(ctx context.Context, userID uuid.UUID, override usecase.AdminOverride) (*usecase.LedgerResult, error) {
	var result *usecase.LedgerResult

	err := withConflictRetry(ctx, srv.logger, func() error {
		return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
			userRepo := repos.UserRepo()

			user, err := userRepo.FindByID(ctx, userID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return errors.WithStack(domainerrors.ErrUserNotFound)
				}

				return errors.Wrap(err, "failed to read user for admin override")
			}

			oldLevel := user.Level

			if override.Balance != nil {
				if *override.Balance < 0 {
					return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("balance must not be negative"))
				}
				user.Balance = *override.Balance
			}
			if override.XP != nil {
				if *override.XP < 0 {
					return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("xp must not be negative"))
				}
				user.XP = *override.XP
				user.Level = progression.LevelForXP(user.XP)
			}

			if err := userRepo.UpdateLedger(ctx, user); err != nil {
				return errors.Wrap(err, "failed to write admin override")
			}

			result = &usecase.LedgerResult{
				User:      user,
				OldLevel:  oldLevel,
				NewLevel:  user.Level,
				LeveledUp: user.Level > oldLevel,
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// publishLevelUp emits a best-effort level-up event after a committed
// mutation; a publish failure is logged and never affects the caller.
func (srv *ledgerService) publishLevelUp(ctx context.Context, result *usecase.LedgerResult) {
	if srv.publisher == nil || result == nil || !result.LeveledUp {
		return
	}

	event := &service.LedgerEvent{
		EventType: service.EventLevelUp,
		UserID:    result.User.ID.String(),
		OldLevel:  result.OldLevel,
		NewLevel:  result.NewLevel,
	}
	if err := srv.publisher.PublishLedgerEvent(ctx, event); err != nil {
		srv.logger.Warn("failed to publish level-up event",
			"userID", result.User.ID, "error", err)
	}
}

// withConflictRetry runs fn, re-running it on version conflicts up to
// maxLedgerAttempts before surfacing a conflict to the caller. Each retry
// re-reads inside a fresh transaction, so the race resolves unless the user
// is under sustained concurrent mutation.
func withConflictRetry(ctx context.Context, logger *slog.Logger, fn func() error) error {
	var err error

	for attempt := 1; attempt <= maxLedgerAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}

		logger.Debug("ledger version conflict, retrying",
			"attempt", attempt, "maxAttempts", maxLedgerAttempts)

		if ctx.Err() != nil {
			return errors.WithStack(ctx.Err())
		}
	}

	return errors.WithStack(domainerrors.ErrLedgerConflict)
}
