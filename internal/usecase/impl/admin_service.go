package impl

import (
	"context"
	"log/slog"
	"time"

	"tsmarket/internal/domain/entity"
	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/domain/repository"
	"tsmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager repository.TransactionManager
	ledger    usecase.Ledger
	logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(
	txManager repository.TransactionManager,
	ledger usecase.Ledger,
	logger *slog.Logger,
) usecase.AdminUsecase {
	return &adminService{
		txManager: txManager,
		ledger:    ledger,
		logger:    logger,
	}
}

// AdjustBalance sets the user's balance to an absolute value through the
// ledger override path.
func (srv *adminService) AdjustBalance(ctx context.Context, userID uuid.UUID, balance float64) (*entity.User, error) {
	result, err := srv.ledger.ApplyOverride(ctx, userID, usecase.AdminOverride{
		Balance: &balance,
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Admin balance override", "userID", userID, "balance", balance)

	return result.User, nil
}

// AdjustXP sets the user's XP to an absolute value. The level is recomputed
// from the new XP; no compensating spins are granted for the level change.
func (srv *adminService) AdjustXP(ctx context.Context, userID uuid.UUID, xp int) (*entity.User, error) {
	result, err := srv.ledger.ApplyOverride(ctx, userID, usecase.AdminOverride{
		XP: &xp,
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Admin XP override", "userID", userID, "xp", xp, "level", result.NewLevel)

	return result.User, nil
}

// Stats summarizes the storefront for the admin overview.
func (srv *adminService) Stats(ctx context.Context) (*usecase.AdminStats, error) {
	var stats *usecase.AdminStats

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		users, err := repos.UserRepo().Count(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to count users")
		}

		orders, err := repos.OrderRepo().Count(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to count orders")
		}

		products, err := repos.ProductRepo().Count(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to count products")
		}

		revenue, err := repos.OrderRepo().TotalRevenue(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to sum revenue")
		}

		stats = &usecase.AdminStats{
			UsersCount:    users,
			OrdersCount:   orders,
			ProductsCount: products,
			TotalRevenue:  revenue,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (srv *adminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := repos.UserRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}
		users = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (srv *adminService) SetAdmin(ctx context.Context, userID uuid.UUID, isAdmin bool) error {
	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.UserRepo().SetAdmin(ctx, userID, isAdmin); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrUserNotFound)
			}

			return errors.Wrap(err, "failed to set admin flag")
		}

		return nil
	})
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (srv *adminService) DeleteUser(ctx context.Context, callerID, userID uuid.UUID) error {
	if callerID == userID {
		return errors.WithStack(domainerrors.ErrSelfDeletion)
	}

	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.UserRepo().Delete(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrUserNotFound)
			}

			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
}

func (srv *adminService) ListAllOrders(ctx context.Context) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := repos.OrderRepo().ListAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (srv *adminService) CreateReward(ctx context.Context, input *usecase.RewardInput) (*entity.Reward, error) {
	reward := &entity.Reward{
		ID:            uuid.New(),
		LevelRequired: input.LevelRequired,
		Name:          input.Name,
		Description:   input.Description,
		RewardType:    entity.RewardType(input.RewardType),
		Value:         input.Value,
		IsExclusive:   input.IsExclusive,
		CreatedAt:     time.Now().UTC(),
	}

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return repos.RewardRepo().Create(ctx, reward)
	})
	if err != nil {
		return nil, err
	}

	return reward, nil
}

func (srv *adminService) DeleteReward(ctx context.Context, id uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.RewardRepo().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrRewardNotFound) {
				return errors.WithStack(domainerrors.ErrRewardNotFound)
			}

			return errors.Wrap(err, "failed to delete reward")
		}

		return nil
	})
}

func (srv *adminService) CreateWheelPrize(ctx context.Context, input *usecase.WheelPrizeInput) (*entity.WheelPrize, error) {
	prize := &entity.WheelPrize{
		ID:          uuid.New(),
		Name:        input.Name,
		PrizeType:   entity.PrizeType(input.PrizeType),
		Value:       input.Value,
		Probability: input.Probability,
		Color:       input.Color,
		CreatedAt:   time.Now().UTC(),
	}

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return repos.WheelPrizeRepo().Create(ctx, prize)
	})
	if err != nil {
		return nil, err
	}

	return prize, nil
}

func (srv *adminService) DeleteWheelPrize(ctx context.Context, id uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.WheelPrizeRepo().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrWheelPrizeNotFound) {
				return errors.WithStack(domainerrors.ErrNotFound.WithDetails("wheel prize not found"))
			}

			return errors.Wrap(err, "failed to delete wheel prize")
		}

		return nil
	})
}
