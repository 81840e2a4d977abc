package impl

import (
	"context"
	"log/slog"
	"time"

	"tsmarket/internal/domain/entity"
	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/domain/repository"
	"tsmarket/internal/domain/service"
	"tsmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	txManager repository.TransactionManager
	ledger    usecase.Ledger
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(
	txManager repository.TransactionManager,
	ledger usecase.Ledger,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager: txManager,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
	}
}

// Checkout validates the cart against the catalog, settles it against the
// stored balance and writes the order. Validation, the balance debit, the XP
// credit and the order insert share one transaction: if any line fails, no
// order exists and no ledger state changes.
func (srv *checkoutService) Checkout(ctx context.Context, userID uuid.UUID, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	if input == nil || len(input.Lines) == 0 {
		return nil, errors.WithStack(domainerrors.ErrEmptyCart)
	}

	srv.logger.Info("Processing checkout", "userID", userID, "lines", len(input.Lines))

	var output *usecase.CheckoutOutput

	err := withConflictRetry(ctx, srv.logger, func() error {
		return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
			productRepo := repos.ProductRepo()

			items := make([]entity.OrderItem, 0, len(input.Lines))
			total := 0.0
			totalXP := 0

			for _, line := range input.Lines {
				if line.Quantity < 1 {
					return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1"))
				}

				product, err := productRepo.FindByID(ctx, line.ProductID)
				if err != nil {
					if errors.Is(err, repository.ErrProductNotFound) {
						return errors.WithStack(domainerrors.ErrProductNotFound.WithDetails(line.ProductID.String()))
					}

					return errors.Wrap(err, "failed to resolve cart product")
				}

				if line.Size != "" && !product.HasSize(line.Size) {
					return errors.WithStack(domainerrors.ErrInvalidSize.WithDetails(line.Size))
				}

				// Name, price and XP reward are snapshotted here; later
				// catalog edits never touch existing orders.
				lineXP := product.XPReward * line.Quantity
				items = append(items, entity.OrderItem{
					ProductID:   product.ID,
					ProductName: product.Name,
					Price:       product.Price,
					Quantity:    line.Quantity,
					Size:        line.Size,
					XPAwarded:   lineXP,
				})

				total += product.Price * float64(line.Quantity)
				totalXP += lineXP
			}

			// The ledger re-reads the balance inside this transaction, so an
			// insufficient balance rejects the order before anything is written.
			result, err := srv.ledger.ApplyDeltaTx(ctx, repos, userID, usecase.LedgerDelta{
				Balance:         -total,
				XP:              totalXP,
				GrantLevelSpins: true,
			})
			if err != nil {
				return err
			}

			order := &entity.Order{
				ID:        uuid.New(),
				UserID:    userID,
				Items:     items,
				Total:     total,
				TotalXP:   totalXP,
				Status:    entity.OrderStatusCompleted,
				CreatedAt: time.Now().UTC(),
			}
			if err := repos.OrderRepo().Insert(ctx, order); err != nil {
				return errors.Wrap(err, "failed to insert order")
			}

			output = &usecase.CheckoutOutput{
				Order:     order,
				XPGained:  totalXP,
				NewLevel:  result.NewLevel,
				LeveledUp: result.LeveledUp,
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	srv.publishCheckoutEvents(ctx, userID, output)

	return output, nil
}

// ListOrders returns the user's order history, newest first.
func (srv *checkoutService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := repos.OrderRepo().ListByUser(ctx, userID)
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

// publishCheckoutEvents emits the post-commit order and level-up events.
func (srv *checkoutService) publishCheckoutEvents(ctx context.Context, userID uuid.UUID, output *usecase.CheckoutOutput) {
	if srv.publisher == nil || output == nil {
		return
	}

	event := &service.LedgerEvent{
		EventType: service.EventOrderCompleted,
		UserID:    userID.String(),
		OrderID:   output.Order.ID.String(),
		Amount:    output.Order.Total,
		XPGained:  output.XPGained,
		NewLevel:  output.NewLevel,
	}
	if err := srv.publisher.PublishLedgerEvent(ctx, event); err != nil {
		srv.logger.Warn("failed to publish order event", "orderID", output.Order.ID, "error", err)
	}

	if output.LeveledUp {
		levelEvent := &service.LedgerEvent{
			EventType: service.EventLevelUp,
			UserID:    userID.String(),
			NewLevel:  output.NewLevel,
		}
		if err := srv.publisher.PublishLedgerEvent(ctx, levelEvent); err != nil {
			srv.logger.Warn("failed to publish level-up event", "userID", userID, "error", err)
		}
	}
}
