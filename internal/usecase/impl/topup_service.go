package impl

import (
	"context"
	"fmt"
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

// topUpService implements the TopUpUsecase interface.
type topUpService struct {
	txManager repository.TransactionManager
	ledger    usecase.Ledger
	qrcode    service.QRCodeService
	logger    *slog.Logger
}

// NewTopUpService is the constructor for topUpService.
func NewTopUpService(
	txManager repository.TransactionManager,
	ledger usecase.Ledger,
	qrcode service.QRCodeService,
	logger *slog.Logger,
) usecase.TopUpUsecase {
	return &topUpService{
		txManager: txManager,
		ledger:    ledger,
		qrcode:    qrcode,
		logger:    logger,
	}
}

// RedeemCode consumes a voucher and credits its amount to the caller. The
// conditional code flip and the balance credit share one transaction, so two
// users racing the same code cannot both be credited.
func (srv *topUpService) RedeemCode(ctx context.Context, userID uuid.UUID, code string) (*usecase.RedeemOutput, error) {
	var output *usecase.RedeemOutput

	err := withConflictRetry(ctx, srv.logger, func() error {
		return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
			topUpRepo := repos.TopUpRepo()

			voucher, err := topUpRepo.FindUnusedCode(ctx, code)
			if err != nil {
				if errors.Is(err, repository.ErrTopUpCodeNotFound) {
					return errors.WithStack(domainerrors.ErrTopUpCodeInvalid)
				}

				return errors.Wrap(err, "failed to resolve top-up code")
			}

			if err := topUpRepo.MarkCodeUsed(ctx, voucher.ID, userID); err != nil {
				if errors.Is(err, repository.ErrTopUpCodeUsed) {
					return errors.WithStack(domainerrors.ErrTopUpCodeInvalid)
				}

				return errors.Wrap(err, "failed to consume top-up code")
			}

			result, err := srv.ledger.ApplyDeltaTx(ctx, repos, userID, usecase.LedgerDelta{
				Balance: voucher.Amount,
			})
			if err != nil {
				return err
			}

			output = &usecase.RedeemOutput{
				Amount:     voucher.Amount,
				NewBalance: result.User.Balance,
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Top-up code redeemed", "userID", userID, "amount", output.Amount)

	return output, nil
}

// CreateRequest files a pending card-payment top-up for admin review. The
// submitter's name and email are snapshotted onto the request.
func (srv *topUpService) CreateRequest(ctx context.Context, userID uuid.UUID, input *usecase.TopUpRequestInput) (*entity.TopUpRequest, error) {
	var request *entity.TopUpRequest

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		user, err := repos.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrUserNotFound)
			}

			return errors.Wrap(err, "failed to read user")
		}

		request = &entity.TopUpRequest{
			ID:         uuid.New(),
			UserID:     userID,
			UserName:   user.Name,
			UserEmail:  user.Email,
			Amount:     input.Amount,
			ReceiptURL: input.ReceiptURL,
			Status:     entity.TopUpStatusPending,
			CreatedAt:  time.Now().UTC(),
		}

		return repos.TopUpRepo().CreateRequest(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Top-up request filed", "userID", userID, "amount", input.Amount)

	return request, nil
}

// ListRequests returns the caller's top-up requests, newest first.
func (srv *topUpService) ListRequests(ctx context.Context, userID uuid.UUID) ([]*entity.TopUpRequest, error) {
	var requests []*entity.TopUpRequest

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := repos.TopUpRepo().ListRequestsByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list top-up requests")
		}
		requests = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return requests, nil
}

// PaymentSettings returns the card details for manual transfers.
func (srv *topUpService) PaymentSettings(ctx context.Context) (*entity.PaymentSettings, error) {
	var settings *entity.PaymentSettings

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := repos.TopUpRepo().PaymentSettings(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to read payment settings")
		}
		settings = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// PaymentSettingsQR renders the transfer card details as a PNG QR code.
func (srv *topUpService) PaymentSettingsQR(ctx context.Context) ([]byte, error) {
	settings, err := srv.PaymentSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings.CardNumber == "" {
		return nil, errors.WithStack(domainerrors.ErrNotFound.WithDetails("payment settings not configured"))
	}

	content := fmt.Sprintf("card:%s holder:%s", settings.CardNumber, settings.CardHolder)
	png, err := srv.qrcode.GeneratePNG(content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render payment QR code")
	}

	return png, nil
}

// ApproveRequest marks a pending request approved and credits its amount. The
// status flip and the balance credit commit together.
func (srv *topUpService) ApproveRequest(ctx context.Context, requestID uuid.UUID) (*entity.TopUpRequest, error) {
	var request *entity.TopUpRequest

	err := withConflictRetry(ctx, srv.logger, func() error {
		return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
			found, err := srv.pendingRequest(ctx, repos, requestID)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			found.Status = entity.TopUpStatusApproved
			found.ProcessedAt = &now
			if err := repos.TopUpRepo().UpdateRequest(ctx, found); err != nil {
				return errors.Wrap(err, "failed to update top-up request")
			}

			if _, err := srv.ledger.ApplyDeltaTx(ctx, repos, found.UserID, usecase.LedgerDelta{
				Balance: found.Amount,
			}); err != nil {
				return err
			}
			request = found

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Top-up request approved", "requestID", requestID, "amount", request.Amount)

	return request, nil
}

// RejectRequest marks a pending request rejected with an optional note. No
// ledger mutation happens.
func (srv *topUpService) RejectRequest(ctx context.Context, requestID uuid.UUID, note string) (*entity.TopUpRequest, error) {
	var request *entity.TopUpRequest

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := srv.pendingRequest(ctx, repos, requestID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		found.Status = entity.TopUpStatusRejected
		found.AdminNote = note
		found.ProcessedAt = &now
		if err := repos.TopUpRepo().UpdateRequest(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update top-up request")
		}
		request = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// ListAllRequests returns every top-up request for the admin review queue.
func (srv *topUpService) ListAllRequests(ctx context.Context) ([]*entity.TopUpRequest, error) {
	var requests []*entity.TopUpRequest

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := repos.TopUpRepo().ListRequests(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list top-up requests")
		}
		requests = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return requests, nil
}

// SavePaymentSettings upserts the card details shown to users.
func (srv *topUpService) SavePaymentSettings(ctx context.Context, input *usecase.PaymentSettingsInput) error {
	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		settings := &entity.PaymentSettings{
			CardNumber:     input.CardNumber,
			CardHolder:     input.CardHolder,
			AdditionalInfo: input.AdditionalInfo,
			UpdatedAt:      time.Now().UTC(),
		}

		return repos.TopUpRepo().SavePaymentSettings(ctx, settings)
	})
}

// CreateCode creates a new voucher. Duplicate literals are rejected.
func (srv *topUpService) CreateCode(ctx context.Context, input *usecase.TopUpCodeInput) (*entity.TopUpCode, error) {
	code := &entity.TopUpCode{
		ID:        uuid.New(),
		Code:      input.Code,
		Amount:    input.Amount,
		CreatedAt: time.Now().UTC(),
	}

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return repos.TopUpRepo().CreateCode(ctx, code)
	})
	if err != nil {
		return nil, err
	}

	return code, nil
}

// ListCodes returns all voucher codes, used and unused.
func (srv *topUpService) ListCodes(ctx context.Context) ([]*entity.TopUpCode, error) {
	var codes []*entity.TopUpCode

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := repos.TopUpRepo().ListCodes(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list top-up codes")
		}
		codes = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return codes, nil
}

// DeleteCode removes a voucher code.
func (srv *topUpService) DeleteCode(ctx context.Context, id uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.TopUpRepo().DeleteCode(ctx, id); err != nil {
			if errors.Is(err, repository.ErrTopUpCodeNotFound) {
				return errors.WithStack(domainerrors.ErrTopUpCodeInvalid)
			}

			return errors.Wrap(err, "failed to delete top-up code")
		}

		return nil
	})
}

// pendingRequest loads a request and verifies it has not been processed yet.
func (srv *topUpService) pendingRequest(ctx context.Context, repos repository.RepositoryFactory, requestID uuid.UUID) (*entity.TopUpRequest, error) {
	request, err := repos.TopUpRepo().FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrTopUpRequestNotFound) {
			return nil, errors.WithStack(domainerrors.ErrTopUpRequestNotFound)
		}

		return nil, errors.Wrap(err, "failed to resolve top-up request")
	}
	if request.Status != entity.TopUpStatusPending {
		return nil, errors.WithStack(domainerrors.ErrTopUpRequestProcessed)
	}

	return request, nil
}
