package postgres

import (
	"context"
	"time"

	"tsmarket/internal/domain/entity"
	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/domain/repository"
	"tsmarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// paymentSettingsRowID is the fixed primary key of the single settings row.
const paymentSettingsRowID = 1

// topUpRepository implements the domain.TopUpRepository interface using GORM.
type topUpRepository struct {
	db *gorm.DB
}

// NewTopUpRepository is the constructor for topUpRepository.
func NewTopUpRepository(db *gorm.DB) repository.TopUpRepository {
	return &topUpRepository{db: db}
}

// FindUnusedCode retrieves an unredeemed code by its literal value.
func (repo *topUpRepository) FindUnusedCode(ctx context.Context, code string) (*entity.TopUpCode, error) {
	var codeM model.TopUpCodeModel
	err := repo.db.WithContext(ctx).
		Where("code = ? AND is_used = ?", code, false).
		First(&codeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTopUpCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to find top-up code")
	}

	return toTopUpCodeDomain(&codeM), nil
}

// MarkCodeUsed consumes the code for the given user. The update is guarded
// by is_used = false so that concurrent redemptions cannot both succeed.
func (repo *topUpRepository) MarkCodeUsed(ctx context.Context, codeID, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TopUpCodeModel{}).
		Where("id = ? AND is_used = ?", codeID, false).
		Updates(map[string]any{
			"is_used": true,
			"used_by": userID,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark top-up code used")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTopUpCodeUsed
	}

	return nil
}

// CreateCode persists a new voucher code.
func (repo *topUpRepository) CreateCode(ctx context.Context, code *entity.TopUpCode) error {
	codeM := fromTopUpCodeDomain(code)

	if err := repo.db.WithContext(ctx).Create(codeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrTopUpCodeExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create top-up code")
	}

	code.ID = codeM.ID
	code.CreatedAt = codeM.CreatedAt

	return nil
}

// ListCodes returns all voucher codes, newest first.
func (repo *topUpRepository) ListCodes(ctx context.Context) ([]*entity.TopUpCode, error) {
	var models []model.TopUpCodeModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list top-up codes")
	}

	codes := make([]*entity.TopUpCode, 0, len(models))
	for i := range models {
		codes = append(codes, toTopUpCodeDomain(&models[i]))
	}

	return codes, nil
}

// DeleteCode removes a voucher code.
func (repo *topUpRepository) DeleteCode(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TopUpCodeModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete top-up code")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTopUpCodeNotFound
	}

	return nil
}

// CreateRequest stores a pending card-payment top-up request.
func (repo *topUpRepository) CreateRequest(ctx context.Context, request *entity.TopUpRequest) error {
	requestM := fromTopUpRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create top-up request")
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt

	return nil
}

// FindRequestByID retrieves a single top-up request.
func (repo *topUpRepository) FindRequestByID(ctx context.Context, id uuid.UUID) (*entity.TopUpRequest, error) {
	var requestM model.TopUpRequestModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&requestM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTopUpRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find top-up request")
	}

	return toTopUpRequestDomain(&requestM), nil
}

// ListRequestsByUser returns the user's top-up requests, newest first.
func (repo *topUpRepository) ListRequestsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TopUpRequest, error) {
	var models []model.TopUpRequestModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list top-up requests by user")
	}

	return toTopUpRequestDomainList(models), nil
}

// ListRequests returns every top-up request, newest first.
func (repo *topUpRepository) ListRequests(ctx context.Context) ([]*entity.TopUpRequest, error) {
	var models []model.TopUpRequestModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list top-up requests")
	}

	return toTopUpRequestDomainList(models), nil
}

// UpdateRequest persists a processed (approved/rejected) request.
func (repo *topUpRepository) UpdateRequest(ctx context.Context, request *entity.TopUpRequest) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TopUpRequestModel{}).
		Where("id = ?", request.ID).
		Updates(map[string]any{
			"status":       string(request.Status),
			"admin_note":   request.AdminNote,
			"processed_at": request.ProcessedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update top-up request")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTopUpRequestNotFound
	}

	return nil
}

// PaymentSettings returns the card details for manual transfers. A zero value
// is returned when none were configured yet.
func (repo *topUpRepository) PaymentSettings(ctx context.Context) (*entity.PaymentSettings, error) {
	var settingsM model.PaymentSettingsModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", paymentSettingsRowID).
		First(&settingsM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.PaymentSettings{}, nil
		}

		return nil, errors.Wrap(err, "failed to read payment settings")
	}

	return &entity.PaymentSettings{
		CardNumber:     settingsM.CardNumber,
		CardHolder:     settingsM.CardHolder,
		AdditionalInfo: settingsM.AdditionalInfo,
		UpdatedAt:      settingsM.UpdatedAt,
	}, nil
}

// SavePaymentSettings upserts the single settings row.
func (repo *topUpRepository) SavePaymentSettings(ctx context.Context, settings *entity.PaymentSettings) error {
	settingsM := model.PaymentSettingsModel{
		ID:             paymentSettingsRowID,
		CardNumber:     settings.CardNumber,
		CardHolder:     settings.CardHolder,
		AdditionalInfo: settings.AdditionalInfo,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := repo.db.WithContext(ctx).Save(&settingsM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save payment settings")
	}

	return nil
}

func toTopUpRequestDomainList(models []model.TopUpRequestModel) []*entity.TopUpRequest {
	requests := make([]*entity.TopUpRequest, 0, len(models))
	for i := range models {
		requests = append(requests, toTopUpRequestDomain(&models[i]))
	}

	return requests
}

// toTopUpCodeDomain converts a GORM TopUpCodeModel to a domain TopUpCode entity.
func toTopUpCodeDomain(data *model.TopUpCodeModel) *entity.TopUpCode {
	if data == nil {
		return nil
	}

	return &entity.TopUpCode{
		ID:        data.ID,
		Code:      data.Code,
		Amount:    data.Amount,
		IsUsed:    data.IsUsed,
		UsedBy:    data.UsedBy,
		CreatedAt: data.CreatedAt,
	}
}

// fromTopUpCodeDomain converts a domain TopUpCode entity to a GORM TopUpCodeModel.
func fromTopUpCodeDomain(data *entity.TopUpCode) *model.TopUpCodeModel {
	if data == nil {
		return nil
	}

	return &model.TopUpCodeModel{
		ID:     data.ID,
		Code:   data.Code,
		Amount: data.Amount,
		IsUsed: data.IsUsed,
		UsedBy: data.UsedBy,
	}
}

// toTopUpRequestDomain converts a GORM TopUpRequestModel to a domain TopUpRequest entity.
func toTopUpRequestDomain(data *model.TopUpRequestModel) *entity.TopUpRequest {
	if data == nil {
		return nil
	}

	return &entity.TopUpRequest{
		ID:          data.ID,
		UserID:      data.UserID,
		UserName:    data.UserName,
		UserEmail:   data.UserEmail,
		Amount:      data.Amount,
		ReceiptURL:  data.ReceiptURL,
		Status:      entity.TopUpRequestStatus(data.Status),
		AdminNote:   data.AdminNote,
		CreatedAt:   data.CreatedAt,
		ProcessedAt: data.ProcessedAt,
	}
}

// fromTopUpRequestDomain converts a domain TopUpRequest entity to a GORM TopUpRequestModel.
func fromTopUpRequestDomain(data *entity.TopUpRequest) *model.TopUpRequestModel {
	if data == nil {
		return nil
	}

	return &model.TopUpRequestModel{
		ID:          data.ID,
		UserID:      data.UserID,
		UserName:    data.UserName,
		UserEmail:   data.UserEmail,
		Amount:      data.Amount,
		ReceiptURL:  data.ReceiptURL,
		Status:      string(data.Status),
		AdminNote:   data.AdminNote,
		ProcessedAt: data.ProcessedAt,
	}
}
