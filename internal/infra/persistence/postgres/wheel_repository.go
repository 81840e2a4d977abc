package postgres

import (
	"context"

	"tsmarket/internal/domain/entity"
	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/domain/repository"
	"tsmarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// wheelPrizeRepository implements the domain.WheelPrizeRepository interface using GORM.
type wheelPrizeRepository struct {
	db *gorm.DB
}

// NewWheelPrizeRepository is the constructor for wheelPrizeRepository.
func NewWheelPrizeRepository(db *gorm.DB) repository.WheelPrizeRepository {
	return &wheelPrizeRepository{db: db}
}

// List returns all prizes in creation order. The weighted draw depends on
// this order being stable, so ties on created_at break by id.
func (repo *wheelPrizeRepository) List(ctx context.Context) ([]*entity.WheelPrize, error) {
	var models []model.WheelPrizeModel
	if err := repo.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list wheel prizes")
	}

	prizes := make([]*entity.WheelPrize, 0, len(models))
	for i := range models {
		prizes = append(prizes, toWheelPrizeDomain(&models[i]))
	}

	return prizes, nil
}

// Create persists a new wheel prize.
func (repo *wheelPrizeRepository) Create(ctx context.Context, prize *entity.WheelPrize) error {
	prizeM := fromWheelPrizeDomain(prize)

	if err := repo.db.WithContext(ctx).Create(prizeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create wheel prize")
	}

	prize.ID = prizeM.ID
	prize.CreatedAt = prizeM.CreatedAt

	return nil
}

// Delete removes a wheel prize.
func (repo *wheelPrizeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.WheelPrizeModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete wheel prize")
	}
	if result.RowsAffected == 0 {
		return repository.ErrWheelPrizeNotFound
	}

	return nil
}

// toWheelPrizeDomain converts a GORM WheelPrizeModel to a domain WheelPrize entity.
func toWheelPrizeDomain(data *model.WheelPrizeModel) *entity.WheelPrize {
	if data == nil {
		return nil
	}

	return &entity.WheelPrize{
		ID:          data.ID,
		Name:        data.Name,
		PrizeType:   entity.PrizeType(data.PrizeType),
		Value:       data.Value,
		Probability: data.Probability,
		Color:       data.Color,
		CreatedAt:   data.CreatedAt,
	}
}

// fromWheelPrizeDomain converts a domain WheelPrize entity to a GORM WheelPrizeModel.
func fromWheelPrizeDomain(data *entity.WheelPrize) *model.WheelPrizeModel {
	if data == nil {
		return nil
	}

	return &model.WheelPrizeModel{
		ID:          data.ID,
		Name:        data.Name,
		PrizeType:   string(data.PrizeType),
		Value:       data.Value,
		Probability: data.Probability,
		Color:       data.Color,
	}
}
