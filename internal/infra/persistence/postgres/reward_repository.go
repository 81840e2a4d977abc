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

// rewardRepository implements the domain.RewardRepository interface using GORM.
type rewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository is the constructor for rewardRepository.
func NewRewardRepository(db *gorm.DB) repository.RewardRepository {
	return &rewardRepository{db: db}
}

// FindByLevel retrieves the reward definition keyed by its level threshold.
func (repo *rewardRepository) FindByLevel(ctx context.Context, levelRequired int) (*entity.Reward, error) {
	var rewardM model.RewardModel
	err := repo.db.WithContext(ctx).
		Where("level_required = ?", levelRequired).
		First(&rewardM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRewardNotFound
		}

		return nil, errors.Wrap(err, "failed to find reward by level")
	}

	return toRewardDomain(&rewardM), nil
}

// List returns all rewards ordered by ascending level threshold.
func (repo *rewardRepository) List(ctx context.Context) ([]*entity.Reward, error) {
	var models []model.RewardModel
	if err := repo.db.WithContext(ctx).
		Order("level_required ASC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list rewards")
	}

	rewards := make([]*entity.Reward, 0, len(models))
	for i := range models {
		rewards = append(rewards, toRewardDomain(&models[i]))
	}

	return rewards, nil
}

// Create persists a new reward definition.
func (repo *rewardRepository) Create(ctx context.Context, reward *entity.Reward) error {
	rewardM := fromRewardDomain(reward)

	if err := repo.db.WithContext(ctx).Create(rewardM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("a reward for this level already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create reward")
	}

	reward.ID = rewardM.ID
	reward.CreatedAt = rewardM.CreatedAt

	return nil
}

// Delete removes a reward definition. Already-claimed rows stay, so history
// is preserved.
func (repo *rewardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RewardModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete reward")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRewardNotFound
	}

	return nil
}

// toRewardDomain converts a GORM RewardModel to a domain Reward entity.
func toRewardDomain(data *model.RewardModel) *entity.Reward {
	if data == nil {
		return nil
	}

	return &entity.Reward{
		ID:            data.ID,
		LevelRequired: data.LevelRequired,
		Name:          data.Name,
		Description:   data.Description,
		RewardType:    entity.RewardType(data.RewardType),
		Value:         data.Value,
		IsExclusive:   data.IsExclusive,
		CreatedAt:     data.CreatedAt,
	}
}

// fromRewardDomain converts a domain Reward entity to a GORM RewardModel.
func fromRewardDomain(data *entity.Reward) *model.RewardModel {
	if data == nil {
		return nil
	}

	return &model.RewardModel{
		ID:            data.ID,
		LevelRequired: data.LevelRequired,
		Name:          data.Name,
		Description:   data.Description,
		RewardType:    string(data.RewardType),
		Value:         data.Value,
		IsExclusive:   data.IsExclusive,
	}
}
