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

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading the
// claimed-reward set.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("ClaimedRewards").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("ClaimedRewards").
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// UpdateLedger conditionally writes the user's ledger state guarded by the
// version it was read with. Zero rows affected means another mutation won the
// race; the caller re-reads and retries.
func (repo *userRepository) UpdateLedger(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ? AND version = ?", user.ID, user.Version).
		Updates(map[string]any{
			"balance":     user.Balance,
			"xp":          user.XP,
			"level":       user.Level,
			"wheel_spins": user.WheelSpins,
			"version":     user.Version + 1,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update user ledger state")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.UserModel{}).
			Where("id = ?", user.ID).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check user existence")
		}
		if count == 0 {
			return repository.ErrUserNotFound
		}

		return repository.ErrVersionConflict
	}

	user.Version++

	return nil
}

// AppendClaimedReward inserts a claimed-reward row. The composite unique
// index turns a duplicate claim into a constraint violation.
func (repo *userRepository) AppendClaimedReward(ctx context.Context, userID uuid.UUID, level int) error {
	claim := model.ClaimedRewardModel{
		UserID: userID,
		Level:  level,
	}
	if err := repo.db.WithContext(ctx).Create(&claim).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateClaim
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to append claimed reward")
	}

	return nil
}

// SetAdmin flips the admin flag on the account.
func (repo *userRepository) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("is_admin", isAdmin)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set admin flag")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// List returns all user accounts, newest first.
func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	var models []model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("ClaimedRewards").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, toUserDomain(&models[i]))
	}

	return users, nil
}

// Delete removes a user account and its claimed-reward rows.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", id).
		Delete(&model.ClaimedRewardModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete claimed rewards")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.UserModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Count returns the number of user accounts.
func (repo *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return count, nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	claimed := make([]int, 0, len(data.ClaimedRewards))
	for _, claim := range data.ClaimedRewards {
		claimed = append(claimed, claim.Level)
	}

	return &entity.User{
		ID:             data.ID,
		Email:          data.Email,
		Name:           data.Name,
		Picture:        data.Picture,
		IsAdmin:        data.IsAdmin,
		Balance:        data.Balance,
		XP:             data.XP,
		Level:          data.Level,
		WheelSpins:     data.WheelSpins,
		ClaimedRewards: claimed,
		Version:        data.Version,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:         data.ID,
		Email:      data.Email,
		Name:       data.Name,
		Picture:    data.Picture,
		IsAdmin:    data.IsAdmin,
		Balance:    data.Balance,
		XP:         data.XP,
		Level:      data.Level,
		WheelSpins: data.WheelSpins,
		Version:    data.Version,
	}
}
