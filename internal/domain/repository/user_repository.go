// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"tsmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrVersionConflict is returned by UpdateLedger when the user row changed
// since it was read. Callers re-read and retry a bounded number of times.
var ErrVersionConflict = errors.New("user version conflict")

// ErrDuplicateClaim is returned by AppendClaimedReward when the level is
// already in the user's claimed set.
var ErrDuplicateClaim = errors.New("reward level already claimed")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, including the
	// claimed-reward set.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// UpdateLedger conditionally writes the user's ledger state (balance, xp,
	// level, wheel spins) guarded by the version the entity was read with.
	// On success the entity's version is advanced; if the stored row moved on,
	// ErrVersionConflict is returned and nothing is written.
	UpdateLedger(ctx context.Context, user *entity.User) error

	// AppendClaimedReward records a redeemed reward level for the user.
	// The claimed set is append-only; inserting a duplicate level fails.
	AppendClaimedReward(ctx context.Context, userID uuid.UUID, level int) error

	// SetAdmin flips the admin flag on the account.
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error

	// List returns all user accounts.
	List(ctx context.Context) ([]*entity.User, error)

	// Delete removes a user account.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of user accounts.
	Count(ctx context.Context) (int64, error)
}
