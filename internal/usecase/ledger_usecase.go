// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"tsmarket/internal/domain/entity"
	"tsmarket/internal/domain/repository"

	"github.com/google/uuid"
)

// LedgerDelta is one atomic mutation of a user's ledger state. All numeric
// progression changes in the system flow through a delta so the invariants
// (non-negative balance and spins, level derived from XP, level-up spin
// bonus) are enforced in exactly one place.
type LedgerDelta struct {
	Balance float64 // Signed currency delta; a debit below zero is rejected.
	XP      int     // Signed XP delta.
	Spins   int     // Signed wheel-spin delta, on top of any level-up bonus.

	// ClaimLevel, when set, appends the level to the user's claimed-reward
	// set in the same transaction as the numeric effect.
	ClaimLevel *int

	// GrantLevelSpins grants one bonus spin per level gained by this delta.
	// Organic XP gains (checkout, claims, wheel) set it; admin overrides do not.
	GrantLevelSpins bool
}

// LedgerResult reports the committed state after a mutation.
type LedgerResult struct {
	User      *entity.User // Post-mutation snapshot.
	OldLevel  int
	NewLevel  int
	LeveledUp bool
}

// AdminOverride is a privileged absolute write of balance and/or XP. Level is
// recomputed from the new XP but no level-up spins are granted.
type AdminOverride struct {
	Balance *float64
	XP      *int
}

// Ledger is the single mutation path for user progression state. It reads the
// current record, validates the delta, recomputes the level and writes all
// fields atomically, retrying internally on concurrent-update conflicts.
type Ledger interface {
	// ApplyDelta runs the mutation in its own transaction.
	ApplyDelta(ctx context.Context, userID uuid.UUID, delta LedgerDelta) (*LedgerResult, error)

	// ApplyDeltaTx runs the mutation against an existing transaction's
	// repositories, letting callers commit additional writes (an order
	// insert, a code redemption) atomically with the ledger change. The
	// caller owns conflict retries for the enclosing transaction.
	ApplyDeltaTx(ctx context.Context, repos repository.RepositoryFactory, userID uuid.UUID, delta LedgerDelta) (*LedgerResult, error)

	// ApplyOverride performs the admin absolute write.
	ApplyOverride(ctx context.Context, userID uuid.UUID, override AdminOverride) (*LedgerResult, error)
}
