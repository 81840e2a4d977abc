// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. Balance, XP, level, wheel spins and the
// claimed-reward set form the user's ledger state; every mutation of these
// fields goes through the ledger engine so that the invariants hold:
// balance never drops below zero, level is always derived from xp, and a
// reward level is claimed at most once.
type User struct {
	ID             uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email          string    // The user's primary contact email, often used as a login identifier.
	Name           string    // The user's display name.
	Picture        string    // Optional avatar URL.
	IsAdmin        bool      // Grants access to the admin operations.
	Balance        float64   // Stored currency balance, never negative.
	XP             int       // Cumulative experience points, never negative.
	Level          int       // Derived from XP via progression.LevelForXP; never stored inconsistently.
	WheelSpins     int       // Wheel spin entitlements available, never negative.
	ClaimedRewards []int     // Level thresholds already redeemed, append-only.
	Version        int64     // Optimistic-lock counter guarding ledger mutations.
	CreatedAt      time.Time // Timestamp of when this account was created.
	UpdatedAt      time.Time // Timestamp of the last modification.
}

// NewUser returns an account in its initial progression state: level 1 with
// zero balance and XP, and one complimentary wheel spin.
func NewUser(email, name string) *User {
	return &User{
		Email:      email,
		Name:       name,
		Balance:    0,
		XP:         0,
		Level:      1,
		WheelSpins: 1,
	}
}

// HasClaimed reports whether the given reward level is already in the
// claimed set.
func (u *User) HasClaimed(level int) bool {
	for _, claimed := range u.ClaimedRewards {
		if claimed == level {
			return true
		}
	}

	return false
}
