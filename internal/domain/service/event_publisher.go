package service

import (
	"context"
)

// Ledger event types published after successful mutations.
const (
	EventOrderCompleted = "order.completed"
	EventLevelUp        = "user.leveled_up"
)

// LedgerEvent describes a committed ledger mutation for downstream consumers
// (analytics, notifications). Events are published post-commit and are
// best-effort: a publish failure never rolls back the mutation.
type LedgerEvent struct {
	RequestID string  `json:"request_id,omitempty"` // For distributed tracing
	EventType string  `json:"event_type"`
	UserID    string  `json:"user_id"`
	OrderID   string  `json:"order_id,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	XPGained  int     `json:"xp_gained,omitempty"`
	OldLevel  int     `json:"old_level,omitempty"`
	NewLevel  int     `json:"new_level,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishLedgerEvent publishes a ledger event for async processing
	PublishLedgerEvent(ctx context.Context, event *LedgerEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
