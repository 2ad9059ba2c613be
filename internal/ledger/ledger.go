// Package ledger is the currency and session-history collaborator the casino
// core talks to. The engine reads live balances through it when validating
// bets; the area adapter forwards settlement deltas and session records.
package ledger

import (
	"context"
	"time"
)

// Session is one record of a table opening for play.
type Session struct {
	ID      string
	AreaID  string
	Game    string
	StakeCC int64
	StartAt time.Time
}

type Client interface {
	// EnsureAccount creates the player's account with the house starting
	// balance if the ledger has never seen them.
	EnsureAccount(ctx context.Context, playerID string) error
	// Balance returns the player's live currency balance.
	Balance(ctx context.Context, playerID string) (int64, error)
	// ApplyNetDelta adjusts the player's balance by delta (positive or
	// negative) and records a ledger entry referencing the round.
	ApplyNetDelta(ctx context.Context, playerID string, delta int64, refType, refID string) error
	// RecordSession stores a played-session record.
	RecordSession(ctx context.Context, sess Session) error
}
