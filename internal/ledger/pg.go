package ledger

import (
	"context"

	"covey-casino/internal/store"
)

// PG is the Postgres-backed ledger client.
type PG struct {
	Store   *store.Store
	initial int64
}

func NewPG(s *store.Store, startingBalance int64) *PG {
	return &PG{Store: s, initial: startingBalance}
}

func (l *PG) EnsureAccount(ctx context.Context, playerID string) error {
	return l.Store.EnsurePlayer(ctx, playerID, l.initial)
}

func (l *PG) Balance(ctx context.Context, playerID string) (int64, error) {
	return l.Store.GetPlayerBalance(ctx, playerID)
}

func (l *PG) ApplyNetDelta(ctx context.Context, playerID string, delta int64, refType, refID string) error {
	_, err := l.Store.ApplyNetDelta(ctx, playerID, delta, "blackjack_settlement", refType, refID)
	return err
}

func (l *PG) RecordSession(ctx context.Context, sess Session) error {
	return l.Store.InsertCasinoSession(ctx, store.CasinoSession{
		ID:      sess.ID,
		AreaID:  sess.AreaID,
		Game:    sess.Game,
		StakeCC: sess.StakeCC,
		StartAt: sess.StartAt,
	})
}
