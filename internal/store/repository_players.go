package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetPlayerBalance(ctx context.Context, playerID string) (int64, error) {
	var bal int64
	err := s.Pool.QueryRow(ctx,
		`SELECT balance_cc FROM players WHERE id = $1`, playerID).Scan(&bal)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return bal, nil
}

// ApplyNetDelta moves a player's balance by delta (either sign) and writes a
// matching ledger entry in the same transaction. It returns the new balance.
func (s *Store) ApplyNetDelta(ctx context.Context, playerID string, delta int64, entryType, refType, refID string) (int64, error) {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var bal int64
	err = tx.QueryRow(ctx,
		`SELECT balance_cc FROM players WHERE id = $1 FOR UPDATE`, playerID).Scan(&bal)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	newBal := bal + delta
	if _, err := tx.Exec(ctx,
		`UPDATE players SET balance_cc = $1, updated_at = now() WHERE id = $2`,
		newBal, playerID); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO casino_ledger (id, player_id, type, amount_cc, ref_type, ref_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		NewID(), playerID, entryType, delta, refType, refID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBal, nil
}

// EnsurePlayer creates the player's account with an initial balance if it
// does not exist yet.
func (s *Store) EnsurePlayer(ctx context.Context, playerID string, initial int64) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO players (id, balance_cc) VALUES ($1, $2)
		 ON CONFLICT (id) DO NOTHING`, playerID, initial)
	return err
}

func (s *Store) ListLedgerEntries(ctx context.Context, playerID string, limit int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx,
		`SELECT id, player_id, type, amount_cc, ref_type, ref_id, created_at
		 FROM casino_ledger
		 WHERE ($1 = '' OR player_id = $1)
		 ORDER BY created_at DESC
		 LIMIT $2`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.Type, &e.AmountCC, &e.RefType, &e.RefID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
