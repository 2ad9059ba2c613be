package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"covey-casino/internal/store"
	"covey-casino/internal/testutil"
)

func TestEnsurePlayerAndBalance(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := st.GetPlayerBalance(ctx, "p1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := st.EnsurePlayer(ctx, "p1", 1000); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	bal, err := st.GetPlayerBalance(ctx, "p1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if bal != 1000 {
		t.Fatalf("balance = %d, want 1000", bal)
	}

	// A second ensure must not reset the balance.
	if _, err := st.ApplyNetDelta(ctx, "p1", -200, "blackjack_settlement", "game", "g1"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := st.EnsurePlayer(ctx, "p1", 1000); err != nil {
		t.Fatalf("re-ensure: %v", err)
	}
	if bal, _ = st.GetPlayerBalance(ctx, "p1"); bal != 800 {
		t.Fatalf("balance after re-ensure = %d, want 800", bal)
	}
}

func TestApplyNetDeltaWritesLedger(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := st.ApplyNetDelta(ctx, "ghost", 10, "blackjack_settlement", "game", "g1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}

	if err := st.EnsurePlayer(ctx, "p1", 500); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	newBal, err := st.ApplyNetDelta(ctx, "p1", 40, "blackjack_settlement", "game", "g1")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if newBal != 540 {
		t.Fatalf("new balance = %d, want 540", newBal)
	}
	if newBal, err = st.ApplyNetDelta(ctx, "p1", -100, "blackjack_settlement", "game", "g2"); err != nil || newBal != 440 {
		t.Fatalf("apply negative: bal=%d err=%v", newBal, err)
	}

	entries, err := st.ListLedgerEntries(ctx, "p1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.PlayerID != "p1" || e.Type != "blackjack_settlement" || e.RefType != "game" {
			t.Fatalf("entry fields: %+v", e)
		}
		if e.ID == "" || e.CreatedAt.IsZero() {
			t.Fatalf("entry metadata missing: %+v", e)
		}
	}

	// Player filter.
	entries, err = st.ListLedgerEntries(ctx, "someone-else", 10)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("filtered entries = %d, want 0", len(entries))
	}
}

func TestCasinoSessions(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	start := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	if err := st.InsertCasinoSession(ctx, store.CasinoSession{
		AreaID:  "blackjack-1",
		Game:    "Blackjack",
		StakeCC: 10,
		StartAt: start,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// Zero start time falls back to now() server side.
	if err := st.InsertCasinoSession(ctx, store.CasinoSession{
		AreaID:  "blackjack-2",
		Game:    "Blackjack",
		StakeCC: 25,
	}); err != nil {
		t.Fatalf("insert without start: %v", err)
	}

	sessions, err := st.ListCasinoSessions(ctx, "Blackjack", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
	for _, sess := range sessions {
		if sess.ID == "" || sess.StartAt.IsZero() {
			t.Fatalf("session metadata missing: %+v", sess)
		}
	}

	sessions, err = st.ListCasinoSessions(ctx, "Poker", 10)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("filtered sessions = %d, want 0", len(sessions))
	}
}

func TestPing(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	if err := st.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
