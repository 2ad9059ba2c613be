package blackjack

import (
	"context"
	"errors"
	"testing"

	"covey-casino/internal/ledger"
)

// dealOrder builds a predefined deck from cards listed in the order they
// will be dealt (the shuffler deals from the end of the slice).
func dealOrder(cards ...Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[len(cards)-1-i] = c
	}
	return out
}

func c(s Suit, r Rank) Card { return Card{Suit: s, Rank: r} }

func newTestEngine(t *testing.T, stake int64, deck []Card) (*Engine, *ledger.Memory) {
	t.Helper()
	led := ledger.NewMemory(1000)
	if deck == nil {
		return NewEngine(led, stake, 10), led
	}
	return NewEngineWithDeck(led, stake, 10, deck), led
}

func TestJoinSeatsNewestFirst(t *testing.T) {
	e, _ := newTestEngine(t, 10, nil)
	if e.State.Status != StatusWaitingForPlayers {
		t.Fatalf("expected WAITING_FOR_PLAYERS, got %s", e.State.Status)
	}
	for _, p := range []string{"p1", "p2", "p3"} {
		if err := e.Join(p); err != nil {
			t.Fatalf("join %s: %v", p, err)
		}
	}
	if e.State.Status != StatusWaitingToStart {
		t.Fatalf("expected WAITING_TO_START, got %s", e.State.Status)
	}
	got := []string{e.State.Hands[0].Player, e.State.Hands[1].Player, e.State.Hands[2].Player}
	want := []string{"p3", "p2", "p1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("seat order %v, want %v", got, want)
		}
	}
}

func TestJoinRejectsDuplicatesAndOverflow(t *testing.T) {
	e, _ := newTestEngine(t, 10, nil)
	for _, p := range []string{"p1", "p2", "p3", "p4"} {
		if err := e.Join(p); err != nil {
			t.Fatalf("join %s: %v", p, err)
		}
	}
	if err := e.Join("p1"); !errors.Is(err, ErrPlayerAlreadyInGame) {
		t.Fatalf("expected ErrPlayerAlreadyInGame, got %v", err)
	}
	if err := e.Join("p5"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("expected ErrGameFull, got %v", err)
	}
}

func TestPlaceBetGatesRoundStart(t *testing.T) {
	e, _ := newTestEngine(t, 10, nil)
	ctx := context.Background()
	if err := e.PlaceBet(ctx, "p1", 10); !errors.Is(err, ErrGameNotBettable) {
		t.Fatalf("expected ErrGameNotBettable before any join, got %v", err)
	}
	mustJoin(t, e, "p1", "p2")

	if err := e.PlaceBet(ctx, "p1", 10); err != nil {
		t.Fatalf("p1 bet: %v", err)
	}
	if e.State.Status != StatusWaitingToStart {
		t.Fatalf("round started with only one bet placed")
	}
	if err := e.PlaceBet(ctx, "p2", 20); err != nil {
		t.Fatalf("p2 bet: %v", err)
	}
	if e.State.Status != StatusInProgress {
		t.Fatalf("expected IN_PROGRESS after all bets, got %s", e.State.Status)
	}

	for _, seat := range e.State.Hands {
		hand := seat.Hands[0]
		if len(hand.Cards) != 2 {
			t.Fatalf("seat %s has %d cards, want 2", seat.Player, len(hand.Cards))
		}
		for _, card := range hand.Cards {
			if !card.FaceUp {
				t.Fatalf("seat %s dealt a face-down card", seat.Player)
			}
		}
		if hand.Text == "" {
			t.Fatalf("seat %s hand text not rendered", seat.Player)
		}
	}
	dealer := e.State.DealerHand.Cards
	if len(dealer) != 2 || dealer[0].FaceUp || !dealer[1].FaceUp {
		t.Fatalf("dealer cards wrong: %+v", dealer)
	}
}

func TestPlaceBetValidation(t *testing.T) {
	e, led := newTestEngine(t, 10, nil)
	ctx := context.Background()
	mustJoin(t, e, "p1")

	for _, bet := range []int64{0, 5, 15, -10, 110} {
		if err := e.PlaceBet(ctx, "p1", bet); !errors.Is(err, ErrInvalidBet) {
			t.Fatalf("bet %d: expected ErrInvalidBet, got %v", bet, err)
		}
		if e.State.Hands[0].Hands[0].Wager != 0 {
			t.Fatalf("bet %d mutated wager", bet)
		}
	}
	if err := e.PlaceBet(ctx, "ghost", 10); !errors.Is(err, ErrPlayerNotInGame) {
		t.Fatalf("expected ErrPlayerNotInGame, got %v", err)
	}

	led.SetBalance("p1", 30)
	if err := e.PlaceBet(ctx, "p1", 40); !errors.Is(err, ErrInsufficientUnits) {
		t.Fatalf("expected ErrInsufficientUnits, got %v", err)
	}
	if e.State.Status != StatusWaitingToStart {
		t.Fatalf("failed bet changed status to %s", e.State.Status)
	}
}

func TestJoinDuringRoundIsInactive(t *testing.T) {
	e, _ := newTestEngine(t, 10, nil)
	mustJoin(t, e, "p1")
	mustBet(t, e, 10, "p1")

	if err := e.Join("p2"); err != nil {
		t.Fatalf("mid-round join: %v", err)
	}
	seat := e.State.Hands[0]
	if seat.Player != "p2" || seat.Active {
		t.Fatalf("mid-round joiner should take seat 0 inactive, got %+v", seat)
	}
	// The newcomer shifted seats, but it is still p1's turn.
	if cur := e.State.Hands[e.State.CurrentPlayer]; cur.Player != "p1" {
		t.Fatalf("turn moved off p1 to %s", cur.Player)
	}
	over, err := e.ApplyMove(context.Background(), Move{Player: "p1", Action: ActionStand})
	if err != nil || !over {
		t.Fatalf("p1 stand: over=%v err=%v", over, err)
	}
}

func TestLeaveWhileBettingRemovesSeat(t *testing.T) {
	e, _ := newTestEngine(t, 10, nil)
	mustJoin(t, e, "p1", "p2")

	if err := e.Leave("ghost"); !errors.Is(err, ErrPlayerNotInGame) {
		t.Fatalf("expected ErrPlayerNotInGame, got %v", err)
	}
	if err := e.Leave("p1"); err != nil {
		t.Fatalf("leave p1: %v", err)
	}
	if len(e.State.Hands) != 1 || e.State.Hands[0].Player != "p2" {
		t.Fatalf("expected only p2 seated, got %+v", e.State.Hands)
	}
	if err := e.Leave("p2"); err != nil {
		t.Fatalf("leave p2: %v", err)
	}
	if e.State.Status != StatusWaitingForPlayers {
		t.Fatalf("expected WAITING_FOR_PLAYERS after last leave, got %s", e.State.Status)
	}
}

func TestLeaveDuringRoundQueues(t *testing.T) {
	e, _ := newTestEngine(t, 10, nil)
	mustJoin(t, e, "p1", "p2")
	mustBet(t, e, 10, "p2", "p1")

	if err := e.Leave("p1"); err != nil {
		t.Fatalf("leave during round: %v", err)
	}
	if len(e.State.Hands) != 2 {
		t.Fatalf("leave during round removed a seat")
	}
	if len(e.State.WantsToLeave) != 1 || e.State.WantsToLeave[0] != "p1" {
		t.Fatalf("wantsToLeave = %v", e.State.WantsToLeave)
	}
	// Duplicate leaves queue duplicate entries.
	if err := e.Leave("p1"); err != nil {
		t.Fatalf("second leave: %v", err)
	}
	if len(e.State.WantsToLeave) != 2 {
		t.Fatalf("expected duplicate queue entry, got %v", e.State.WantsToLeave)
	}
	// The queued player can still act this round.
	seat := e.State.Hands[e.State.CurrentPlayer]
	if !seat.Active {
		t.Fatalf("queued leaver lost their turn")
	}
}

func TestApplyMoveTurnOrder(t *testing.T) {
	e, _ := newTestEngine(t, 10, nil)
	ctx := context.Background()
	if _, err := e.ApplyMove(ctx, Move{Player: "p1", Action: ActionStand}); !errors.Is(err, ErrGameNotInProgress) {
		t.Fatalf("expected ErrGameNotInProgress, got %v", err)
	}

	mustJoin(t, e, "p1", "p2")
	mustBet(t, e, 10, "p1", "p2")

	// Seat 0 is p2 (joined last).
	if _, err := e.ApplyMove(ctx, Move{Player: "p1", Action: ActionStand}); !errors.Is(err, ErrMoveNotYourTurn) {
		t.Fatalf("expected ErrMoveNotYourTurn, got %v", err)
	}
	over, err := e.ApplyMove(ctx, Move{Player: "p2", Action: ActionStand})
	if err != nil || over {
		t.Fatalf("p2 stand: over=%v err=%v", over, err)
	}
	if e.State.CurrentPlayer != 1 {
		t.Fatalf("expected turn to advance to seat 1, got %d", e.State.CurrentPlayer)
	}
	over, err = e.ApplyMove(ctx, Move{Player: "p1", Action: ActionStand})
	if err != nil || !over {
		t.Fatalf("p1 stand should end round: over=%v err=%v", over, err)
	}
	if e.State.Status != StatusOver || e.State.CurrentPlayer != -1 {
		t.Fatalf("expected OVER with dealer turn sentinel, got %s/%d", e.State.Status, e.State.CurrentPlayer)
	}
}

func TestHitBustsImmediately(t *testing.T) {
	// p1 is dealt 10+6, dealer 9+9, then the hit card is a king: 26, bust.
	deck := dealOrder(
		c(Spades, Ten), c(Hearts, Six),
		c(Diamonds, Nine), c(Clubs, Nine),
		c(Spades, King),
	)
	e, _ := newTestEngine(t, 10, deck)
	mustJoin(t, e, "p1")
	mustBet(t, e, 10, "p1")

	over, err := e.ApplyMove(context.Background(), Move{Player: "p1", Action: ActionHit})
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	hand := e.State.Hands[0].Hands[0]
	if hand.Outcome != OutcomeBust {
		t.Fatalf("expected immediate Bust outcome, got %q", hand.Outcome)
	}
	if e.State.Hands[0].Active {
		t.Fatalf("busted seat still active")
	}
	if !over {
		t.Fatalf("bust of the only seat should end the round")
	}
}

func TestHitToTwentyOneResolvesHandWithoutBust(t *testing.T) {
	// 10+6 then a five: exactly 21, hand resolves with no outcome yet.
	deck := dealOrder(
		c(Spades, Ten), c(Hearts, Six),
		c(Diamonds, Nine), c(Clubs, Nine),
		c(Spades, Five),
	)
	e, _ := newTestEngine(t, 10, deck)
	mustJoin(t, e, "p1")
	mustBet(t, e, 10, "p1")

	over, err := e.ApplyMove(context.Background(), Move{Player: "p1", Action: ActionHit})
	if err != nil || !over {
		t.Fatalf("hit to 21: over=%v err=%v", over, err)
	}
	hand := e.State.Hands[0].Hands[0]
	if hand.Outcome != OutcomeNone {
		t.Fatalf("21 should not set an outcome before settlement, got %q", hand.Outcome)
	}
}

func TestDoubleDown(t *testing.T) {
	deck := dealOrder(
		c(Spades, Five), c(Hearts, Six),
		c(Diamonds, Nine), c(Clubs, Nine),
		c(Spades, King),
	)
	e, led := newTestEngine(t, 10, deck)
	ctx := context.Background()
	mustJoin(t, e, "p1")
	mustBet(t, e, 10, "p1")

	led.SetBalance("p1", 5)
	if _, err := e.ApplyMove(ctx, Move{Player: "p1", Action: ActionDouble}); !errors.Is(err, ErrInsufficientUnits) {
		t.Fatalf("expected ErrInsufficientUnits, got %v", err)
	}
	led.SetBalance("p1", 1000)

	over, err := e.ApplyMove(ctx, Move{Player: "p1", Action: ActionDouble})
	if err != nil || !over {
		t.Fatalf("double down: over=%v err=%v", over, err)
	}
	hand := e.State.Hands[0].Hands[0]
	if hand.Wager != 20 {
		t.Fatalf("expected doubled wager 20, got %d", hand.Wager)
	}
	if len(hand.Cards) != 3 {
		t.Fatalf("expected 3 cards after double, got %d", len(hand.Cards))
	}
	if hand.Outcome != OutcomeNone {
		t.Fatalf("5+6+K=21 should not bust, got %q", hand.Outcome)
	}
}

func TestDoubleDownRequiresTwoCards(t *testing.T) {
	deck := dealOrder(
		c(Spades, Two), c(Hearts, Three),
		c(Diamonds, Nine), c(Clubs, Nine),
		c(Spades, Two), c(Hearts, Four),
	)
	e, _ := newTestEngine(t, 10, deck)
	ctx := context.Background()
	mustJoin(t, e, "p1")
	mustBet(t, e, 10, "p1")

	if _, err := e.ApplyMove(ctx, Move{Player: "p1", Action: ActionHit}); err != nil {
		t.Fatalf("hit: %v", err)
	}
	if _, err := e.ApplyMove(ctx, Move{Player: "p1", Action: ActionDouble}); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove on 3-card double, got %v", err)
	}
}

func TestSplit(t *testing.T) {
	deck := dealOrder(
		c(Spades, Eight), c(Hearts, Eight),
		c(Diamonds, Nine), c(Clubs, Nine),
		c(Spades, Three), c(Hearts, Four),
	)
	e, led := newTestEngine(t, 10, deck)
	ctx := context.Background()
	mustJoin(t, e, "p1")
	mustBet(t, e, 10, "p1")

	led.SetBalance("p1", 5)
	if _, err := e.ApplyMove(ctx, Move{Player: "p1", Action: ActionSplit}); !errors.Is(err, ErrInsufficientUnits) {
		t.Fatalf("expected ErrInsufficientUnits, got %v", err)
	}
	led.SetBalance("p1", 1000)

	over, err := e.ApplyMove(ctx, Move{Player: "p1", Action: ActionSplit})
	if err != nil || over {
		t.Fatalf("split: over=%v err=%v", over, err)
	}
	seat := e.State.Hands[0]
	if len(seat.Hands) != 2 {
		t.Fatalf("expected 2 hands after split, got %d", len(seat.Hands))
	}
	if seat.CurrentHand != 0 {
		t.Fatalf("split should not advance the seat, current hand %d", seat.CurrentHand)
	}
	for i, h := range seat.Hands {
		if len(h.Cards) != 2 {
			t.Fatalf("hand %d has %d cards, want 2", i, len(h.Cards))
		}
		if h.Cards[0].Rank != Eight {
			t.Fatalf("hand %d lost its eight: %+v", i, h.Cards)
		}
		if h.Wager != 10 {
			t.Fatalf("hand %d wager %d, want 10", i, h.Wager)
		}
		if h.Text == "" {
			t.Fatalf("hand %d text not rendered", i)
		}
	}

	// Re-splitting is disallowed.
	if _, err := e.ApplyMove(ctx, Move{Player: "p1", Action: ActionSplit}); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove on re-split, got %v", err)
	}

	// Both hands must now be played in order.
	if over, err := e.ApplyMove(ctx, Move{Player: "p1", Action: ActionStand}); err != nil || over {
		t.Fatalf("stand hand 0: over=%v err=%v", over, err)
	}
	if seat.CurrentHand != 1 || !seat.Active {
		t.Fatalf("expected play to move to hand 1, got hand %d active=%v", seat.CurrentHand, seat.Active)
	}
	if over, err := e.ApplyMove(ctx, Move{Player: "p1", Action: ActionStand}); err != nil || !over {
		t.Fatalf("stand hand 1 should end round: over=%v err=%v", over, err)
	}
}

func TestSplitRequiresMatchingPair(t *testing.T) {
	deck := dealOrder(
		c(Spades, Eight), c(Hearts, Nine),
		c(Diamonds, Nine), c(Clubs, Nine),
	)
	e, _ := newTestEngine(t, 10, deck)
	mustJoin(t, e, "p1")
	mustBet(t, e, 10, "p1")

	if _, err := e.ApplyMove(context.Background(), Move{Player: "p1", Action: ActionSplit}); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove on unmatched split, got %v", err)
	}
}

func TestSetPlayerPhoto(t *testing.T) {
	e, _ := newTestEngine(t, 10, nil)
	mustJoin(t, e, "p1")
	if err := e.SetPlayerPhoto("ghost", "x"); !errors.Is(err, ErrPlayerNotInGame) {
		t.Fatalf("expected ErrPlayerNotInGame, got %v", err)
	}
	if err := e.SetPlayerPhoto("p1", "base64photo"); err != nil {
		t.Fatalf("set photo: %v", err)
	}
	if e.State.Hands[0].Photo != "base64photo" {
		t.Fatalf("photo not stored")
	}
}

func mustJoin(t *testing.T, e *Engine, players ...string) {
	t.Helper()
	for _, p := range players {
		if err := e.Join(p); err != nil {
			t.Fatalf("join %s: %v", p, err)
		}
	}
}

func mustBet(t *testing.T, e *Engine, bet int64, players ...string) {
	t.Helper()
	for _, p := range players {
		if err := e.PlaceBet(context.Background(), p, bet); err != nil {
			t.Fatalf("bet %s: %v", p, err)
		}
	}
}
