package blackjack

import "testing"

func TestRefreshBuildsFullUniqueDeck(t *testing.T) {
	s := NewShuffler()
	if s.Remaining() != 52 {
		t.Fatalf("expected 52 cards, got %d", s.Remaining())
	}
	seen := map[Card]bool{}
	for i := 0; i < 52; i++ {
		c := s.Deal(true)
		c.FaceUp = true
		if seen[c] {
			t.Fatalf("duplicate card %v", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Fatalf("expected 52 unique cards, got %d", len(seen))
	}
}

func TestDealRefreshesExhaustedDeck(t *testing.T) {
	s := NewShuffler()
	for i := 0; i < 52; i++ {
		s.Deal(true)
	}
	if s.Remaining() != 0 {
		t.Fatalf("expected empty deck, got %d", s.Remaining())
	}
	s.Deal(true) // forces a reshuffle
	if s.Remaining() != 51 {
		t.Fatalf("expected 51 remaining after auto-refresh deal, got %d", s.Remaining())
	}
}

func TestPredefinedDeckDealsFromEnd(t *testing.T) {
	deck := []Card{
		{Suit: Hearts, Rank: Two},
		{Suit: Clubs, Rank: King},
		{Suit: Spades, Rank: Ace},
	}
	s := NewShufflerWithDeck(deck)
	first := s.Deal(true)
	if first.Rank != Ace || first.Suit != Spades {
		t.Fatalf("expected ace of spades first, got %v", first)
	}
	if !first.FaceUp {
		t.Fatalf("expected dealt card face up")
	}
	second := s.Deal(false)
	if second.Rank != King || second.FaceUp {
		t.Fatalf("expected face-down king second, got %+v", second)
	}
	if s.Remaining() != 1 {
		t.Fatalf("expected 1 remaining, got %d", s.Remaining())
	}
}
