package blackjack

import (
	"fmt"
	"math/rand"
	"time"
)

type Suit string

const (
	Hearts   Suit = "Hearts"
	Diamonds Suit = "Diamonds"
	Clubs    Suit = "Clubs"
	Spades   Suit = "Spades"
)

type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// Card is one playing card. FaceUp controls whether observers should see the
// card; it has no effect on its value.
type Card struct {
	Suit   Suit `json:"suit"`
	Rank   Rank `json:"rank"`
	FaceUp bool `json:"face_up"`
}

func (c Card) String() string {
	r := map[Rank]string{
		Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
		Eight: "8", Nine: "9", Ten: "10", Jack: "J", Queen: "Q", King: "K", Ace: "A",
	}[c.Rank]
	return fmt.Sprintf("%s of %s", r, c.Suit)
}

// Shuffler is the deck a single table owns. Dealing from an exhausted deck
// reassembles and reshuffles first, so Deal never fails mid-round.
type Shuffler struct {
	deck []Card
	rnd  *rand.Rand
}

func NewShuffler() *Shuffler {
	s := &Shuffler{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
	s.Refresh()
	return s
}

// NewShufflerWithDeck uses the supplied cards as the deck without shuffling.
// The end of the slice is dealt first.
func NewShufflerWithDeck(deck []Card) *Shuffler {
	return &Shuffler{
		deck: append([]Card(nil), deck...),
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Deal removes the top card and overrides its face-up flag.
func (s *Shuffler) Deal(faceUp bool) Card {
	if len(s.deck) == 0 {
		s.Refresh()
	}
	if len(s.deck) == 0 {
		// Unreachable: Refresh always rebuilds 52 cards.
		panic("blackjack: shuffler has no cards after refresh")
	}
	top := s.deck[len(s.deck)-1]
	s.deck = s.deck[:len(s.deck)-1]
	top.FaceUp = faceUp
	return top
}

// Refresh rebuilds the full 52-card deck and applies a Fisher-Yates shuffle.
func (s *Shuffler) Refresh() {
	deck := make([]Card, 0, 52)
	for _, suit := range []Suit{Hearts, Diamonds, Clubs, Spades} {
		for r := Two; r <= Ace; r++ {
			deck = append(deck, Card{Suit: suit, Rank: r, FaceUp: true})
		}
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	s.deck = deck
}

func (s *Shuffler) Remaining() int {
	return len(s.deck)
}
