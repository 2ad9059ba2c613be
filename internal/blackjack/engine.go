package blackjack

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"covey-casino/internal/ledger"
)

const maxPlayers = 4

var (
	gameIDEntropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	gameIDEntropyMu sync.Mutex
)

func newGameID() string {
	gameIDEntropyMu.Lock()
	defer gameIDEntropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), gameIDEntropy).String()
}

type Action string

const (
	ActionStand  Action = "Stand"
	ActionHit    Action = "Hit"
	ActionDouble Action = "Double Down"
	ActionSplit  Action = "Split"
)

type Move struct {
	Player string
	Action Action
}

// TableGame is the capability a table engine exposes to the area layer.
// Blackjack is the only game today; a second game kind would implement this
// independently instead of sharing a base type. The area still holds the
// concrete engine because it also drives the blackjack dealer primitives.
type TableGame interface {
	Join(player string) error
	Leave(player string) error
	PlaceBet(ctx context.Context, player string, bet int64) error
	ApplyMove(ctx context.Context, move Move) (bool, error)
	SetPlayerPhoto(player, photo string) error
	Settle() []Score
	ResetRound()
	Snapshot() Snapshot
}

var _ TableGame = (*Engine)(nil)

// Engine is the authoritative blackjack state machine for one table. It holds
// no lock and schedules no timers: the surrounding dispatch layer serializes
// calls against it, and the end-of-round sequence (dealer automation,
// settlement, reset) is a set of step methods the owner drives one at a time.
//
// The ledger client is used for live balance reads when validating bets;
// settlement writes are the owner's job, fed by the Score slice Settle returns.
type Engine struct {
	ID          string
	Ledger      ledger.Client
	State       *TableState
	shuffler    *Shuffler
	maxBetUnits int64
}

func NewEngine(led ledger.Client, stake, maxBetUnits int64) *Engine {
	return newEngine(led, stake, maxBetUnits, NewShuffler())
}

// NewEngineWithDeck builds an engine over a predefined deck, dealt from the
// end of the slice. Used by tests that need known cards.
func NewEngineWithDeck(led ledger.Client, stake, maxBetUnits int64, deck []Card) *Engine {
	return newEngine(led, stake, maxBetUnits, NewShufflerWithDeck(deck))
}

func newEngine(led ledger.Client, stake, maxBetUnits int64, shuffler *Shuffler) *Engine {
	return &Engine{
		ID:     newGameID(),
		Ledger: led,
		State: &TableState{
			Status:     StatusWaitingForPlayers,
			DealerHand: DealerHand{},
			Stake:      stake,
		},
		shuffler:    shuffler,
		maxBetUnits: maxBetUnits,
	}
}

// Join seats a player at the head of the table. A player joining mid-round is
// seated but cannot act until the next round.
func (e *Engine) Join(player string) error {
	s := e.State
	if s.seatOf(player) != nil {
		return ErrPlayerAlreadyInGame
	}
	if len(s.Hands) == maxPlayers {
		return ErrGameFull
	}
	if s.Status == StatusWaitingForPlayers {
		s.Status = StatusWaitingToStart
	}
	seat := &Seat{
		Player: player,
		Hands:  []*Hand{{}},
		Active: s.Status != StatusInProgress,
	}
	s.Hands = append([]*Seat{seat}, s.Hands...)
	if s.Status == StatusInProgress && s.CurrentPlayer >= 0 {
		// Head insertion shifted every seat down one; keep the turn
		// pointer on the seat that was acting.
		s.CurrentPlayer++
	}
	return nil
}

// Leave removes the player immediately while the table is still betting, and
// otherwise queues the player for removal at the next round reset.
func (e *Engine) Leave(player string) error {
	s := e.State
	if s.seatOf(player) == nil {
		return ErrPlayerNotInGame
	}
	if s.Status == StatusWaitingToStart {
		kept := s.Hands[:0]
		for _, seat := range s.Hands {
			if seat.Player != player {
				kept = append(kept, seat)
			}
		}
		s.Hands = kept
		if len(s.Hands) == 0 {
			s.Status = StatusWaitingForPlayers
		}
		return nil
	}
	s.WantsToLeave = append(s.WantsToLeave, player)
	return nil
}

// PlaceBet records a player's wager. The bet must be a positive multiple of
// the table stake, capped at maxBetUnits times the stake, and covered by the
// player's live ledger balance. Once the last seated player has bet, the
// round starts: two face-up cards per seat, one face-down and one face-up for
// the dealer.
func (e *Engine) PlaceBet(ctx context.Context, player string, bet int64) error {
	s := e.State
	if s.Status != StatusWaitingToStart {
		return ErrGameNotBettable
	}
	if bet <= 0 || bet%s.Stake != 0 || bet < s.Stake || bet > e.maxBetUnits*s.Stake {
		return ErrInvalidBet
	}
	seat := s.seatOf(player)
	if seat == nil {
		return ErrPlayerNotInGame
	}
	bal, err := e.Ledger.Balance(ctx, player)
	if err != nil {
		return err
	}
	if bal < bet {
		return ErrInsufficientUnits
	}
	seat.Hands[0].Wager = bet

	for _, other := range s.Hands {
		if other.Hands[0].Wager == 0 {
			return nil
		}
	}

	s.Status = StatusInProgress
	s.CurrentPlayer = 0
	for _, sitting := range s.Hands {
		hand := sitting.Hands[0]
		hand.Cards = []Card{e.shuffler.Deal(true), e.shuffler.Deal(true)}
		hand.Text = RenderText(hand.Cards)
	}
	s.DealerHand.Cards = []Card{e.shuffler.Deal(false), e.shuffler.Deal(true)}
	return nil
}

// SetPlayerPhoto stores a display asset on the player's seat. It never
// affects gameplay.
func (e *Engine) SetPlayerPhoto(player, photo string) error {
	seat := e.State.seatOf(player)
	if seat == nil {
		return ErrPlayerNotInGame
	}
	seat.Photo = photo
	return nil
}

// ApplyMove plays one action for the seat whose turn it is. It returns true
// when the action resolved the last active seat, i.e. the round is over and
// the owner must run the end-of-round sequence.
func (e *Engine) ApplyMove(ctx context.Context, move Move) (bool, error) {
	s := e.State
	if s.Status != StatusInProgress {
		return false, ErrGameNotInProgress
	}
	seat := s.Hands[s.CurrentPlayer]
	if seat.Player != move.Player {
		return false, ErrMoveNotYourTurn
	}
	if !seat.Active {
		return false, ErrPlayerNotActive
	}

	switch move.Action {
	case ActionStand:
		e.advance(seat)

	case ActionHit:
		hand := seat.Hands[seat.CurrentHand]
		hand.Cards = append(hand.Cards, e.shuffler.Deal(true))
		hand.Text = RenderText(hand.Cards)
		if v := HandValue(hand.Cards); v >= 21 {
			e.advance(seat)
			if v > 21 {
				hand.Outcome = OutcomeBust
			}
		}

	case ActionDouble:
		hand := seat.Hands[seat.CurrentHand]
		if len(hand.Cards) != 2 {
			return false, ErrInvalidMove
		}
		bal, err := e.Ledger.Balance(ctx, move.Player)
		if err != nil {
			return false, err
		}
		if bal < hand.Wager {
			return false, ErrInsufficientUnits
		}
		hand.Cards = append(hand.Cards, e.shuffler.Deal(true))
		hand.Wager *= 2
		hand.Text = RenderText(hand.Cards)
		e.advance(seat)
		if HandValue(hand.Cards) > 21 {
			hand.Outcome = OutcomeBust
		}

	case ActionSplit:
		if len(seat.Hands) != 1 {
			return false, ErrInvalidMove
		}
		first := seat.Hands[0]
		if len(first.Cards) != 2 || first.Cards[0].Rank != first.Cards[1].Rank {
			return false, ErrInvalidMove
		}
		bal, err := e.Ledger.Balance(ctx, move.Player)
		if err != nil {
			return false, err
		}
		if bal < first.Wager {
			return false, ErrInsufficientUnits
		}
		moved := first.Cards[1]
		first.Cards = []Card{first.Cards[0], e.shuffler.Deal(true)}
		first.Text = RenderText(first.Cards)
		second := &Hand{
			Cards: []Card{moved, e.shuffler.Deal(true)},
			Wager: first.Wager,
		}
		second.Text = RenderText(second.Cards)
		seat.Hands = append(seat.Hands, second)
		// The player keeps acting on hand 0; no advance.

	default:
		return false, ErrInvalidMove
	}

	for _, sitting := range s.Hands {
		if sitting.Active {
			return false, nil
		}
	}
	s.Status = StatusOver
	s.CurrentPlayer = -1
	return true, nil
}

// advance moves a seat to its next hand, deactivating the seat once every
// hand is resolved and scanning forward for the next active seat. The scan
// does not wrap: CurrentPlayer running past the last seat means the dealer
// acts next.
func (e *Engine) advance(seat *Seat) {
	s := e.State
	seat.CurrentHand++
	if seat.CurrentHand >= len(seat.Hands) {
		seat.Active = false
		for s.CurrentPlayer < len(s.Hands) && !s.Hands[s.CurrentPlayer].Active {
			s.CurrentPlayer++
		}
	}
}

// BeginDealerTurn reveals the dealer's hole card.
func (e *Engine) BeginDealerTurn() {
	d := &e.State.DealerHand
	if len(d.Cards) > 0 {
		d.Cards[0].FaceUp = true
	}
	d.Text = RenderText(d.Cards)
}

// DealerDone reports whether the dealer must stop drawing (hand value 17+).
func (e *Engine) DealerDone() bool {
	return HandValue(e.State.DealerHand.Cards) >= 17
}

// DealDealerCard draws one face-up card for the dealer.
func (e *Engine) DealDealerCard() {
	d := &e.State.DealerHand
	d.Cards = append(d.Cards, e.shuffler.Deal(true))
	d.Text = RenderText(d.Cards)
}

// Settle resolves every hand against the dealer and records each player's net
// wager delta in State.Results. A busted dealer compares as zero. A push
// leaves the hand's outcome unset and moves no currency. The returned scores
// are the owner's to persist; Settle itself writes nothing to the ledger.
func (e *Engine) Settle() []Score {
	s := e.State
	dealerValue := HandValue(s.DealerHand.Cards)
	if dealerValue > 21 {
		s.DealerHand.Bust = true
		dealerValue = 0
	}
	s.Results = s.Results[:0]
	for _, seat := range s.Hands {
		var net int64
		for _, hand := range seat.Hands {
			if hand.Wager == 0 {
				continue // seat joined mid-round, never bet
			}
			playerValue := HandValue(hand.Cards)
			switch {
			case hand.Outcome == OutcomeBust || playerValue > 21:
				hand.Outcome = OutcomeBust
				net -= hand.Wager
			case playerValue < dealerValue:
				hand.Outcome = OutcomeLoss
				net -= hand.Wager
			case playerValue > dealerValue:
				hand.Outcome = OutcomeWin
				net += hand.Wager
			}
		}
		s.Results = append(s.Results, Score{Player: seat.Player, NetCurrency: net})
	}
	return append([]Score(nil), s.Results...)
}

// ResetRound reshuffles, drops the seats queued to leave, and returns the
// table to the betting phase (or to waiting if nobody is left).
func (e *Engine) ResetRound() {
	s := e.State
	e.shuffler.Refresh()
	s.DealerHand = DealerHand{}
	s.CurrentPlayer = 0

	leaving := make(map[string]bool, len(s.WantsToLeave))
	for _, p := range s.WantsToLeave {
		leaving[p] = true
	}
	kept := s.Hands[:0]
	for _, seat := range s.Hands {
		if !leaving[seat.Player] {
			kept = append(kept, seat)
		}
	}
	s.Hands = kept
	s.WantsToLeave = nil

	if len(s.Hands) == 0 {
		s.Status = StatusWaitingForPlayers
		return
	}
	s.Status = StatusWaitingToStart
	for _, seat := range s.Hands {
		seat.Hands = []*Hand{{}}
		seat.CurrentHand = 0
		seat.Active = true
	}
}

// Snapshot returns a deep copy of the observable table state.
func (e *Engine) Snapshot() Snapshot {
	return e.State.snapshot(e.ID)
}
