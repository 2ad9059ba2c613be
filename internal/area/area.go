// Package area binds one blackjack engine to a physical map zone. The area is
// the dispatch layer the engine relies on for serialization: every engine
// call happens under the area mutex, and the multi-second end-of-round
// sequence runs on a single background goroutine that republishes a snapshot
// after each observable step.
package area

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"covey-casino/internal/blackjack"
	"covey-casino/internal/config"
	"covey-casino/internal/ledger"
)

const gameKind = "Blackjack"

type Area struct {
	ID    string
	Stake int64

	cfg    config.TableConfig
	ledger ledger.Client
	log    zerolog.Logger

	// OnRoundSettled, when set, is called with each settled round's record
	// off the table's lock. Set it before the first command arrives.
	OnRoundSettled func(RoundRecord)

	mu      sync.Mutex
	game    *blackjack.Engine
	history []RoundRecord

	subsMu  sync.Mutex
	subs    map[int]chan blackjack.Snapshot
	nextSub int
}

func New(id string, stake int64, cfg config.TableConfig, led ledger.Client) *Area {
	return &Area{
		ID:     id,
		Stake:  stake,
		cfg:    cfg,
		ledger: led,
		log:    log.With().Str("area_id", id).Logger(),
		subs:   map[int]chan blackjack.Snapshot{},
	}
}

// HandleCommand validates and applies one client command. Subscribers are
// notified only when the command succeeded; a failed command changes nothing
// because the engine validates before it mutates.
func (a *Area) HandleCommand(ctx context.Context, cmd Command) (*JoinResult, error) {
	switch cmd.Type {
	case CommandJoinGame:
		return a.join(ctx, cmd.Player)
	case CommandLeaveGame:
		return nil, a.withGame(cmd.GameID, func(g *blackjack.Engine) (bool, error) {
			return false, g.Leave(cmd.Player)
		})
	case CommandPlaceBet:
		return nil, a.withGame(cmd.GameID, func(g *blackjack.Engine) (bool, error) {
			return false, g.PlaceBet(ctx, cmd.Player, cmd.Bet)
		})
	case CommandGameMove:
		return nil, a.withGame(cmd.GameID, func(g *blackjack.Engine) (bool, error) {
			return g.ApplyMove(ctx, blackjack.Move{Player: cmd.Player, Action: cmd.Action})
		})
	case CommandSetPlayerPhoto:
		return nil, a.withGame(cmd.GameID, func(g *blackjack.Engine) (bool, error) {
			return false, g.SetPlayerPhoto(cmd.Player, cmd.Photo)
		})
	default:
		return nil, ErrInvalidCommand
	}
}

func (a *Area) join(ctx context.Context, player string) (*JoinResult, error) {
	if err := a.ledger.EnsureAccount(ctx, player); err != nil {
		return nil, err
	}
	a.mu.Lock()
	if a.game == nil {
		a.game = blackjack.NewEngine(a.ledger, a.Stake, a.cfg.MaxBetUnits)
		sess := ledger.Session{
			AreaID:  a.ID,
			Game:    gameKind,
			StakeCC: a.Stake,
			StartAt: time.Now(),
		}
		go func() {
			if err := a.ledger.RecordSession(context.Background(), sess); err != nil {
				a.log.Error().Err(err).Msg("record casino session")
			}
		}()
	}
	g := a.game
	if err := g.Join(player); err != nil {
		a.mu.Unlock()
		return nil, err
	}
	snap := g.Snapshot()
	a.mu.Unlock()
	a.publish(snap)
	return &JoinResult{GameID: g.ID}, nil
}

// withGame runs one engine call under the area lock after the instance-id
// gate. When the call ends the round, the end-of-round sequence starts on its
// own goroutine.
func (a *Area) withGame(gameID string, fn func(*blackjack.Engine) (bool, error)) error {
	a.mu.Lock()
	g := a.game
	if g == nil {
		a.mu.Unlock()
		return blackjack.ErrGameNotInProgress
	}
	if g.ID != gameID {
		a.mu.Unlock()
		return ErrGameIDMismatch
	}
	roundOver, err := fn(g)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	snap := g.Snapshot()
	a.mu.Unlock()
	a.publish(snap)
	if roundOver {
		go a.finishRound(g)
	}
	return nil
}

// finishRound drives dealer automation, settlement, the display pause, and
// the reset. It runs to completion once started; there is no cancellation.
// Each step is independently visible to subscribers as it lands.
func (a *Area) finishRound(g *blackjack.Engine) {
	a.mu.Lock()
	g.BeginDealerTurn()
	snap := g.Snapshot()
	a.mu.Unlock()
	a.publish(snap)

	for {
		a.mu.Lock()
		done := g.DealerDone()
		a.mu.Unlock()
		if done {
			break
		}
		time.Sleep(a.cfg.DealerCardDelay)
		a.mu.Lock()
		g.DealDealerCard()
		snap = g.Snapshot()
		a.mu.Unlock()
		a.publish(snap)
	}

	a.mu.Lock()
	results := g.Settle()
	record := RoundRecord{GameID: g.ID, Scores: results}
	a.history = append(a.history, record)
	snap = g.Snapshot()
	a.mu.Unlock()
	a.publish(snap)
	if a.OnRoundSettled != nil {
		a.OnRoundSettled(record)
	}

	for _, score := range results {
		if score.NetCurrency == 0 {
			continue
		}
		if err := a.ledger.ApplyNetDelta(context.Background(), score.Player, score.NetCurrency, "game", g.ID); err != nil {
			a.log.Error().Err(err).
				Str("player", score.Player).
				Int64("delta", score.NetCurrency).
				Msg("apply settlement delta")
		}
	}

	time.Sleep(a.cfg.SettlePause)
	a.mu.Lock()
	g.ResetRound()
	snap = g.Snapshot()
	a.mu.Unlock()
	a.publish(snap)
}

// Snapshot returns the current observable table state. Before the first
// join, the area reports an empty waiting table.
func (a *Area) Snapshot() blackjack.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.game == nil {
		return blackjack.Snapshot{
			Status: blackjack.StatusWaitingForPlayers,
			Stake:  a.Stake,
		}
	}
	return a.game.Snapshot()
}

// History returns the settled rounds this area has seen.
func (a *Area) History() []RoundRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]RoundRecord, len(a.history))
	copy(out, a.history)
	return out
}

// Subscribe registers an observer for state snapshots. Slow observers miss
// updates rather than blocking the table.
func (a *Area) Subscribe() (<-chan blackjack.Snapshot, func()) {
	a.subsMu.Lock()
	defer a.subsMu.Unlock()
	id := a.nextSub
	a.nextSub++
	ch := make(chan blackjack.Snapshot, 16)
	a.subs[id] = ch
	cancel := func() {
		a.subsMu.Lock()
		defer a.subsMu.Unlock()
		if _, ok := a.subs[id]; ok {
			delete(a.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (a *Area) publish(snap blackjack.Snapshot) {
	a.subsMu.Lock()
	defer a.subsMu.Unlock()
	for _, ch := range a.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
