// Package notify pushes settled-round announcements to a chat webhook. The
// announcer runs one background worker over a bounded queue: a full queue
// drops announcements rather than stalling the table, and delivery failures
// are retried with backoff before the announcement is given up on.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"covey-casino/internal/blackjack"
	"covey-casino/internal/config"
)

// RoundAnnouncement is one settled round to publish.
type RoundAnnouncement struct {
	AreaID string
	GameID string
	Scores []blackjack.Score
}

type Announcer struct {
	cfg    config.NotifyConfig
	client *http.Client
	queue  chan RoundAnnouncement
	done   chan struct{}
	log    zerolog.Logger
}

func NewAnnouncer(cfg config.NotifyConfig) *Announcer {
	return &Announcer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		queue:  make(chan RoundAnnouncement, cfg.QueueSize),
		done:   make(chan struct{}),
		log:    log.With().Str("component", "notify").Logger(),
	}
}

// Start launches the delivery worker. It returns immediately; Stop drains
// nothing and simply ends the worker.
func (a *Announcer) Start(ctx context.Context) {
	go a.worker(ctx)
}

func (a *Announcer) Stop() {
	close(a.done)
}

// Announce queues one round for delivery. It never blocks the caller.
func (a *Announcer) Announce(ann RoundAnnouncement) {
	select {
	case a.queue <- ann:
	default:
		a.log.Warn().Str("area_id", ann.AreaID).Msg("announcement queue full, dropping")
	}
}

func (a *Announcer) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.done:
			return
		case ann := <-a.queue:
			a.deliver(ctx, ann)
		}
	}
}

func (a *Announcer) deliver(ctx context.Context, ann RoundAnnouncement) {
	body, err := json.Marshal(formatRound(ann))
	if err != nil {
		a.log.Error().Err(err).Msg("marshal announcement")
		return
	}
	backoff := a.cfg.RetryBackoff
	for attempt := 0; attempt <= a.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-a.done:
				return
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		if err = a.post(ctx, body); err == nil {
			return
		}
	}
	a.log.Error().Err(err).
		Str("area_id", ann.AreaID).
		Str("game_id", ann.GameID).
		Msg("announcement delivery failed")
}

func (a *Announcer) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}

// webhookMessage is the Discord-compatible payload shape; most chat webhook
// receivers accept a plain content string plus optional embeds.
type webhookMessage struct {
	Content string         `json:"content"`
	Embeds  []webhookEmbed `json:"embeds,omitempty"`
}

type webhookEmbed struct {
	Title  string         `json:"title"`
	Color  int            `json:"color"`
	Fields []webhookField `json:"fields,omitempty"`
}

type webhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

const (
	colorHouseWins   = 0xED4245
	colorPlayersWin  = 0x57F287
	colorRoundPushed = 0x5865F2
)

func formatRound(ann RoundAnnouncement) webhookMessage {
	var total int64
	fields := make([]webhookField, 0, len(ann.Scores))
	for _, sc := range ann.Scores {
		total += sc.NetCurrency
		fields = append(fields, webhookField{
			Name:   sc.Player,
			Value:  signed(sc.NetCurrency),
			Inline: true,
		})
	}
	color := colorRoundPushed
	switch {
	case total > 0:
		color = colorPlayersWin
	case total < 0:
		color = colorHouseWins
	}
	parts := make([]string, 0, len(ann.Scores))
	for _, sc := range ann.Scores {
		parts = append(parts, fmt.Sprintf("%s %s", sc.Player, signed(sc.NetCurrency)))
	}
	return webhookMessage{
		Content: fmt.Sprintf("Blackjack round settled at %s: %s", ann.AreaID, strings.Join(parts, ", ")),
		Embeds: []webhookEmbed{{
			Title:  fmt.Sprintf("Round %s · %s", shortID(ann.GameID), ann.AreaID),
			Color:  color,
			Fields: fields,
		}},
	}
}

func signed(v int64) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}
