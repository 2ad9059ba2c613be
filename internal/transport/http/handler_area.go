package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"covey-casino/internal/area"
	"covey-casino/internal/blackjack"
	"covey-casino/internal/store"
)

// AreaHandlers exposes the per-area casino commands over HTTP. Every handler
// resolves the area from the URL, builds a command, and maps the core's
// sentinel errors onto status codes; no game rule lives here.
type AreaHandlers struct {
	areas map[string]*area.Area
}

func NewAreaHandlers(areas map[string]*area.Area) *AreaHandlers {
	return &AreaHandlers{areas: areas}
}

type areaInfo struct {
	ID    string `json:"id"`
	Stake int64  `json:"stake"`
}

func (h *AreaHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]areaInfo, 0, len(h.areas))
		for _, a := range h.areas {
			out = append(out, areaInfo{ID: a.ID, Stake: a.Stake})
		}
		writeJSON(w, map[string]any{"areas": out})
	}
}

func (h *AreaHandlers) State() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := h.area(w, r)
		if !ok {
			return
		}
		writeJSON(w, a.Snapshot())
	}
}

func (h *AreaHandlers) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := h.area(w, r)
		if !ok {
			return
		}
		writeJSON(w, map[string]any{"rounds": a.History()})
	}
}

type commandRequest struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Bet      int64  `json:"bet"`
	Action   string `json:"action"`
	Photo    string `json:"photo"`
}

func (h *AreaHandlers) Join() http.HandlerFunc {
	return h.command(area.CommandJoinGame)
}

func (h *AreaHandlers) Leave() http.HandlerFunc {
	return h.command(area.CommandLeaveGame)
}

func (h *AreaHandlers) Bet() http.HandlerFunc {
	return h.command(area.CommandPlaceBet)
}

func (h *AreaHandlers) Move() http.HandlerFunc {
	return h.command(area.CommandGameMove)
}

func (h *AreaHandlers) Photo() http.HandlerFunc {
	return h.command(area.CommandSetPlayerPhoto)
}

func (h *AreaHandlers) command(kind area.CommandType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := h.area(w, r)
		if !ok {
			return
		}
		var req commandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if req.PlayerID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		result, err := a.HandleCommand(r.Context(), area.Command{
			Type:   kind,
			GameID: req.GameID,
			Player: req.PlayerID,
			Bet:    req.Bet,
			Action: blackjack.Action(req.Action),
			Photo:  req.Photo,
		})
		if err != nil {
			WriteHTTPError(w, statusFor(err), err.Error())
			return
		}
		if result != nil {
			writeJSON(w, result)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *AreaHandlers) area(w http.ResponseWriter, r *http.Request) (*area.Area, bool) {
	a, ok := h.areas[chi.URLParam(r, "area_id")]
	if !ok {
		WriteHTTPError(w, http.StatusNotFound, "area_not_found")
		return nil, false
	}
	return a, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, blackjack.ErrInsufficientUnits):
		return http.StatusPaymentRequired
	case errors.Is(err, blackjack.ErrInvalidBet),
		errors.Is(err, blackjack.ErrInvalidMove),
		errors.Is(err, area.ErrInvalidCommand):
		return http.StatusBadRequest
	case errors.Is(err, blackjack.ErrPlayerNotInGame),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, blackjack.ErrPlayerAlreadyInGame),
		errors.Is(err, blackjack.ErrGameFull),
		errors.Is(err, blackjack.ErrGameNotBettable),
		errors.Is(err, blackjack.ErrGameNotInProgress),
		errors.Is(err, blackjack.ErrMoveNotYourTurn),
		errors.Is(err, blackjack.ErrPlayerNotActive),
		errors.Is(err, area.ErrGameIDMismatch):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
