package httptransport

import (
	"net/http"
	"strconv"

	"covey-casino/internal/store"
)

// AdminHandlers serves health and the Postgres-backed read views. The store
// is nil when the server runs on the in-memory ledger; the read views report
// unavailable in that mode.
type AdminHandlers struct {
	store *store.Store
}

func NewAdminHandlers(st *store.Store) *AdminHandlers {
	return &AdminHandlers{store: st}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.store != nil {
			if err := h.store.Ping(r.Context()); err != nil {
				WriteHTTPError(w, http.StatusServiceUnavailable, "db_unreachable")
				return
			}
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) Ledger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.store == nil {
			WriteHTTPError(w, http.StatusServiceUnavailable, "no_store")
			return
		}
		entries, err := h.store.ListLedgerEntries(r.Context(), r.URL.Query().Get("player_id"), parseLimit(r))
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, map[string]any{"entries": entries})
	}
}

func (h *AdminHandlers) Sessions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.store == nil {
			WriteHTTPError(w, http.StatusServiceUnavailable, "no_store")
			return
		}
		sessions, err := h.store.ListCasinoSessions(r.Context(), r.URL.Query().Get("game"), parseLimit(r))
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, map[string]any{"sessions": sessions})
	}
}

func parseLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
