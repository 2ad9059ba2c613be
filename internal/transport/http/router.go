package httptransport

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"covey-casino/internal/area"
	"covey-casino/internal/store"
	"covey-casino/internal/ws"
)

func NewRouter(areas map[string]*area.Area, st *store.Store, wsSrv *ws.Server) *chi.Mux {
	areaHandlers := NewAreaHandlers(areas)
	adminHandlers := NewAdminHandlers(st)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Get("/areas", areaHandlers.List())
		r.Get("/areas/{area_id}/state", areaHandlers.State())
		r.Get("/areas/{area_id}/history", areaHandlers.History())
		r.Post("/areas/{area_id}/join", areaHandlers.Join())
		r.Post("/areas/{area_id}/leave", areaHandlers.Leave())
		r.Post("/areas/{area_id}/bet", areaHandlers.Bet())
		r.Post("/areas/{area_id}/move", areaHandlers.Move())
		r.Post("/areas/{area_id}/photo", areaHandlers.Photo())
		r.Get("/ledger", adminHandlers.Ledger())
		r.Get("/sessions", adminHandlers.Sessions())
	})

	if wsSrv != nil {
		r.Get("/ws", wsSrv.HandleWS)
	}
	return r
}
