package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"covey-casino/internal/area"
	"covey-casino/internal/config"
	"covey-casino/internal/ledger"
	"covey-casino/internal/logging"
	"covey-casino/internal/notify"
	"covey-casino/internal/store"
	httptransport "covey-casino/internal/transport/http"
	"covey-casino/internal/ws"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	var st *store.Store
	var led ledger.Client
	if cfg.Server.PostgresDSN != "" {
		st, err = store.New(cfg.Server.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("store init failed")
		}
		if err := st.Ping(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("db ping failed")
		}
		led = ledger.NewPG(st, cfg.Table.StartingBalance)
	} else {
		log.Warn().Msg("POSTGRES_DSN unset, running on the in-memory ledger")
		led = ledger.NewMemory(cfg.Table.StartingBalance)
	}

	defs, err := cfg.Server.ParseAreas(cfg.Table.Stake)
	if err != nil {
		log.Fatal().Err(err).Msg("parse CASINO_AREAS failed")
	}
	var announcer *notify.Announcer
	if cfg.Notify.Enabled() {
		announcer = notify.NewAnnouncer(cfg.Notify)
		announcer.Start(context.Background())
		log.Info().Msg("round announcements enabled")
	}

	areas := make(map[string]*area.Area, len(defs))
	for _, def := range defs {
		a := area.New(def.ID, def.Stake, cfg.Table, led)
		if announcer != nil {
			id := def.ID
			a.OnRoundSettled = func(rec area.RoundRecord) {
				announcer.Announce(notify.RoundAnnouncement{
					AreaID: id,
					GameID: rec.GameID,
					Scores: rec.Scores,
				})
			}
		}
		areas[def.ID] = a
		log.Info().Str("area_id", def.ID).Int64("stake", def.Stake).Msg("casino area open")
	}

	r := httptransport.NewRouter(areas, st, ws.NewServer(areas))
	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
