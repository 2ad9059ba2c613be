// Package ws pushes table snapshots to spectating clients. A client opens a
// socket, names the area it wants to watch, and receives every snapshot that
// area publishes until it disconnects.
package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"covey-casino/internal/area"
	"covey-casino/internal/blackjack"
)

type Server struct {
	areas    map[string]*area.Area
	upgrader websocket.Upgrader
}

func NewServer(areas map[string]*area.Area) *Server {
	return &Server{
		areas:    areas,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var sub SpectateMessage
	if err := conn.ReadJSON(&sub); err != nil || sub.Type != "spectate" {
		_ = conn.WriteJSON(ErrorMessage{Type: "error", Error: "expected spectate message"})
		return
	}
	a, ok := s.areas[sub.AreaID]
	if !ok {
		_ = conn.WriteJSON(ErrorMessage{Type: "error", Error: "unknown_area"})
		return
	}

	updates, cancel := a.Subscribe()
	defer cancel()

	// Current state first, so late spectators are not blank until the next
	// command lands.
	if err := s.writeState(conn, sub.AreaID, a.Snapshot()); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := s.writeState(conn, sub.AreaID, snap); err != nil {
				log.Debug().Err(err).Str("area_id", sub.AreaID).Msg("spectator write failed")
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) writeState(conn *websocket.Conn, areaID string, snap blackjack.Snapshot) error {
	payload, err := json.Marshal(StateUpdate{Type: "state_update", AreaID: areaID, State: snap})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
