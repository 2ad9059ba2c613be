package ws

import "covey-casino/internal/blackjack"

type SpectateMessage struct {
	Type   string `json:"type"`
	AreaID string `json:"area_id"`
}

type StateUpdate struct {
	Type   string             `json:"type"`
	AreaID string             `json:"area_id"`
	State  blackjack.Snapshot `json:"state"`
}

type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
