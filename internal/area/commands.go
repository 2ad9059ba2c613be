package area

import "covey-casino/internal/blackjack"

type CommandType string

const (
	CommandJoinGame       CommandType = "JoinGame"
	CommandLeaveGame      CommandType = "LeaveGame"
	CommandPlaceBet       CommandType = "PlaceBet"
	CommandGameMove       CommandType = "GameMove"
	CommandSetPlayerPhoto CommandType = "SetPlayerPhoto"
)

// Command is one client request against an area. Every command except
// JoinGame must carry the game id of the live engine instance.
type Command struct {
	Type   CommandType
	GameID string
	Player string
	Bet    int64
	Action blackjack.Action
	Photo  string
}

// JoinResult tells a joining client which game instance to address.
type JoinResult struct {
	GameID string `json:"game_id"`
}

// RoundRecord is one settled round kept in the area's history.
type RoundRecord struct {
	GameID string            `json:"game_id"`
	Scores []blackjack.Score `json:"scores"`
}
