package blackjack

import "errors"

// Every violation below is a rejected operation, not a crash: the table state
// is left untouched and the error surfaces synchronously to the caller.
var (
	ErrPlayerAlreadyInGame = errors.New("player_already_in_game")
	ErrGameFull            = errors.New("game_full")
	ErrPlayerNotInGame     = errors.New("player_not_in_game")
	ErrGameNotBettable     = errors.New("game_not_bettable")
	ErrInvalidBet          = errors.New("invalid_bet")
	ErrInsufficientUnits   = errors.New("insufficient_units")
	ErrGameNotInProgress   = errors.New("game_not_in_progress")
	ErrMoveNotYourTurn     = errors.New("move_not_your_turn")
	ErrPlayerNotActive     = errors.New("player_not_active")
	ErrInvalidMove         = errors.New("invalid_move")
)
