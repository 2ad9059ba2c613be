package area

import "errors"

var (
	ErrGameIDMismatch = errors.New("game_id_mismatch")
	ErrInvalidCommand = errors.New("invalid_command")
)
