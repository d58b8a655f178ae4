package brackets

import "errors"

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrMatchCompleted = errors.New("match is already completed")
	ErrMatchNotReady  = errors.New("match is waiting for an opponent")
	ErrInvalidWinner  = errors.New("winner is not one of the match tasks")
)
