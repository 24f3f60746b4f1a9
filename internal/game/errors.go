package game

import "errors"

// Sentinel errors. Use errors.Is to test for them; returned errors carry
// the offending move or position as context.
var (
	// ErrIllegalMove indicates a move that is not in the current legal set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidPosition indicates a FEN string that does not describe a
	// playable position.
	ErrInvalidPosition = errors.New("invalid position")
)
