// Package board implements the chess board as a fixed 8x8 grid of pieces.
package board

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is returned for coordinates or text outside the board.
var ErrInvalidSquare = errors.New("invalid square")

// Square represents a square on the chess board (0-63).
// Row-major from Black's back rank: A8=0, H8=7, A1=56, H1=63.
// Row 0 is rank 8 and row 7 is rank 1; column 0 is the a-file.
type Square uint8

// Square constants for all 64 squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// Row returns the row of the square (0-7, where 0 is rank 8).
func (sq Square) Row() int {
	return int(sq) >> 3
}

// Col returns the column of the square (0-7, where 0 is the a-file).
func (sq Square) Col() int {
	return int(sq) & 7
}

// String returns the file-rank notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col(), '8'-sq.Row())
}

// OnBoard reports whether row and col both lie in [0,7].
func OnBoard(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) (Square, error) {
	if !OnBoard(row, col) {
		return NoSquare, fmt.Errorf("%w: row %d, col %d", ErrInvalidSquare, row, col)
	}
	return Square(row*8 + col), nil
}

// At is NewSquare for coordinates already known to be on the board.
func At(row, col int) Square {
	return Square(row*8 + col)
}

// ParseSquare parses file-rank notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	col := int(s[0]) - 'a'
	row := '8' - int(s[1])

	if !OnBoard(row, col) {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return At(row, col), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Offset returns the square dr rows and dc columns away, and whether it is on the board.
func (sq Square) Offset(dr, dc int) (Square, bool) {
	r, c := sq.Row()+dr, sq.Col()+dc
	if !OnBoard(r, c) {
		return NoSquare, false
	}
	return At(r, c), true
}
