package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartPlacement is the FEN piece placement of the initial position.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// Board is an 8x8 grid holding at most one piece per square.
// The zero value is not an empty board; use Empty.
type Board [64]Piece

// Empty returns a board with no pieces.
func Empty() Board {
	var b Board
	for sq := range b {
		b[sq] = NoPiece
	}
	return b
}

// Start returns the standard initial position.
func Start() Board {
	b, _ := ParsePlacement(StartPlacement)
	return b
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	return b[sq]
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b[sq] == NoPiece
}

// Set places piece on sq, replacing whatever was there.
func (b *Board) Set(sq Square, piece Piece) {
	b[sq] = piece
}

// Clear empties sq.
func (b *Board) Clear(sq Square) {
	b[sq] = NoPiece
}

// Find returns the first square holding piece, scanning from A8.
func (b *Board) Find(piece Piece) Square {
	for sq, p := range b {
		if p == piece {
			return Square(sq)
		}
	}
	return NoSquare
}

// Count returns how many squares hold piece.
func (b *Board) Count(piece Piece) int {
	n := 0
	for _, p := range b {
		if p == piece {
			n++
		}
	}
	return n
}

// ParsePlacement parses the piece placement field of a FEN string.
func ParsePlacement(placement string) (Board, error) {
	b := Empty()
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return b, fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for row, rankStr := range ranks {
		col := 0

		for _, c := range rankStr {
			if col > 7 {
				return b, fmt.Errorf("too many squares in rank %d", 8-row)
			}

			if c >= '1' && c <= '8' {
				col += int(c - '0')
			} else {
				piece := PieceFromChar(byte(c))
				if piece == NoPiece {
					return b, fmt.Errorf("invalid piece character: %c", c)
				}
				b.Set(At(row, col), piece)
				col++
			}
		}

		if col != 8 {
			return b, fmt.Errorf("invalid number of squares in rank %d: got %d", 8-row, col)
		}
	}

	return b, nil
}

// Placement returns the FEN piece placement field for the board.
func (b *Board) Placement() string {
	var sb strings.Builder

	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			piece := b.PieceAt(At(row, col))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// String returns a visual representation of the board, rank 8 on top.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d  ", 8-row)
		for col := 0; col < 8; col++ {
			piece := b.PieceAt(At(row, col))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
