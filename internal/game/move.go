package game

import (
	"fmt"

	"github.com/hailam/chessrules/internal/board"
)

// MoveKind tags the variant of a Move.
type MoveKind uint8

const (
	// Simple moves relocate one piece and capture on the destination, if anything.
	Simple MoveKind = iota
	// EnPassant captures a pawn standing beside the destination square.
	EnPassant
	// Castle moves the king two squares and relocates the rook with it.
	Castle
)

// String returns the kind name.
func (k MoveKind) String() string {
	switch k {
	case Simple:
		return "Simple"
	case EnPassant:
		return "EnPassant"
	case Castle:
		return "Castle"
	default:
		return "Unknown"
	}
}

// Relocation is the secondary piece movement bound to a castling king move.
type Relocation struct {
	From  board.Square
	To    board.Square
	Piece board.Piece
}

// Move is an immutable description of one atomic move.
// Piece and Captured are snapshotted from the board at construction.
type Move struct {
	from       board.Square
	to         board.Square
	piece      board.Piece
	captured   board.Piece
	capturedAt board.Square
	kind       MoveKind
	rook       Relocation
}

// NewMove creates a simple move, reading the moved and captured pieces from b.
func NewMove(b *board.Board, from, to board.Square) Move {
	return Move{
		from:       from,
		to:         to,
		piece:      b.PieceAt(from),
		captured:   b.PieceAt(to),
		capturedAt: to,
		kind:       Simple,
	}
}

// NewCandidate builds a simple move from raw coordinates, as a caller would
// from a click or typed text. The result is only good for matching against
// the legal set with Equal; State.MakeMove does that lookup itself.
func NewCandidate(b *board.Board, fromRow, fromCol, toRow, toCol int) (Move, error) {
	from, err := board.NewSquare(fromRow, fromCol)
	if err != nil {
		return Move{}, fmt.Errorf("move start: %w", err)
	}
	to, err := board.NewSquare(toRow, toCol)
	if err != nil {
		return Move{}, fmt.Errorf("move end: %w", err)
	}
	return NewMove(b, from, to), nil
}

func newEnPassant(b *board.Board, from, to, capturedAt board.Square) Move {
	return Move{
		from:       from,
		to:         to,
		piece:      b.PieceAt(from),
		captured:   b.PieceAt(capturedAt),
		capturedAt: capturedAt,
		kind:       EnPassant,
	}
}

func newCastle(b *board.Board, c castle) Move {
	return Move{
		from:       c.kingFrom,
		to:         c.kingTo,
		piece:      b.PieceAt(c.kingFrom),
		captured:   board.NoPiece,
		capturedAt: c.kingTo,
		kind:       Castle,
		rook: Relocation{
			From:  c.rookFrom,
			To:    c.rookTo,
			Piece: b.PieceAt(c.rookFrom),
		},
	}
}

// From returns the start square.
func (m Move) From() board.Square { return m.from }

// To returns the end square.
func (m Move) To() board.Square { return m.to }

// Piece returns the moved piece.
func (m Move) Piece() board.Piece { return m.piece }

// Captured returns the captured piece, or NoPiece.
func (m Move) Captured() board.Piece { return m.captured }

// CapturedAt returns the square the captured piece is removed from.
// It equals To except for en passant.
func (m Move) CapturedAt() board.Square { return m.capturedAt }

// Kind returns the move variant.
func (m Move) Kind() MoveKind { return m.kind }

// Rook returns the rook relocation of a castling move.
func (m Move) Rook() (Relocation, bool) {
	return m.rook, m.kind == Castle
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.captured != board.NoPiece
}

// Equal reports whether m and other share start and end squares.
// Capture and castling metadata do not take part.
func (m Move) Equal(other Move) bool {
	return m.from == other.from && m.to == other.to
}

// Label returns the short display form: piece letter plus destination
// ("Pe4", "Nf3"), or "O-O" / "O-O-O" for castling. It is not SAN.
func (m Move) Label() string {
	if m.kind == Castle {
		if m.to.Col() > m.from.Col() {
			return "O-O"
		}
		return "O-O-O"
	}
	return m.piece.Type().Letter() + m.to.String()
}

// String returns the label.
func (m Move) String() string {
	return m.Label()
}

// UCI returns the coordinate form of the move (e.g., "e2e4").
func (m Move) UCI() string {
	return m.from.String() + m.to.String()
}

// ParseSquares parses coordinate text such as "e2e4" into start and end squares.
func ParseSquares(s string) (from, to board.Square, err error) {
	if len(s) != 4 {
		return board.NoSquare, board.NoSquare, fmt.Errorf("%w: %q", board.ErrInvalidSquare, s)
	}
	if from, err = board.ParseSquare(s[:2]); err != nil {
		return board.NoSquare, board.NoSquare, err
	}
	if to, err = board.ParseSquare(s[2:]); err != nil {
		return board.NoSquare, board.NoSquare, err
	}
	return from, to, nil
}
