package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/chessrules/internal/board"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = board.StartPlacement + " w KQkq - 0 1"

// FromFEN creates a game from a FEN string. Placement and side to move are
// required; castling rights, en passant square and move number are
// optional. The half-move clock is accepted and ignored.
func FromFEN(fen string) (*State, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 fields, got %d", ErrInvalidPosition, len(parts))
	}

	b, err := board.ParsePlacement(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}

	s := &State{board: b, startMove: 1}

	switch parts[1] {
	case "w":
		s.side = board.White
	case "b":
		s.side = board.Black
	default:
		return nil, fmt.Errorf("%w: invalid side to move: %s", ErrInvalidPosition, parts[1])
	}
	s.startSide = s.side

	for _, c := range [2]board.Color{board.White, board.Black} {
		king := board.NewPiece(board.King, c)
		if n := b.Count(king); n != 1 {
			return nil, fmt.Errorf("%w: %s must have exactly one king, found %d", ErrInvalidPosition, c, n)
		}
		s.kings[c] = b.Find(king)
	}

	if len(parts) > 2 {
		cr, ok := parseCastlingRights(parts[2])
		if !ok {
			return nil, fmt.Errorf("%w: invalid castling rights: %s", ErrInvalidPosition, parts[2])
		}
		s.rights = cr.sanitize(&s.board)
	}

	if len(parts) > 3 && parts[3] != "-" {
		if err := s.seedEnPassant(parts[3]); err != nil {
			return nil, err
		}
	}

	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: invalid full-move number: %s", ErrInvalidPosition, parts[5])
		}
		s.startMove = n
	}

	if s.attackedBy(s.kings[s.side.Other()], s.side) {
		return nil, fmt.Errorf("%w: %s is in check with %s to move", ErrInvalidPosition, s.side.Other(), s.side)
	}

	return s, nil
}

// seedEnPassant records the double step that produced the target square.
func (s *State) seedEnPassant(field string) error {
	target, err := board.ParseSquare(field)
	if err != nil {
		return fmt.Errorf("%w: invalid en passant square: %s", ErrInvalidPosition, field)
	}

	// The pawn that just moved belongs to the side not to move.
	mover := s.side.Other()
	dir := pawnDirection(mover)
	from, ok1 := target.Offset(-dir, 0)
	to, ok2 := target.Offset(dir, 0)
	if !ok1 || !ok2 || from.Row() != pawnStartRow(mover) {
		return fmt.Errorf("%w: en passant square %s does not follow a %s double step", ErrInvalidPosition, field, mover)
	}

	pawn := board.NewPiece(board.Pawn, mover)
	if s.board.PieceAt(to) != pawn || !s.board.IsEmpty(target) || !s.board.IsEmpty(from) {
		return fmt.Errorf("%w: no %s pawn passed through %s", ErrInvalidPosition, mover, field)
	}

	s.seed = Move{from: from, to: to, piece: pawn, captured: board.NoPiece, capturedAt: to, kind: Simple}
	s.hasSeed = true
	return nil
}

// FEN returns the FEN representation of the position. The half-move clock
// is not tracked and is always 0.
func (s *State) FEN() string {
	var sb strings.Builder

	sb.WriteString(s.board.Placement())

	sb.WriteByte(' ')
	if s.side == board.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(s.rights.String())

	sb.WriteByte(' ')
	sb.WriteString(s.enPassantTarget().String())

	fullMove := s.startMove + (len(s.log)+int(s.startSide))/2
	sb.WriteString(" 0 ")
	sb.WriteString(strconv.Itoa(fullMove))

	return sb.String()
}

// enPassantTarget returns the square passed over by the last move if it was
// a pawn double step, or NoSquare.
func (s *State) enPassantTarget() board.Square {
	last, ok := s.lastMove()
	if !ok || last.piece.Type() != board.Pawn || abs(last.from.Row()-last.to.Row()) != 2 {
		return board.NoSquare
	}
	return board.At((last.from.Row()+last.to.Row())/2, last.from.Col())
}
