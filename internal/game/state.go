// Package game implements the chess rules engine: legal move generation,
// make/undo, and check, checkmate and stalemate detection.
//
// A State is owned by a single caller and is not safe for concurrent use.
// Legality testing mutates the state and reverts it before returning; use
// Clone to explore lines on an independent copy.
package game

import (
	"fmt"
	"slices"

	"github.com/hailam/chessrules/internal/board"
)

// Status is the terminal state of a game.
type Status uint8

const (
	InProgress Status = iota
	Checkmate
	Stalemate
)

// String returns the status name.
func (st Status) String() string {
	switch st {
	case InProgress:
		return "InProgress"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	default:
		return "Unknown"
	}
}

// logEntry stores a played move with the rights held before it.
type logEntry struct {
	move   Move
	rights CastlingRights
}

// State is the mutable game aggregate.
type State struct {
	board  board.Board
	side   board.Color
	kings  [2]board.Square // always the squares holding each king
	log    []logEntry
	rights CastlingRights

	// seed is a double step implied by a FEN en passant field. It stands in
	// for the last move while the log is empty.
	seed    Move
	hasSeed bool

	startSide board.Color
	startMove int

	checkmate bool
	stalemate bool
}

// New creates a game at the standard initial position, White to move.
func New() *State {
	return &State{
		board:     board.Start(),
		side:      board.White,
		kings:     [2]board.Square{board.E1, board.E8},
		rights:    AllCastling,
		startSide: board.White,
		startMove: 1,
	}
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	c := *s
	c.log = slices.Clone(s.log)
	return &c
}

// Board returns a copy of the current board.
func (s *State) Board() board.Board {
	return s.board
}

// SideToMove returns the color to move.
func (s *State) SideToMove() board.Color {
	return s.side
}

// KingSquare returns the square of c's king.
func (s *State) KingSquare(c board.Color) board.Square {
	return s.kings[c]
}

// CastlingRights returns the rights still held.
func (s *State) CastlingRights() CastlingRights {
	return s.rights
}

// History returns the played moves, oldest first.
func (s *State) History() []Move {
	moves := make([]Move, len(s.log))
	for i, e := range s.log {
		moves[i] = e.move
	}
	return moves
}

// Plies returns the number of moves in the log.
func (s *State) Plies() int {
	return len(s.log)
}

// LastMove returns the most recently played move.
func (s *State) LastMove() (Move, bool) {
	if len(s.log) == 0 {
		return Move{}, false
	}
	return s.log[len(s.log)-1].move, true
}

// lastMove is LastMove, falling back to the FEN-implied double step.
func (s *State) lastMove() (Move, bool) {
	if m, ok := s.LastMove(); ok {
		return m, true
	}
	return s.seed, s.hasSeed
}

// LegalMoves returns the fully legal moves of the side to move. When there
// are none it sets the checkmate or stalemate flag.
func (s *State) LegalMoves() []Move {
	moves := s.legalMoves()
	if len(moves) == 0 {
		if s.InCheck() {
			s.checkmate = true
		} else {
			s.stalemate = true
		}
	}
	return moves
}

// legalMoves filters pseudo-legal moves by applying each one, probing the
// mover's king square, and reverting.
func (s *State) legalMoves() []Move {
	candidates := s.generate(s.side, genMoves)
	legal := candidates[:0]
	mover := s.side

	for _, m := range candidates {
		s.apply(m)
		exposed := s.attackedBy(s.kings[mover], s.side)
		s.revert()
		if !exposed {
			legal = append(legal, m)
		}
	}

	return legal
}

// FindMove returns the legal move from one square to another.
func (s *State) FindMove(from, to board.Square) (Move, bool) {
	legal := s.legalMoves()
	i := slices.IndexFunc(legal, func(m Move) bool {
		return m.from == from && m.to == to
	})
	if i < 0 {
		return Move{}, false
	}
	return legal[i], true
}

// ParseMove resolves coordinate text such as "e2e4" to a legal move.
func (s *State) ParseMove(text string) (Move, error) {
	from, to, err := ParseSquares(text)
	if err != nil {
		return Move{}, err
	}
	m, ok := s.FindMove(from, to)
	if !ok {
		return Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, text)
	}
	return m, nil
}

// MakeMove plays m. The move is matched by start and end square against the
// current legal set and the generated move is applied, so a coordinate-only
// candidate is enough. A move outside the legal set returns ErrIllegalMove
// and leaves the state untouched.
func (s *State) MakeMove(m Move) error {
	legal, ok := s.FindMove(m.from, m.to)
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m.UCI())
	}
	s.apply(legal)
	return nil
}

// UndoMove reverses the most recently played move and clears the
// checkmate and stalemate flags. It returns false, and does nothing, when
// no move has been played.
func (s *State) UndoMove() bool {
	if !s.revert() {
		return false
	}
	s.checkmate = false
	s.stalemate = false
	return true
}

// apply plays m without validation. The turn flips exactly once.
func (s *State) apply(m Move) {
	s.log = append(s.log, logEntry{move: m, rights: s.rights})

	s.relocate(m.from, m.to, m.piece, m.capturedAt)
	if m.kind == Castle {
		s.relocate(m.rook.From, m.rook.To, m.rook.Piece, m.rook.To)
	}

	s.rights &^= rightsTouchedBy(m.from) | rightsTouchedBy(m.to)
	s.side = s.side.Other()
}

// revert pops and reverses the last logged move.
func (s *State) revert() bool {
	n := len(s.log)
	if n == 0 {
		return false
	}
	e := s.log[n-1]
	s.log = s.log[:n-1]

	m := e.move
	s.restore(m.from, m.to, m.piece, m.captured, m.capturedAt)
	if m.kind == Castle {
		s.restore(m.rook.From, m.rook.To, m.rook.Piece, board.NoPiece, m.rook.To)
	}

	s.rights = e.rights
	s.side = s.side.Other()
	return true
}

// relocate clears from and capturedAt, then places piece on to.
func (s *State) relocate(from, to board.Square, piece board.Piece, capturedAt board.Square) {
	s.board.Clear(from)
	s.board.Clear(capturedAt)
	s.board.Set(to, piece)
	if piece.Type() == board.King {
		s.kings[piece.Color()] = to
	}
}

// restore puts piece back on from and captured back on capturedAt.
func (s *State) restore(from, to board.Square, piece, captured board.Piece, capturedAt board.Square) {
	s.board.Set(from, piece)
	s.board.Clear(to)
	s.board.Set(capturedAt, captured)
	if piece.Type() == board.King {
		s.kings[piece.Color()] = from
	}
}

// SquareAttacked reports whether sq is attacked by the side not to move.
// Attacks are the squares a piece could capture on, whether or not anything
// stands there: a pawn covers its two forward diagonals, never its push
// squares. Castling is not an attack. On an occupied square this matches the
// destinations of the opponent's pseudo-legal captures.
func (s *State) SquareAttacked(sq board.Square) bool {
	return s.attackedBy(sq, s.side.Other())
}

// attackedBy reports whether any piece of side attacks sq.
func (s *State) attackedBy(sq board.Square, side board.Color) bool {
	for _, m := range s.generate(side, genAttacks) {
		if m.to == sq {
			return true
		}
	}
	return false
}

// InCheck returns true if the side to move is in check.
func (s *State) InCheck() bool {
	return s.SquareAttacked(s.kings[s.side])
}

// GivesCheck reports whether playing m would leave the opponent in check.
// m must be a move of the side to move; the state is restored before returning.
func (s *State) GivesCheck(m Move) bool {
	s.apply(m)
	check := s.InCheck()
	s.revert()
	return check
}

// IsCheckmate reads the checkmate flag set by LegalMoves.
func (s *State) IsCheckmate() bool {
	return s.checkmate
}

// IsStalemate reads the stalemate flag set by LegalMoves.
func (s *State) IsStalemate() bool {
	return s.stalemate
}

// Status returns the terminal state recorded by the last LegalMoves call.
func (s *State) Status() Status {
	switch {
	case s.checkmate:
		return Checkmate
	case s.stalemate:
		return Stalemate
	default:
		return InProgress
	}
}

// String returns the board with the side to move.
func (s *State) String() string {
	return s.board.String() + fmt.Sprintf("\nSide to move: %s\nCastling: %s\n", s.side, s.rights)
}
