package game

import "github.com/hailam/chessrules/internal/board"

// genMode selects what the generator emits.
type genMode uint8

const (
	// genMoves emits pseudo-legal moves, castling included.
	genMoves genMode = iota
	// genAttacks emits the squares a side attacks: pawn diagonals regardless
	// of occupancy, no pawn pushes, no en passant and no castling. Castling
	// is left out because it never captures and would recurse.
	genAttacks
)

type offset struct{ dr, dc int }

var (
	knightOffsets = []offset{{2, 1}, {2, -1}, {1, 2}, {1, -2}, {-2, 1}, {-2, -1}, {-1, 2}, {-1, -2}}
	kingOffsets   = []offset{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	rookDirs      = []offset{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	bishopDirs    = []offset{{-1, -1}, {1, 1}, {-1, 1}, {1, -1}}
	queenDirs     = append(append([]offset{}, rookDirs...), bishopDirs...)
)

// PseudoLegalMoves returns the moves of the side to move that obey piece
// movement rules, without checking whether they leave its own king attacked.
func (s *State) PseudoLegalMoves() []Move {
	return s.generate(s.side, genMoves)
}

// generate walks the board in square order and collects moves for side.
func (s *State) generate(side board.Color, mode genMode) []Move {
	moves := make([]Move, 0, 48)

	for sq := board.A8; sq < board.NoSquare; sq++ {
		p := s.board.PieceAt(sq)
		if p.IsEmpty() || p.Color() != side {
			continue
		}

		switch p.Type() {
		case board.Pawn:
			moves = s.pawnMoves(moves, sq, side, mode)
			if mode == genMoves {
				moves = s.enPassantMoves(moves, sq, side)
			}
		case board.Knight:
			moves = s.stepMoves(moves, sq, side, knightOffsets)
		case board.Bishop:
			moves = s.slideMoves(moves, sq, side, bishopDirs)
		case board.Rook:
			moves = s.slideMoves(moves, sq, side, rookDirs)
		case board.Queen:
			moves = s.slideMoves(moves, sq, side, queenDirs)
		case board.King:
			moves = s.stepMoves(moves, sq, side, kingOffsets)
			if mode == genMoves {
				moves = s.castleMoves(moves, side)
			}
		}
	}

	return moves
}

// pawnDirection returns the row step toward the opponent's back rank.
func pawnDirection(side board.Color) int {
	if side == board.White {
		return -1
	}
	return 1
}

// pawnStartRow returns the row pawns of side start on.
func pawnStartRow(side board.Color) int {
	if side == board.White {
		return 6
	}
	return 1
}

// pawnMoves appends pushes and diagonal captures. Pawns on the last rank
// have nowhere to go; promotion is not generated.
func (s *State) pawnMoves(moves []Move, from board.Square, side board.Color, mode genMode) []Move {
	dir := pawnDirection(side)

	if mode == genMoves {
		if one, ok := from.Offset(dir, 0); ok && s.board.IsEmpty(one) {
			moves = append(moves, NewMove(&s.board, from, one))
			if from.Row() == pawnStartRow(side) {
				if two, ok := from.Offset(2*dir, 0); ok && s.board.IsEmpty(two) {
					moves = append(moves, NewMove(&s.board, from, two))
				}
			}
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to, ok := from.Offset(dir, dc)
		if !ok {
			continue
		}
		target := s.board.PieceAt(to)
		if mode == genAttacks {
			if target.IsEmpty() || target.Color() != side {
				moves = append(moves, NewMove(&s.board, from, to))
			}
			continue
		}
		if !target.IsEmpty() && target.Color() != side {
			moves = append(moves, NewMove(&s.board, from, to))
		}
	}

	return moves
}

// enPassantMoves appends the en passant capture available to the pawn on
// from, which exists only right after an adjacent opponent double step.
func (s *State) enPassantMoves(moves []Move, from board.Square, side board.Color) []Move {
	last, ok := s.lastMove()
	if !ok || last.piece != board.NewPiece(board.Pawn, side.Other()) {
		return moves
	}
	if abs(last.from.Row()-last.to.Row()) != 2 {
		return moves
	}
	if last.to.Row() != from.Row() || abs(last.to.Col()-from.Col()) != 1 {
		return moves
	}

	to, ok := from.Offset(pawnDirection(side), last.to.Col()-from.Col())
	if !ok || !s.board.IsEmpty(to) {
		return moves
	}
	return append(moves, newEnPassant(&s.board, from, to, last.to))
}

// stepMoves appends single-step moves (knight, king) onto empty or opponent squares.
func (s *State) stepMoves(moves []Move, from board.Square, side board.Color, offsets []offset) []Move {
	for _, o := range offsets {
		to, ok := from.Offset(o.dr, o.dc)
		if !ok {
			continue
		}
		target := s.board.PieceAt(to)
		if target.IsEmpty() || target.Color() != side {
			moves = append(moves, NewMove(&s.board, from, to))
		}
	}
	return moves
}

// slideMoves ray-casts along each direction. The first occupied square ends
// the ray and is included only when it holds an opponent piece.
func (s *State) slideMoves(moves []Move, from board.Square, side board.Color, dirs []offset) []Move {
	for _, d := range dirs {
		for i := 1; i < 8; i++ {
			to, ok := from.Offset(d.dr*i, d.dc*i)
			if !ok {
				break
			}
			target := s.board.PieceAt(to)
			if target.IsEmpty() {
				moves = append(moves, NewMove(&s.board, from, to))
				continue
			}
			if target.Color() != side {
				moves = append(moves, NewMove(&s.board, from, to))
			}
			break
		}
	}
	return moves
}

// castleMoves appends castling moves for side. The right must still be held,
// king and rook must stand on their home squares, the squares between them
// must be empty, and the king may not start on, cross, or land on an
// attacked square.
func (s *State) castleMoves(moves []Move, side board.Color) []Move {
	for _, c := range castles {
		if c.color != side || s.rights&c.right == 0 {
			continue
		}
		if s.board.PieceAt(c.kingFrom) != board.NewPiece(board.King, side) ||
			s.board.PieceAt(c.rookFrom) != board.NewPiece(board.Rook, side) {
			continue
		}
		if !s.allEmpty(c.between) || s.anyAttacked(c.kingPath, side.Other()) {
			continue
		}
		moves = append(moves, newCastle(&s.board, c))
	}
	return moves
}

func (s *State) allEmpty(squares []board.Square) bool {
	for _, sq := range squares {
		if !s.board.IsEmpty(sq) {
			return false
		}
	}
	return true
}

func (s *State) anyAttacked(squares []board.Square, by board.Color) bool {
	attacked := s.generate(by, genAttacks)
	for _, sq := range squares {
		for _, m := range attacked {
			if m.to == sq {
				return true
			}
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
