package game

import "github.com/hailam/chessrules/internal/board"

// CastlingRights represents the available castling options.
// A right is lost for good once its king or rook leaves, or is captured on,
// its home square.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c board.Color, kingSide bool) bool {
	if c == board.White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// castle describes the fixed geometry of one castling option.
type castle struct {
	right    CastlingRights
	color    board.Color
	kingFrom board.Square
	kingTo   board.Square
	rookFrom board.Square
	rookTo   board.Square
	between  []board.Square // must be empty
	kingPath []board.Square // must not be attacked, start square included
}

var castles = [4]castle{
	{
		right: WhiteKingSideCastle, color: board.White,
		kingFrom: board.E1, kingTo: board.G1, rookFrom: board.H1, rookTo: board.F1,
		between:  []board.Square{board.F1, board.G1},
		kingPath: []board.Square{board.E1, board.F1, board.G1},
	},
	{
		right: WhiteQueenSideCastle, color: board.White,
		kingFrom: board.E1, kingTo: board.C1, rookFrom: board.A1, rookTo: board.D1,
		between:  []board.Square{board.D1, board.C1, board.B1},
		kingPath: []board.Square{board.E1, board.D1, board.C1},
	},
	{
		right: BlackKingSideCastle, color: board.Black,
		kingFrom: board.E8, kingTo: board.G8, rookFrom: board.H8, rookTo: board.F8,
		between:  []board.Square{board.F8, board.G8},
		kingPath: []board.Square{board.E8, board.F8, board.G8},
	},
	{
		right: BlackQueenSideCastle, color: board.Black,
		kingFrom: board.E8, kingTo: board.C8, rookFrom: board.A8, rookTo: board.D8,
		between:  []board.Square{board.D8, board.C8, board.B8},
		kingPath: []board.Square{board.E8, board.D8, board.C8},
	},
}

// rightsTouchedBy returns the rights lost when a move starts or ends on sq.
func rightsTouchedBy(sq board.Square) CastlingRights {
	switch sq {
	case board.E1:
		return WhiteKingSideCastle | WhiteQueenSideCastle
	case board.H1:
		return WhiteKingSideCastle
	case board.A1:
		return WhiteQueenSideCastle
	case board.E8:
		return BlackKingSideCastle | BlackQueenSideCastle
	case board.H8:
		return BlackKingSideCastle
	case board.A8:
		return BlackQueenSideCastle
	}
	return NoCastling
}

// parseCastlingRights parses the castling rights field of a FEN string.
func parseCastlingRights(field string) (CastlingRights, bool) {
	if field == "-" {
		return NoCastling, true
	}

	cr := NoCastling
	for _, c := range field {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return NoCastling, false
		}
	}
	return cr, true
}

// sanitize drops rights whose king or rook is not on its home square.
func (cr CastlingRights) sanitize(b *board.Board) CastlingRights {
	for _, c := range castles {
		if cr&c.right == 0 {
			continue
		}
		if b.PieceAt(c.kingFrom) != board.NewPiece(board.King, c.color) ||
			b.PieceAt(c.rookFrom) != board.NewPiece(board.Rook, c.color) {
			cr &^= c.right
		}
	}
	return cr
}
