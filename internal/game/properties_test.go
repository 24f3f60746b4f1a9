package game

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hailam/chessrules/internal/board"
)

// snapshot is the observable state compared across make/undo.
type snapshot struct {
	Board  board.Board
	Side   board.Color
	Kings  [2]board.Square
	Rights CastlingRights
	Plies  int
}

func snap(s *State) snapshot {
	return snapshot{
		Board:  s.board,
		Side:   s.side,
		Kings:  s.kings,
		Rights: s.rights,
		Plies:  len(s.log),
	}
}

func checkKingSquares(t *testing.T, s *State) {
	t.Helper()
	for _, c := range [2]board.Color{board.White, board.Black} {
		if got := s.board.PieceAt(s.kings[c]); got != board.NewPiece(board.King, c) {
			t.Fatalf("king square of %s is %v but holds %v\n%s", c, s.kings[c], got, s)
		}
	}
}

// TestRandomPlayouts walks seeded random games and checks, at every ply,
// that pseudo-legal moves never land on an ally, that each legal move keeps
// the mover's king safe and round-trips through undo, and that king squares
// track the board. Unwinding the whole game restores the start.
func TestRandomPlayouts(t *testing.T) {
	starts := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}

	for _, fen := range starts {
		for seed := int64(1); seed <= 4; seed++ {
			rng := rand.New(rand.NewSource(seed))
			s := mustFEN(t, fen)
			initial := snap(s)

			for ply := 0; ply < 80; ply++ {
				mover := s.side
				for _, m := range s.PseudoLegalMoves() {
					if target := s.board.PieceAt(m.to); !target.IsEmpty() && target.Color() == mover {
						t.Fatalf("pseudo-legal %s lands on own %v", m.UCI(), target)
					}
				}

				moves := s.LegalMoves()
				if len(moves) == 0 {
					break
				}

				before := snap(s)
				for _, m := range moves {
					s.apply(m)
					checkKingSquares(t, s)
					if s.attackedBy(s.kings[mover], s.side) {
						t.Fatalf("%s leaves the %s king attacked", m.UCI(), mover)
					}
					s.revert()
					if diff := cmp.Diff(before, snap(s)); diff != "" {
						t.Fatalf("make/undo of %s changed state (-want +got):\n%s", m.UCI(), diff)
					}
				}

				if err := s.MakeMove(moves[rng.Intn(len(moves))]); err != nil {
					t.Fatal(err)
				}
			}

			for s.UndoMove() {
			}
			if diff := cmp.Diff(initial, snap(s)); diff != "" {
				t.Errorf("unwinding seed %d from %q did not restore the start (-want +got):\n%s", seed, fen, diff)
			}
		}
	}
}

func TestSquareAttackedRestoresSide(t *testing.T) {
	s := New()
	if s.SquareAttacked(board.E4) {
		t.Error("e4 is not attacked by Black at the start")
	}
	if !s.SquareAttacked(board.F6) {
		t.Error("f6 is attacked by the g8 knight")
	}
	if s.SideToMove() != board.White {
		t.Error("SquareAttacked must not change the side to move")
	}
}

func TestSquareAttackedByPawn(t *testing.T) {
	s := mustFEN(t, "4k3/4p3/8/8/8/8/8/4K3 w - - 0 1")

	tests := []struct {
		sq   board.Square
		want bool
	}{
		{board.D6, true},
		{board.F6, true},
		{board.E6, false},
		{board.E5, false},
	}
	for _, tt := range tests {
		if got := s.SquareAttacked(tt.sq); got != tt.want {
			t.Errorf("SquareAttacked(%s) = %v, want %v", tt.sq, got, tt.want)
		}
	}
}

func TestPseudoLegalIncludesSelfCheck(t *testing.T) {
	// The e2 bishop is pinned against the king by the e8 rook.
	s := mustFEN(t, "4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1")

	if _, ok := findLegal(s.PseudoLegalMoves(), "e2d3"); !ok {
		t.Fatal("pinned bishop move should be pseudo-legal")
	}
	for _, m := range s.LegalMoves() {
		if m.From() == board.E2 {
			t.Errorf("pinned bishop move %s must be filtered out", m.UCI())
		}
	}
}
