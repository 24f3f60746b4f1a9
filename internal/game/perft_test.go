package game

import "testing"

// perft counts the number of leaf nodes at the given depth.
// This is the standard way to verify move generation correctness.
func perft(s *State, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := s.legalMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		s.apply(m)
		nodes += perft(s, depth-1)
		s.revert()
	}
	return nodes
}

// None of these positions reach a promotion within the tested depth, so the
// standard reference counts apply.
func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []int64 // by depth, starting at 1
	}{
		{
			name:  "starting position",
			fen:   StartFEN,
			nodes: []int64{20, 400, 8902},
		},
		{
			// Kiwipete: castling, pins and en passant.
			name:  "kiwipete",
			fen:   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			nodes: []int64{48, 2039},
		},
		{
			name:  "position 3",
			fen:   "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			nodes: []int64{14, 191, 2812},
		},
		{
			// The e4 pawn may not capture en passant: it would expose the
			// a4 king to the h4 rook along the rank.
			name:  "en passant horizontal pin",
			fen:   "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
			nodes: []int64{6, 94},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := mustFEN(t, tc.fen)
			before := s.FEN()
			for i, want := range tc.nodes {
				depth := i + 1
				if got := perft(s, depth); got != want {
					t.Errorf("perft(%d) = %d, want %d", depth, got, want)
				}
			}
			if s.FEN() != before {
				t.Errorf("perft left the position changed: %s", s.FEN())
			}
		})
	}
}

func TestEnPassantPinnedExcluded(t *testing.T) {
	s := mustFEN(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")

	pseudo := s.PseudoLegalMoves()
	if _, ok := findLegal(pseudo, "e4d3"); !ok {
		t.Fatal("e4d3 e.p. should be pseudo-legal")
	}
	if _, ok := findLegal(s.LegalMoves(), "e4d3"); ok {
		t.Error("e4d3 e.p. exposes the king and must be filtered out")
	}
}
