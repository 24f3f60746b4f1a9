package game

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/notnil/chess"
)

// TestAgainstReferenceLibrary replays games ply by ply and compares the
// legal move set at every position with github.com/notnil/chess. The games
// avoid promotions, which this engine does not generate.
func TestAgainstReferenceLibrary(t *testing.T) {
	games := map[string][]string{
		"french with en passant and castling": {
			"e2e4", "e7e6", "e4e5", "d7d5", "e5d6", "f8d6", "g1f3", "g8f6",
			"f1e2", "e8g8", "e1g1", "b8c6", "d2d4", "c8d7", "b1c3", "d8e7",
			"c1e3", "a8d8", "d1d2", "f6g4",
		},
		"queen side castles": {
			"d2d4", "d7d5", "b1c3", "b8c6", "c1f4", "c8f5", "d1d2", "d8d7",
			"e1c1", "e8c8", "f4e5", "c6e5", "d4e5", "e7e6",
		},
		"scholar's mate": {
			"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7",
		},
	}

	for name, moves := range games {
		t.Run(name, func(t *testing.T) {
			s := New()
			ref := chess.NewGame(chess.UseNotation(chess.UCINotation{}))

			for ply := 0; ; ply++ {
				if diff := cmp.Diff(referenceMoves(ref), engineMoves(s)); diff != "" {
					t.Fatalf("ply %d (%s): legal moves differ (-reference +engine):\n%s", ply, s.FEN(), diff)
				}
				if ply == len(moves) {
					break
				}
				play(t, s, moves[ply])
				if err := ref.MoveStr(moves[ply]); err != nil {
					t.Fatalf("reference rejected %s: %v", moves[ply], err)
				}
			}

			wantMate := ref.Method() == chess.Checkmate
			if s.LegalMoves(); s.IsCheckmate() != wantMate {
				t.Errorf("IsCheckmate() = %v, reference says %v", s.IsCheckmate(), wantMate)
			}
		})
	}
}

func engineMoves(s *State) []string {
	var out []string
	for _, m := range s.legalMoves() {
		out = append(out, m.UCI())
	}
	sort.Strings(out)
	return out
}

func referenceMoves(g *chess.Game) []string {
	var out []string
	for _, m := range g.ValidMoves() {
		out = append(out, m.S1().String()+m.S2().String())
	}
	sort.Strings(out)
	return out
}
