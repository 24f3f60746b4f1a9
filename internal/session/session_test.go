package session

import (
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type recorder struct {
	results []storage.GameResult
}

func (r *recorder) RecordGame(result storage.GameResult) error {
	r.results = append(r.results, result)
	return nil
}

func sq(t *testing.T, name string) board.Square {
	t.Helper()
	s, err := board.ParseSquare(name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestClickToMove(t *testing.T) {
	s := New(nil)

	if _, moved := s.Click(sq(t, "e2")); moved {
		t.Fatal("first click should only select")
	}
	if s.Selected() != board.E2 {
		t.Fatalf("Selected() = %v, want e2", s.Selected())
	}
	if got := len(s.Targets()); got != 2 {
		t.Errorf("e2 pawn has %d targets, want 2", got)
	}

	m, moved := s.Click(sq(t, "e4"))
	if !moved {
		t.Fatal("second click on a legal target should move")
	}
	if m.Label() != "Pe4" {
		t.Errorf("played %s, want Pe4", m.Label())
	}
	if s.Selected() != board.NoSquare {
		t.Error("selection should clear after a move")
	}
	if s.State().SideToMove() != board.Black {
		t.Error("turn should pass to Black")
	}
}

func TestClickSameSquareDeselects(t *testing.T) {
	s := New(nil)
	s.Click(board.G1)
	s.Click(board.G1)
	if s.Selected() != board.NoSquare {
		t.Fatalf("Selected() = %v after a double click, want NoSquare", s.Selected())
	}
	if s.Targets() != nil {
		t.Error("no selection should have no targets")
	}
}

func TestInvalidSecondClickReselects(t *testing.T) {
	s := New(nil)
	s.Click(board.E2)

	// e2 to g1 is not a move, so g1 becomes the new first click.
	if _, moved := s.Click(board.G1); moved {
		t.Fatal("illegal second click should not move")
	}
	if s.Selected() != board.G1 {
		t.Fatalf("Selected() = %v, want g1", s.Selected())
	}

	m, moved := s.Click(board.F3)
	if !moved || m.Label() != "Nf3" {
		t.Fatalf("Click(f3) = %v, %v; want Nf3", m, moved)
	}
}

func TestPlayErrors(t *testing.T) {
	s := New(nil)

	if _, err := s.PlayText("e2e5"); !errors.Is(err, game.ErrIllegalMove) {
		t.Errorf("PlayText(e2e5) error = %v, want ErrIllegalMove", err)
	}
	if _, err := s.PlayText("zz"); !errors.Is(err, board.ErrInvalidSquare) {
		t.Errorf("PlayText(zz) error = %v, want ErrInvalidSquare", err)
	}
	if s.State().Plies() != 0 {
		t.Errorf("rejected moves changed the game: %d plies", s.State().Plies())
	}
}

func TestCheckmateRecordsOnce(t *testing.T) {
	rec := &recorder{}
	s := New(rec)
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	s.start()

	for _, mv := range []string{"f2f3", "e7e5", "g2g4"} {
		if _, err := s.PlayText(mv); err != nil {
			t.Fatalf("%s: %v", mv, err)
		}
	}
	clock = clock.Add(90 * time.Second)
	if _, err := s.PlayText("d8h4"); err != nil {
		t.Fatal(err)
	}

	if !s.Over() {
		t.Fatal("fool's mate should end the game")
	}
	if _, moved := s.Click(board.E2); moved || s.Selected() != board.NoSquare {
		t.Error("clicks after the end should be ignored")
	}
	if _, err := s.PlayText("e2e4"); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after mate error = %v, want ErrGameOver", err)
	}
	s.Abandon()

	want := []storage.GameResult{{
		Name:       s.Name(),
		Outcome:    storage.BlackWins,
		Plies:      4,
		LastMove:   "Qh4",
		Duration:   90 * time.Second,
		FinishedAt: clock,
	}}
	if diff := cmp.Diff(want, rec.results); diff != "" {
		t.Errorf("recorded results (-want +got):\n%s", diff)
	}
}

func TestUndoReopensGame(t *testing.T) {
	s := New(nil)
	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if _, err := s.PlayText(mv); err != nil {
			t.Fatal(err)
		}
	}

	last, ok := s.Undo()
	if !ok || last.Label() != "Qh4" {
		t.Fatalf("Undo() = %v, %v; want Qh4", last, ok)
	}
	if s.Over() {
		t.Error("undoing the mating move should reopen the game")
	}
	if _, ok := New(nil).Undo(); ok {
		t.Error("Undo on a fresh session should report false")
	}
}

func TestUndoAfterMateKeepsFirstResult(t *testing.T) {
	rec := &recorder{}
	s := New(rec)
	mate := []string{"f2f3", "e7e5", "g2g4", "d8h4"}
	for _, mv := range mate {
		if _, err := s.PlayText(mv); err != nil {
			t.Fatal(err)
		}
	}

	if _, ok := s.Undo(); !ok {
		t.Fatal("Undo after mate should succeed")
	}
	if _, err := s.PlayText("d8h4"); err != nil {
		t.Fatal(err)
	}
	if !s.Over() {
		t.Fatal("replaying the mate should end the game again")
	}
	s.Undo()
	s.Abandon()

	if len(rec.results) != 1 || rec.results[0].Outcome != storage.BlackWins {
		t.Errorf("recorded %+v, want only the first black win", rec.results)
	}
}

func TestRecent(t *testing.T) {
	t.Run("recorder without history", func(t *testing.T) {
		got, err := New(&recorder{}).Recent(5)
		if err != nil || len(got) != 0 {
			t.Errorf("Recent() = %v, %v; want nothing", got, err)
		}
	})

	t.Run("no recorder", func(t *testing.T) {
		got, err := New(nil).Recent(5)
		if err != nil || len(got) != 0 {
			t.Errorf("Recent() = %v, %v; want nothing", got, err)
		}
	})

	t.Run("storage", func(t *testing.T) {
		store, err := storage.OpenInMemory()
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()

		s := New(store)
		first := s.Name()
		if _, err := s.PlayText("e2e4"); err != nil {
			t.Fatal(err)
		}
		s.Reset()

		got, err := s.Recent(5)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Name != first || got[0].Outcome != storage.Abandoned {
			t.Errorf("Recent() = %+v, want the abandoned game %s", got, first)
		}
	})
}

func TestResetAbandons(t *testing.T) {
	rec := &recorder{}
	s := New(rec)
	first := s.Name()

	s.Reset()
	if len(rec.results) != 0 {
		t.Fatalf("empty game was recorded: %+v", rec.results)
	}

	if _, err := s.PlayText("d2d4"); err != nil {
		t.Fatal(err)
	}
	s.Reset()

	if len(rec.results) != 1 || rec.results[0].Outcome != storage.Abandoned {
		t.Fatalf("recorded %+v, want one abandoned game", rec.results)
	}
	if s.State().Plies() != 0 || s.Over() {
		t.Error("Reset should start a fresh game")
	}
	if first == "" || s.Name() == "" {
		t.Error("sessions should be named")
	}
}
