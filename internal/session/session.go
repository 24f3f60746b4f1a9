// Package session wraps a game.State with what a front end needs around it:
// click-to-move selection, a session name, a clock, and recording of the
// result when the game ends or is abandoned.
package session

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

// ErrGameOver is returned when a move is attempted after checkmate or stalemate.
var ErrGameOver = errors.New("game is over")

// Recorder stores finished game summaries. *storage.Storage implements it.
type Recorder interface {
	RecordGame(result storage.GameResult) error
}

// History lists stored results. *storage.Storage implements it.
type History interface {
	RecentResults(n int) ([]storage.GameResult, error)
}

// Session is one game in progress. It is not safe for concurrent use.
type Session struct {
	state    *game.State
	recorder Recorder

	name     string
	started  time.Time
	recorded bool

	selected board.Square
	now      func() time.Time
}

// New starts a session at the initial position. recorder may be nil.
func New(recorder Recorder) *Session {
	s := &Session{recorder: recorder, now: time.Now}
	s.start()
	return s
}

func (s *Session) start() {
	s.state = game.New()
	s.name = storage.NewSessionName()
	s.started = s.now()
	s.recorded = false
	s.selected = board.NoSquare
}

// State returns the position being played.
func (s *Session) State() *game.State { return s.state }

// Name returns the session name, e.g. "brave-otter".
func (s *Session) Name() string { return s.name }

// Over reports whether the game has reached checkmate or stalemate.
func (s *Session) Over() bool {
	return s.state.Status() != game.InProgress
}

// Selected returns the square picked by the first click, or NoSquare.
func (s *Session) Selected() board.Square { return s.selected }

// Targets returns the legal moves starting on the selected square.
func (s *Session) Targets() []game.Move {
	if s.selected == board.NoSquare {
		return nil
	}
	var out []game.Move
	for _, m := range s.state.LegalMoves() {
		if m.From() == s.selected {
			out = append(out, m)
		}
	}
	return out
}

// Click feeds one board click. The first click selects a square and
// clicking it again clears the selection. A second click on another square
// tries the move between the two; if it is not legal that square becomes
// the new selection. It returns the move played, if any.
func (s *Session) Click(sq board.Square) (game.Move, bool) {
	if s.Over() || !sq.IsValid() {
		return game.Move{}, false
	}

	switch s.selected {
	case sq:
		s.selected = board.NoSquare
		return game.Move{}, false
	case board.NoSquare:
		s.selected = sq
		return game.Move{}, false
	}

	b := s.state.Board()
	played, err := s.Play(game.NewMove(&b, s.selected, sq))
	if err != nil {
		log.Printf("%s%s - not a valid move", s.selected, sq)
		s.selected = sq
		return game.Move{}, false
	}
	s.selected = board.NoSquare
	return played, true
}

// Play makes m, which only needs the right start and end squares, and
// returns the move as generated. When the move ends the game the result is
// recorded.
func (s *Session) Play(m game.Move) (game.Move, error) {
	if s.Over() {
		return game.Move{}, ErrGameOver
	}
	if err := s.state.MakeMove(m); err != nil {
		return game.Move{}, err
	}
	played, _ := s.state.LastMove()
	log.Printf("[MOVE] %s", played.Label())

	s.state.LegalMoves()
	switch s.state.Status() {
	case game.Checkmate:
		log.Printf("[GAME] checkmate")
		s.record(s.winner())
	case game.Stalemate:
		log.Printf("[GAME] stalemate")
		s.record(storage.Stalemate)
	}
	return played, nil
}

// PlayText plays a move in coordinate form such as "e2e4".
func (s *Session) PlayText(text string) (game.Move, error) {
	from, to, err := game.ParseSquares(text)
	if err != nil {
		return game.Move{}, err
	}
	b := s.state.Board()
	return s.Play(game.NewMove(&b, from, to))
}

// Undo takes back the last move and clears the selection. Undoing past a
// recorded ending reopens the game, but the first recorded result is the one
// kept: playing on to another ending records nothing more.
func (s *Session) Undo() (game.Move, bool) {
	last, ok := s.state.LastMove()
	if !ok || !s.state.UndoMove() {
		return game.Move{}, false
	}
	s.selected = board.NoSquare
	log.Printf("[UNDO] %s", last.Label())
	return last, true
}

// Reset abandons the current game and starts a fresh one.
func (s *Session) Reset() {
	s.Abandon()
	s.start()
}

// Abandon records an unfinished game that has at least one move. It is a
// no-op once the game has been recorded.
func (s *Session) Abandon() {
	if s.recorded || s.state.Plies() == 0 {
		return
	}
	s.record(storage.Abandoned)
}

// Recent returns up to n stored results, newest first. It returns nothing
// when the recorder does not keep a history.
func (s *Session) Recent(n int) ([]storage.GameResult, error) {
	h, ok := s.recorder.(History)
	if !ok {
		return nil, nil
	}
	return h.RecentResults(n)
}

// winner returns the outcome of a checkmate; the side to move is mated.
func (s *Session) winner() storage.Outcome {
	if s.state.SideToMove() == board.White {
		return storage.BlackWins
	}
	return storage.WhiteWins
}

func (s *Session) record(outcome storage.Outcome) {
	if s.recorded {
		return
	}
	s.recorded = true
	if s.recorder == nil {
		return
	}

	result := storage.GameResult{
		Name:       s.name,
		Outcome:    outcome,
		Plies:      s.state.Plies(),
		Duration:   s.now().Sub(s.started),
		FinishedAt: s.now(),
	}
	if last, ok := s.state.LastMove(); ok {
		result.LastMove = last.Label()
	}

	if err := s.recorder.RecordGame(result); err != nil {
		log.Printf("Warning: Failed to record game %s: %v", s.name, err)
	}
}

// String describes the session for logs.
func (s *Session) String() string {
	return fmt.Sprintf("%s (%d plies, %s)", s.name, s.state.Plies(), s.state.Status())
}
