package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/session"
)

// historySize is how many results the history command lists.
const historySize = 10

// Driver plays games from text commands:
//
//	e2e4    play a move in coordinate form
//	undo    take back the last move
//	moves   list the legal moves
//	board   print the position
//	history list recently finished games
//	new     start over
//	quit    leave
type Driver struct {
	out     io.Writer
	printer *Printer
	session *session.Session
}

// NewDriver returns a driver writing to out. recorder may be nil.
func NewDriver(out io.Writer, printer *Printer, recorder session.Recorder) *Driver {
	return &Driver{out: out, printer: printer, session: session.New(recorder)}
}

// State returns the game being played.
func (d *Driver) State() *game.State {
	return d.session.State()
}

// Name returns the session name of the current game.
func (d *Driver) Name() string {
	return d.session.Name()
}

// Run reads commands from in until quit or end of input. An unfinished game
// with moves on the board is recorded as abandoned.
func (d *Driver) Run(in io.Reader) error {
	d.printBoard()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(d.out, "%s> ", d.State().SideToMove())
		if !scanner.Scan() {
			break
		}
		if quit := d.Exec(scanner.Text()); quit {
			break
		}
	}

	d.session.Abandon()
	return scanner.Err()
}

// Exec runs a single command line and reports whether the driver should stop.
func (d *Driver) Exec(line string) bool {
	cmd := strings.ToLower(strings.TrimSpace(line))

	switch cmd {
	case "":
	case "quit", "exit":
		return true
	case "board":
		d.printBoard()
	case "moves":
		d.printMoves()
	case "undo":
		d.undo()
	case "history":
		d.printHistory()
	case "new":
		d.session.Reset()
		fmt.Fprintf(d.out, "New game %s\n", d.Name())
		d.printBoard()
	default:
		d.play(cmd)
	}
	return false
}

func (d *Driver) play(text string) {
	_, err := d.session.PlayText(text)
	switch {
	case errors.Is(err, session.ErrGameOver):
		fmt.Fprintln(d.out, "Game over. Use undo or new.")
		return
	case errors.Is(err, board.ErrInvalidSquare):
		fmt.Fprintf(d.out, "Unknown command %q\n", text)
		return
	case err != nil:
		fmt.Fprintf(d.out, "Illegal move %s\n", text)
		return
	}

	d.printBoard()

	s := d.State()
	switch s.Status() {
	case game.Checkmate:
		fmt.Fprintln(d.out, "Mate!")
	case game.Stalemate:
		fmt.Fprintln(d.out, "Stalemate")
	default:
		if s.InCheck() {
			fmt.Fprintln(d.out, "Check")
		}
	}
}

func (d *Driver) undo() {
	last, ok := d.session.Undo()
	if !ok {
		fmt.Fprintln(d.out, "Nothing to undo")
		return
	}
	fmt.Fprintf(d.out, "Took back %s\n", last.Label())
	d.printBoard()
}

func (d *Driver) printBoard() {
	fmt.Fprint(d.out, d.printer.Render(d.State().Board()))
}

func (d *Driver) printMoves() {
	moves := d.State().LegalMoves()
	if len(moves) == 0 {
		fmt.Fprintln(d.out, "No legal moves")
		return
	}
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.UCI()
	}
	fmt.Fprintf(d.out, "%d moves: %s\n", len(moves), strings.Join(parts, " "))
}

func (d *Driver) printHistory() {
	results, err := d.session.Recent(historySize)
	if err != nil {
		fmt.Fprintf(d.out, "History unavailable: %v\n", err)
		return
	}
	if len(results) == 0 {
		fmt.Fprintln(d.out, "No games recorded")
		return
	}
	for _, r := range results {
		fmt.Fprintf(d.out, "%-24s %-10s %3d plies  %s\n",
			r.Name, r.Outcome, r.Plies, r.FinishedAt.Format("2006-01-02 15:04"))
	}
}
