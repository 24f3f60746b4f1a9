// Package term renders positions to a terminal and drives a game from
// line-oriented commands.
package term

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/board"
)

// Theme holds the color attributes used for squares and pieces.
type Theme struct {
	LightSquare color.Attribute
	DarkSquare  color.Attribute
	WhitePiece  color.Attribute
	BlackPiece  color.Attribute
	Label       color.Attribute
}

// DefaultTheme is a green and white board.
var DefaultTheme = Theme{
	LightSquare: color.BgWhite,
	DarkSquare:  color.BgGreen,
	WhitePiece:  color.FgHiWhite,
	BlackPiece:  color.FgBlack,
	Label:       color.FgHiBlack,
}

// Printer renders a board as eight text rows plus a file legend.
type Printer struct {
	Theme Theme
	// Flip draws the board from Black's side.
	Flip bool
}

// NewPrinter returns a printer using DefaultTheme.
func NewPrinter(flip bool) *Printer {
	return &Printer{Theme: DefaultTheme, Flip: flip}
}

// Render returns the board as text. Each square is three cells wide.
func (p *Printer) Render(b board.Board) string {
	var sb strings.Builder
	label := color.New(p.Theme.Label)

	for r := 0; r < 8; r++ {
		row := p.displayIndex(r)
		sb.WriteString(label.Sprint(strconv.Itoa(8 - row)))
		sb.WriteByte(' ')

		for c := 0; c < 8; c++ {
			col := p.displayIndex(c)
			piece := b.PieceAt(board.At(row, col))
			sb.WriteString(p.square(row, col, piece).Sprint(" " + piece.String() + " "))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("  ")
	for c := 0; c < 8; c++ {
		file := string(rune('a' + p.displayIndex(c)))
		sb.WriteString(label.Sprint(" " + file + " "))
	}
	sb.WriteByte('\n')

	return sb.String()
}

func (p *Printer) displayIndex(i int) int {
	if p.Flip {
		return 7 - i
	}
	return i
}

// square returns the style for a square holding piece.
func (p *Printer) square(row, col int, piece board.Piece) *color.Color {
	bg := p.Theme.LightSquare
	if (row+col)%2 == 1 {
		bg = p.Theme.DarkSquare
	}
	fg := p.Theme.WhitePiece
	if !piece.IsEmpty() && piece.Color() == board.Black {
		fg = p.Theme.BlackPiece
	}
	return color.New(fg, bg, color.Bold)
}
