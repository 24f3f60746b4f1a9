package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

// Theme defines the color scheme for the board and panel.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	MutedText      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180},
		LegalMoveColor: color.RGBA{130, 151, 105, 200},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
		MutedText:      color.RGBA{140, 144, 152, 255},
	}
}

// Renderer draws the board, highlights and pieces. Row 0 (rank 8) is at the
// top unless the board is flipped.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	flipped    bool
	scale      float64 // HiDPI scale factor
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize),
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
		scale:      1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
	r.sprites.SetScale(scale)
}

// SetFlipped draws the board from Black's side when true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether the board is drawn from Black's side.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the squares and, if labels is set, the file and rank labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image, labels bool) {
	for sq := board.A8; sq <= board.H1; sq++ {
		c := r.theme.LightSquare
		if (sq.Row()+sq.Col())%2 == 1 {
			c = r.theme.DarkSquare
		}
		x, y := r.SquareToScreen(sq)
		vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
	}
	if labels {
		r.drawCoordinates(screen)
	}
}

// drawCoordinates writes the file letters along the bottom edge and the rank
// numbers along the left edge, in the color of the opposite square.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	f := face(true, labelFontSize)
	for i := 0; i < 8; i++ {
		bottom, left := board.At(7, i), board.At(i, 0)
		if r.flipped {
			bottom, left = board.At(0, 7-i), board.At(7-i, 7)
		}

		x, y := r.SquareToScreen(bottom)
		file := bottom.String()[:1]
		w, h := measureText(file, f)
		drawText(screen, file, f, float64(x+r.squareSize)-w-3, float64(y+r.squareSize)-h-2, r.labelColor(bottom))

		x, y = r.SquareToScreen(left)
		drawText(screen, left.String()[1:], f, float64(x)+3, float64(y)+2, r.labelColor(left))
	}
}

func (r *Renderer) labelColor(sq board.Square) color.RGBA {
	if (sq.Row()+sq.Col())%2 == 1 {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

// DrawHighlights draws the last move, the selected square and, when targets
// is non-empty, a dot on every square the selected piece can reach.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, targets []game.Move, last *game.Move) {
	if last != nil {
		r.highlightSquare(screen, last.From(), r.theme.LastMoveColor)
		r.highlightSquare(screen, last.To(), r.theme.LastMoveColor)
	}
	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}
	for _, m := range targets {
		r.drawLegalMoveIndicator(screen, m.To())
	}
}

// DrawCheck highlights the king's square.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.Color) {
	if !sq.IsValid() {
		return
	}
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
}

func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	cx := r.s(x) + r.s(r.squareSize)/2
	cy := r.s(y) + r.s(r.squareSize)/2
	radius := r.s(r.squareSize) * 0.15

	vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.LegalMoveColor, false)
}

// DrawPieces draws every piece, offset by the shake animation where active.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b *board.Board, anims *AnimationManager) {
	for sq := board.A8; sq <= board.H1; sq++ {
		piece := b.PieceAt(sq)
		if piece.IsEmpty() {
			continue
		}
		x, y := r.SquareToScreen(sq)
		if anims != nil {
			dx, dy := anims.ShakeOffset(sq)
			x += int(dx)
			y += int(dy)
		}
		r.sprites.DrawPieceAt(screen, piece, int(r.s(x)), int(r.s(y)))
	}
}

// SquareToScreen returns the logical top-left corner of sq.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	row, col := sq.Row(), sq.Col()
	if r.flipped {
		row, col = 7-row, 7-col
	}
	return col * r.squareSize, row * r.squareSize
}

// ScreenToSquare converts logical screen coordinates to a board square, or
// NoSquare outside the board.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoSquare
	}
	row, col := y/r.squareSize, x/r.squareSize
	if r.flipped {
		row, col = 7-row, 7-col
	}
	return board.At(row, col)
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
