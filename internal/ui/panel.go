package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

// Panel dimensions
const (
	PanelPadding  = 20
	SectionLabelH = 20
	moveRowHeight = 22
	statusHeight  = 90
	lineHeight    = 18
)

// Panel colors
var (
	panelBg        = color.RGBA{38, 40, 45, 255}
	textPrimary    = color.RGBA{240, 240, 245, 255}
	textSecondary  = color.RGBA{160, 165, 175, 255}
	textMuted      = color.RGBA{120, 125, 135, 255}
	dividerColor   = color.RGBA{60, 65, 72, 255}
	moveRowAlt     = color.RGBA{44, 48, 54, 255}
	statusGameOver = color.RGBA{255, 200, 80, 255}
)

var keyHelp = []string{
	"Click a piece, then a square",
	"Left / Z  undo",
	"N  new game    F  flip",
	"H  hints       S  sound",
}

// Panel is the side panel with the session, move list and status.
type Panel struct {
	game *Game
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	return &Panel{game: g}
}

// Draw renders the panel to the right of the board.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, float32(BoardSize)*float32(UIScale), 0,
		float32(PanelWidth)*float32(UIScale), float32(ScreenHeight)*float32(UIScale), panelBg, false)

	x := float64(BoardSize + PanelPadding)
	drawText(screen, "Chess Rules", face(true, titleFontSize), x, PanelPadding, textPrimary)
	drawText(screen, p.game.session.Name(), face(false, defaultFontSize), x, PanelPadding+26, textSecondary)

	y := PanelPadding + 64
	drawText(screen, "Moves", face(false, defaultFontSize), x, float64(y), textMuted)
	p.drawMoveHistory(screen, y+SectionLabelH+4)

	helpY := p.helpTop()
	for i, line := range keyHelp {
		drawText(screen, line, face(false, labelFontSize), x, float64(helpY+i*lineHeight), textMuted)
	}
	p.drawRecent(screen)

	p.drawStatusBar(screen)
}

// drawMoveHistory lists the moves two per row, scrolled so the latest row
// is visible.
func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	f := face(false, defaultFontSize)
	x := float64(BoardSize + PanelPadding)

	moves := p.game.session.State().History()
	if len(moves) == 0 {
		drawText(screen, "No moves yet", f, x, float64(startY+5), textMuted)
		return
	}

	maxY := p.recentTop() - 20
	visibleRows := (maxY - startY) / moveRowHeight
	totalRows := (len(moves) + 1) / 2
	firstRow := 0
	if totalRows > visibleRows {
		firstRow = totalRows - visibleRows
	}

	y := startY
	for row := firstRow; row < totalRows; row++ {
		if row%2 == 1 {
			vector.DrawFilledRect(screen, float32(x-4)*float32(UIScale), float32(y-2)*float32(UIScale),
				float32(PanelWidth-PanelPadding*2+8)*float32(UIScale), float32(moveRowHeight)*float32(UIScale), moveRowAlt, false)
		}
		i := row * 2
		drawText(screen, fmt.Sprintf("%d.", row+1), f, x, float64(y), textMuted)
		drawText(screen, moves[i].Label(), f, x+36, float64(y), textPrimary)
		if i+1 < len(moves) {
			drawText(screen, moves[i+1].Label(), f, x+110, float64(y), textPrimary)
		}
		y += moveRowHeight
	}
}

func (p *Panel) helpTop() int {
	return ScreenHeight - statusHeight - len(keyHelp)*lineHeight - 20
}

// recentTop is where the recent games block starts; it sits on the key help
// and takes no room when there is nothing to list.
func (p *Panel) recentTop() int {
	n := len(p.game.recent)
	if n == 0 {
		return p.helpTop()
	}
	return p.helpTop() - (n+1)*lineHeight - 8
}

func (p *Panel) drawRecent(screen *ebiten.Image) {
	if len(p.game.recent) == 0 {
		return
	}
	f := face(false, labelFontSize)
	x := float64(BoardSize + PanelPadding)
	y := p.recentTop()

	drawText(screen, "Recent games", face(false, defaultFontSize), x, float64(y), textMuted)
	for _, r := range p.game.recent {
		y += lineHeight
		line := fmt.Sprintf("%s  %s in %d", storage.Abbreviate(r.Name, 16), r.Outcome, r.Plies)
		drawText(screen, line, f, x, float64(y), textSecondary)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	statusY := ScreenHeight - statusHeight + 10
	x := float64(BoardSize + PanelPadding)
	f := face(false, defaultFontSize)

	vector.DrawFilledRect(screen, float32(x)*float32(UIScale), float32(statusY-10)*float32(UIScale),
		float32(PanelWidth-PanelPadding*2)*float32(UIScale), float32(UIScale), dividerColor, false)

	username := storage.Abbreviate(p.game.prefs.Username, 12)
	drawText(screen, username, f, x, float64(statusY), textPrimary)
	if st := p.game.stats; st != nil {
		drawText(screen, fmt.Sprintf("%d games", st.GamesPlayed), f, x+150, float64(statusY), textSecondary)
	}

	state := p.game.session.State()
	statusText, statusColor := state.SideToMove().String()+" to move", color.Color(textPrimary)
	switch state.Status() {
	case game.Checkmate:
		statusText, statusColor = "Mate! "+state.SideToMove().Other().String()+" wins", statusGameOver
	case game.Stalemate:
		statusText, statusColor = "Stalemate", statusGameOver
	default:
		if state.InCheck() {
			statusText += " (check)"
		}
	}
	drawText(screen, statusText, f, x, float64(statusY+24), statusColor)

	var flags string
	if p.game.prefs.ShowHints {
		flags += "hints "
	}
	if p.game.feedback.Audio().IsEnabled() {
		flags += "sound "
	}
	if p.game.renderer.Flipped() {
		flags += "flipped"
	}
	drawText(screen, flags, face(false, labelFontSize), x, float64(statusY+48), textMuted)
}
