// Package ui draws the board in an Ebitengine window and turns mouse and
// keyboard input into session actions.
package ui

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chessrules/internal/board"
)

// Piece outlines on a 45x45 canvas. Each shape is filled and stroked with
// the side's colors.
var pieceShapes = map[board.PieceType]string{
	board.Pawn: `<circle cx="22.5" cy="14" r="5"/>` +
		`<path d="M 15 36 L 30 36 L 27 24 Q 22.5 19 18 24 Z"/>`,
	board.Knight: `<path d="M 14 36 L 32 36 C 32 28 30 20 24 12 L 22 8 L 19 12 ` +
		`C 15 14 11 20 11 24 L 14 26 L 20 21 C 19 27 14 31 14 36 Z"/>`,
	board.Bishop: `<circle cx="22.5" cy="9" r="3"/>` +
		`<path d="M 15 36 L 30 36 C 30 30 29 24 22.5 13 C 16 24 15 30 15 36 Z"/>`,
	board.Rook: `<path d="M 11 17 L 11 10 L 15 10 L 15 13 L 20 13 L 20 10 L 25 10 ` +
		`L 25 13 L 30 13 L 30 10 L 34 10 L 34 17 Z"/>` +
		`<path d="M 13 36 L 32 36 L 30 17 L 15 17 Z"/>`,
	board.Queen: `<path d="M 12 36 L 33 36 L 36 14 L 29 26 L 27 11 L 22.5 25 ` +
		`L 18 11 L 16 26 L 9 14 Z"/>` +
		`<circle cx="9" cy="13" r="2"/><circle cx="18" cy="10" r="2"/>` +
		`<circle cx="27" cy="10" r="2"/><circle cx="36" cy="13" r="2"/>`,
	board.King: `<path d="M 21 6 L 24 6 L 24 10 L 28 10 L 28 13 L 24 13 L 24 18 ` +
		`L 21 18 L 21 13 L 17 13 L 17 10 L 21 10 Z"/>` +
		`<path d="M 13 36 L 32 36 L 34 22 C 28 18 17 18 11 22 Z"/>`,
}

const pieceBase = `<rect x="10" y="35" width="25" height="4"/>`

// pieceSVG returns the SVG document for p.
func pieceSVG(p board.Piece) string {
	fill, stroke := "#ffffff", "#000000"
	if p.Color() == board.Black {
		fill, stroke = "#202020", "#000000"
	}

	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">`)
	fmt.Fprintf(&sb, `<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">`, fill, stroke)
	sb.WriteString(pieceShapes[p.Type()])
	sb.WriteString(pieceBase)
	sb.WriteString(`</g></svg>`)
	return sb.String()
}

// SpriteManager rasterizes piece sprites once and draws them scaled.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	size        int     // Display size (e.g., 80)
	renderScale float64 // Render at higher resolution for quality (e.g., 3.0)
	scale       float64 // HiDPI scale factor
}

// NewSpriteManager creates a new sprite manager with pieces of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
		scale:       1.0,
	}
	sm.loadPieces()
	return sm
}

// SetScale sets the HiDPI scale factor used when drawing.
func (sm *SpriteManager) SetScale(scale float64) {
	sm.scale = scale
}

func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for c := board.White; c <= board.Black; c++ {
		for pt := board.Pawn; pt <= board.King; pt++ {
			piece := board.NewPiece(pt, c)

			icon, err := oksvg.ReadIconStream(strings.NewReader(pieceSVG(piece)))
			if err != nil {
				log.Printf("Failed to parse sprite %s: %v", piece.Code(), err)
				continue
			}
			icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

			rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
			scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
			raster := rasterx.NewDasher(renderSize, renderSize, scanner)
			icon.Draw(raster, 1.0)

			sm.pieces[piece] = ebiten.NewImageFromImage(rgba)
		}
	}
}

// DrawPieceAt draws a piece with its top-left corner at pixel (x, y).
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y int) {
	sprite, ok := sm.pieces[p]
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := sm.scale / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
