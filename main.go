// Chess Rules - a two-player chess board built with Ebitengine
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/ui"
)

var (
	dbDir = flag.String("db", "", "database directory (default: platform data directory)")
	flip  = flag.Bool("flip", false, "draw the board from Black's side")
)

func main() {
	flag.Parse()

	store, err := openStorage(*dbDir)
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}

	game := ui.NewGame(ui.Options{Storage: store, Flip: *flip})
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("Chess Rules")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Printf("Game loop ended: %v", err)
	}
}

func openStorage(dir string) (*storage.Storage, error) {
	if dir == "" {
		return storage.NewStorage()
	}
	return storage.Open(dir)
}
