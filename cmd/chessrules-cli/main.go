// Command chessrules-cli plays a two-player game in the terminal.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/session"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/term"
)

var (
	dbDir   = flag.String("db", "", "database directory (default: platform data directory)")
	noColor = flag.Bool("no-color", false, "disable colored output")
	flip    = flag.Bool("flip", false, "draw the board from Black's side")
	noStore = flag.Bool("no-store", false, "do not record finished games")
)

// config holds the options that shape a run.
type config struct {
	dbDir   string
	flip    bool
	noStore bool
}

func main() {
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}

	cfg := config{dbDir: *dbDir, flip: *flip, noStore: *noStore}
	if err := run(cfg, os.Stdin, color.Output); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// run plays one terminal session. Storage is closed before it returns, so
// callers may exit on error.
func run(cfg config, in io.Reader, out io.Writer) error {
	var recorder session.Recorder
	if !cfg.noStore {
		store, err := openStorage(cfg.dbDir)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage: %v", err)
		} else {
			defer func() {
				if err := store.Close(); err != nil {
					log.Printf("Warning: Failed to close storage: %v", err)
				}
			}()
			recorder = store
		}
	}

	driver := term.NewDriver(out, term.NewPrinter(cfg.flip), recorder)
	log.Printf("Session %s", driver.Name())

	return driver.Run(in)
}

func openStorage(dir string) (*storage.Storage, error) {
	if dir == "" {
		return storage.NewStorage()
	}
	return storage.Open(dir)
}
