package ui

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/session"
	"github.com/hailam/chessrules/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// recentGames is how many finished games the panel lists.
const recentGames = 3

// UIScale is the global HiDPI scale factor for all UI drawing.
// Set by Game.Layout() and used by the panel, toasts and input.
var UIScale float64 = 1.0

// Options configures a Game.
type Options struct {
	// Storage persists preferences and results. It may be nil.
	Storage *storage.Storage
	// Flip draws the board from Black's side, overriding the saved preference.
	Flip bool
}

// Game implements ebiten.Game for a two-player game at one board.
type Game struct {
	session *session.Session

	storage *storage.Storage
	prefs   *storage.UserPreferences
	stats   *storage.GameStats
	recent  []storage.GameResult

	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager

	// HiDPI scaling
	scale float64
}

// NewGame creates the window state and starts a session.
func NewGame(opts Options) *Game {
	g := &Game{
		storage:  opts.Storage,
		renderer: NewRenderer(BoardSize, SquareSize),
		input:    NewInputHandler(),
		scale:    1.0,
	}

	var recorder session.Recorder
	if g.storage != nil {
		recorder = g.storage
	}
	g.session = session.New(recorder)

	g.loadPreferences()
	if opts.Flip {
		g.prefs.FlipBoard = true
	}
	g.renderer.SetFlipped(g.prefs.FlipBoard)

	g.feedback = NewFeedbackManager(g.prefs.Sound)
	g.panel = NewPanel(g)

	g.refreshStats()
	g.checkFirstLaunch()

	log.Printf("Session %s", g.session.Name())
	return g
}

// loadPreferences loads user preferences from storage.
func (g *Game) loadPreferences() {
	if g.storage == nil {
		g.prefs = storage.DefaultPreferences()
		return
	}

	var err error
	g.prefs, err = g.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		g.prefs = storage.DefaultPreferences()
	}
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// refreshStats reloads the statistics and recent results shown in the panel.
func (g *Game) refreshStats() {
	if g.storage == nil {
		return
	}
	stats, err := g.storage.LoadStats()
	if err != nil {
		log.Printf("Warning: Failed to load stats: %v", err)
		return
	}
	g.stats = stats

	recent, err := g.session.Recent(recentGames)
	if err != nil {
		log.Printf("Warning: Failed to load recent games: %v", err)
		return
	}
	g.recent = recent
}

// checkFirstLaunch greets a new player once.
func (g *Game) checkFirstLaunch() {
	if g.storage == nil {
		return
	}

	isFirst, err := g.storage.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: Failed to check first launch: %v", err)
		return
	}
	if !isFirst {
		return
	}

	g.feedback.Notify("Welcome, " + g.prefs.Username)
	if err := g.storage.MarkFirstLaunchComplete(); err != nil {
		log.Printf("Warning: Failed to mark first launch complete: %v", err)
	}
	g.savePreferences()
}

// Update handles input once per tick.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	for _, action := range g.input.Actions() {
		g.handleAction(action)
	}

	if x, y, ok := g.input.Click(); ok {
		if sq := g.renderer.ScreenToSquare(x, y); sq != board.NoSquare {
			g.handleClick(sq)
		}
	}

	return nil
}

func (g *Game) handleAction(action Action) {
	switch action {
	case ActionUndo:
		if m, ok := g.session.Undo(); ok {
			g.feedback.Notify("Took back " + m.Label())
		}

	case ActionNewGame:
		g.session.Reset()
		g.refreshStats()
		log.Printf("Session %s", g.session.Name())
		g.feedback.Notify("New game")

	case ActionFlip:
		g.prefs.FlipBoard = !g.prefs.FlipBoard
		g.renderer.SetFlipped(g.prefs.FlipBoard)
		g.savePreferences()

	case ActionToggleHints:
		g.prefs.ShowHints = !g.prefs.ShowHints
		g.savePreferences()

	case ActionToggleSound:
		g.prefs.Sound = !g.prefs.Sound
		g.feedback.Audio().SetEnabled(g.prefs.Sound)
		g.savePreferences()
	}
}

// handleClick forwards a board click to the session and reacts to the result.
func (g *Game) handleClick(sq board.Square) {
	prev := g.session.Selected()
	m, moved := g.session.Click(sq)
	if !moved {
		if prev != board.NoSquare && prev != sq && g.session.Selected() == sq {
			g.feedback.OnInvalidMove(prev)
		}
		return
	}

	state := g.session.State()
	switch state.Status() {
	case game.Checkmate:
		g.feedback.OnMoveMade(m, false)
		g.feedback.OnCheckmate(state.SideToMove().Other())
		g.refreshStats()
	case game.Stalemate:
		g.feedback.OnMoveMade(m, false)
		g.feedback.OnStalemate()
		g.refreshStats()
	default:
		g.feedback.OnMoveMade(m, state.InCheck())
	}
}

// Draw renders the board, the pieces, the toasts and the panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen, g.prefs.ShowLabels)

	state := g.session.State()
	if state.InCheck() {
		g.renderer.DrawCheck(screen, state.KingSquare(state.SideToMove()))
	}

	var last *game.Move
	if m, ok := state.LastMove(); ok {
		last = &m
	}
	var targets []game.Move
	if g.prefs.ShowHints {
		targets = g.session.Targets()
	}
	g.renderer.DrawHighlights(screen, g.session.Selected(), targets, last)

	b := state.Board()
	g.renderer.DrawPieces(screen, &b, g.feedback.Animations())

	g.feedback.Draw(screen)
	g.panel.Draw(screen)
}

// Layout returns the game's screen dimensions, scaled by the device factor
// for crisp rendering on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	UIScale = g.scale

	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// Close records an unfinished game as abandoned and closes storage.
func (g *Game) Close() {
	g.session.Abandon()
	if g.storage != nil {
		if err := g.storage.Close(); err != nil {
			log.Printf("Warning: Failed to close storage: %v", err)
		}
	}
}
