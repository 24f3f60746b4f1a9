package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a keyboard command.
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionNewGame
	ActionFlip
	ActionToggleHints
	ActionToggleSound
)

// keyBindings maps keys to actions. Left arrow undoes, as does Z.
var keyBindings = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyArrowLeft, ActionUndo},
	{ebiten.KeyZ, ActionUndo},
	{ebiten.KeyN, ActionNewGame},
	{ebiten.KeyF, ActionFlip},
	{ebiten.KeyH, ActionToggleHints},
	{ebiten.KeyS, ActionToggleSound},
}

// InputHandler samples mouse and keyboard state once per frame.
type InputHandler struct {
	mouseX, mouseY  int // Logical coordinates (unscaled)
	leftJustPressed bool
	actions         []Action
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update reads the input state. Call this once per frame.
func (ih *InputHandler) Update() {
	rawX, rawY := ebiten.CursorPosition()

	scale := UIScale
	if scale < 1.0 {
		scale = 1.0
	}
	ih.mouseX = int(float64(rawX) / scale)
	ih.mouseY = int(float64(rawY) / scale)
	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	ih.actions = ih.actions[:0]
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			ih.actions = append(ih.actions, b.action)
		}
	}
}

// Click returns the logical position of a left click made this frame.
func (ih *InputHandler) Click() (x, y int, ok bool) {
	return ih.mouseX, ih.mouseY, ih.leftJustPressed
}

// Actions returns the keyboard commands pressed this frame.
func (ih *InputHandler) Actions() []Action {
	return ih.actions
}
