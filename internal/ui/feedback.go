package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

// ToastType selects a toast's colors.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastSuccess
)

// Toast is a short message drawn over the board.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager keeps the most recent toasts on screen until they expire.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a new toast.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: time.Now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update drops expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

// Draw renders the toasts centered over the board, fading at both ends.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	f := face(false, defaultFontSize)
	y := 50.0
	for _, t := range tm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		alpha := 1.0
		if fade := 0.2; elapsed < fade {
			alpha = elapsed / fade
		} else if left := t.Duration.Seconds() - elapsed; left < fade {
			alpha = left / fade
		}

		bg := color.RGBA{50, 100, 150, uint8(220 * alpha)}
		switch t.Type {
		case ToastWarning:
			bg = color.RGBA{180, 140, 20, uint8(220 * alpha)}
		case ToastSuccess:
			bg = color.RGBA{50, 150, 50, uint8(220 * alpha)}
		}
		fg := color.RGBA{255, 255, 255, uint8(255 * alpha)}

		w, h := measureText(t.Message, f)
		padding := 12.0
		boxW, boxH := w+padding*2, h+padding*2
		x := float64(BoardSize)/2 - boxW/2

		vector.DrawFilledRect(screen, float32(x*UIScale), float32(y*UIScale),
			float32(boxW*UIScale), float32(boxH*UIScale), bg, false)
		drawText(screen, t.Message, f, x+padding, y+padding, fg)

		y += boxH + 8
	}
}

// shake is a damped horizontal wobble of the piece on a square.
type shake struct {
	square    board.Square
	start     time.Time
	duration  time.Duration
	intensity float64
}

// AnimationManager runs the shake shown on a rejected move.
type AnimationManager struct {
	shakes []shake
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake begins a shake on sq.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, shake{
		square:    sq,
		start:     time.Now(),
		duration:  300 * time.Millisecond,
		intensity: 8.0,
	})
}

// Update drops finished animations.
func (am *AnimationManager) Update() {
	now := time.Now()
	active := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.start) < s.duration {
			active = append(active, s)
		}
	}
	am.shakes = active
}

// ShakeOffset returns the current offset of the piece on sq.
func (am *AnimationManager) ShakeOffset(sq board.Square) (float64, float64) {
	for _, s := range am.shakes {
		if s.square != sq {
			continue
		}
		progress := time.Since(s.start).Seconds() / s.duration.Seconds()
		if progress >= 1.0 {
			return 0, 0
		}
		amplitude := s.intensity * math.Exp(-5*progress)
		return amplitude * math.Sin(40*progress), 0
	}
	return 0, 0
}

// FeedbackManager turns game events into toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager(soundEnabled bool) *FeedbackManager {
	fm := &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(),
	}
	fm.audio.SetEnabled(soundEnabled)
	return fm
}

// Update advances toasts and animations.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders the toasts.
func (fm *FeedbackManager) Draw(screen *ebiten.Image) {
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager for the renderer.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Audio returns the audio manager.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}

// Notify shows a plain informational toast.
func (fm *FeedbackManager) Notify(message string) {
	fm.toasts.Show(message, ToastInfo, 2*time.Second)
}

// OnInvalidMove shakes the piece that failed to move.
func (fm *FeedbackManager) OnInvalidMove(from board.Square) {
	fm.animations.StartShake(from)
	fm.audio.Play(SoundInvalid)
}

// OnMoveMade plays the sound for m and announces check.
func (fm *FeedbackManager) OnMoveMade(m game.Move, check bool) {
	switch {
	case m.Kind() == game.Castle:
		fm.audio.Play(SoundCastle)
	case m.IsCapture():
		fm.audio.Play(SoundCapture)
	default:
		fm.audio.Play(SoundMove)
	}
	if check {
		fm.toasts.Show("Check!", ToastWarning, 2*time.Second)
	}
}

// OnCheckmate announces the winner.
func (fm *FeedbackManager) OnCheckmate(winner board.Color) {
	fm.toasts.Show("Mate! "+winner.String()+" wins", ToastSuccess, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}

// OnStalemate announces the draw.
func (fm *FeedbackManager) OnStalemate() {
	fm.toasts.Show("Stalemate", ToastInfo, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}
