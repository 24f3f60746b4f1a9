package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType identifies a sound effect.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundCastle
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// AudioManager plays short procedurally generated effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates an audio manager with its effects generated.
func NewAudioManager() *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		enabled: true,
		volume:  0.5,
	}
	am.sounds = map[SoundType][]byte{
		SoundMove:    synth(0.08, 0.3, click(440)),
		SoundCapture: synth(0.12, 0.5, click(330)),
		SoundCastle:  append(synth(0.06, 0.3, click(400)), synth(0.06, 0.25, click(440))...),
		SoundInvalid: synth(0.1, 0.15, buzz(150)),
		SoundGameEnd: synth(0.4, 0.5, chord(261.63, 329.63, 392.00)),
	}
	return am
}

// wave returns a sample in [-1, 1] at time t of a sound lasting d seconds.
type wave func(t, d float64) float64

func click(freq float64) wave {
	return func(t, _ float64) float64 {
		return math.Sin(2*math.Pi*freq*t) * math.Exp(-t*30)
	}
}

func buzz(freq float64) wave {
	return func(t, d float64) float64 {
		w := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
		return w * (1 - t/d)
	}
}

func chord(freqs ...float64) wave {
	return func(t, d float64) float64 {
		p := t / d
		env := 1.0
		if p < 0.1 {
			env = p / 0.1
		} else if p > 0.7 {
			env = (1 - p) / 0.3
		}
		sum := 0.0
		for _, f := range freqs {
			sum += math.Sin(2 * math.Pi * f * t)
		}
		return sum / float64(len(freqs)) * env
	}
}

// synth renders w as 16-bit little-endian stereo PCM.
func synth(duration, amplitude float64, w wave) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		val := int16(math.Max(-1, math.Min(1, w(t, duration)*amplitude)) * 32767)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

// Play plays a sound effect if audio is enabled.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
