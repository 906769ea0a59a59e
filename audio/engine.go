package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/discosculpter/components"
)

// State is the lifecycle state of an Engine.
type State uint8

const (
	StateUninitialized State = iota // no device yet; waiting for a user gesture
	StateActive                     // device open and streaming
	StateSuspended                  // device paused (window hidden or unfocused)
	StateClosed                     // released; terminal
)

var stateNames = [...]string{"uninitialized", "active", "suspended", "closed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// ErrClosed is returned when activating an engine that was closed.
var ErrClosed = errors.New("audio: engine closed")

// Config holds engine parameters.
type Config struct {
	SampleRate   int
	BufferMillis int
	MasterGain   float64
	RumbleCutoff float64
	RumbleGain   float64
	Seed         int64
}

// Engine owns the audio device and everything playing on it. All methods
// are safe for concurrent use; sounds requested while not Active are
// dropped, except the effect loop, which is remembered and started on
// activation.
type Engine struct {
	mu    sync.Mutex
	cfg   Config
	out   Output
	rate  beep.SampleRate
	state State

	mixer  *beep.Mixer
	effect *beep.Ctrl
	recipe components.AudioRecipe
	seq    int64
}

// NewEngine creates an engine in the Uninitialized state. A nil out uses
// the system speaker.
func NewEngine(cfg Config, out Output) *Engine {
	if out == nil {
		out = Speaker{}
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	if cfg.BufferMillis <= 0 {
		cfg.BufferMillis = 50
	}
	return &Engine{
		cfg:   cfg,
		out:   out,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Activate opens the device on first use and resumes it after a
// suspension.
func (e *Engine) Activate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateActive:
		return nil
	case StateClosed:
		return ErrClosed
	case StateSuspended:
		if err := e.out.Resume(); err != nil {
			return fmt.Errorf("resuming audio: %w", err)
		}
		e.transition(StateActive)
		return nil
	}

	if err := e.out.Init(e.rate, e.rate.N(time.Duration(e.cfg.BufferMillis)*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}

	e.mixer.Add(newRumble(e.cfg.RumbleCutoff, e.cfg.RumbleGain, e.rate, e.nextSeed()))
	if !e.recipe.Silent() {
		e.effect = &beep.Ctrl{Streamer: newVoice(e.recipe, e.rate, e.nextSeed())}
		e.mixer.Add(e.effect)
	}
	e.out.Play(newVolume(e.mixer, e.cfg.MasterGain))

	e.transition(StateActive)
	return nil
}

// Suspend pauses the device. It is a no-op unless Active.
func (e *Engine) Suspend() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateActive {
		return nil
	}
	if err := e.out.Suspend(); err != nil {
		return fmt.Errorf("suspending audio: %w", err)
	}
	e.transition(StateSuspended)
	return nil
}

// Close releases the device. Further calls have no effect.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateClosed:
		return
	case StateActive, StateSuspended:
		e.out.Lock()
		e.mixer.Clear()
		e.out.Unlock()
		e.out.Close()
	}
	e.effect = nil
	e.transition(StateClosed)
}

// PlaySfx starts a one-shot UI sound. It reports whether the sound was
// queued.
func (e *Engine) PlaySfx(s components.Sfx) bool {
	recipe, ok := SfxRecipe(s)
	if !ok {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateActive {
		return false
	}

	e.out.Lock()
	e.mixer.Add(newOneShot(recipe, e.rate, e.nextSeed()))
	e.out.Unlock()
	return true
}

// SetEffect replaces the effect loop. The previous loop stops; a silent
// recipe leaves no loop playing.
func (e *Engine) SetEffect(r components.AudioRecipe) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.recipe = r
	if e.state != StateActive && e.state != StateSuspended {
		return
	}

	e.out.Lock()
	if e.effect != nil {
		// A Ctrl with no streamer drains and is dropped by the mixer
		e.effect.Streamer = nil
		e.effect = nil
	}
	if !r.Silent() {
		e.effect = &beep.Ctrl{Streamer: newVoice(r, e.rate, e.nextSeed())}
		e.mixer.Add(e.effect)
	}
	e.out.Unlock()
}

// Voices returns the number of streamers on the mixer.
func (e *Engine) Voices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateActive && e.state != StateSuspended {
		return 0
	}
	e.out.Lock()
	defer e.out.Unlock()
	return e.mixer.Len()
}

func (e *Engine) transition(to State) {
	slog.Info("audio state", "from", e.state.String(), "to", to.String())
	e.state = to
}

func (e *Engine) nextSeed() int64 {
	e.seq++
	return e.cfg.Seed + e.seq
}
