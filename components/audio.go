package components

import "time"

// Waveform identifies an oscillator shape.
type Waveform uint8

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// FilterKind identifies a one-pole filter applied after the source.
type FilterKind uint8

const (
	FilterNone FilterKind = iota
	FilterLowpass
	FilterHighpass
)

// ModTarget is the parameter a low-frequency oscillator modulates.
type ModTarget uint8

const (
	ModNone      ModTarget = iota
	ModAmplitude           // gain += depth * lfo
	ModFrequency           // source frequency += depth * lfo (Hz)
	ModCutoff              // filter cutoff += depth * lfo (Hz)
)

// AudioRecipe describes a looping voice: source -> filter -> gain, with an
// optional LFO. A zero Gain means silence.
type AudioRecipe struct {
	Source    Waveform
	Frequency float64 // Hz, ignored for noise
	Filter    FilterKind
	Cutoff    float64 // Hz
	Gain      float64

	Mod      ModTarget
	ModWave  Waveform
	ModRate  float64 // Hz
	ModDepth float64
}

// Silent reports whether the recipe produces no sound.
func (r AudioRecipe) Silent() bool {
	return r.Gain <= 0
}

// Ramp is the interpolation curve of an SFX parameter.
type Ramp uint8

const (
	RampHold Ramp = iota
	RampLinear
	RampExponential
)

// SfxRecipe describes a one-shot sound: an oscillator whose frequency and
// gain move from Start to End over Duration.
type SfxRecipe struct {
	Wave      Waveform
	Duration  time.Duration
	FreqStart float64
	FreqEnd   float64
	FreqRamp  Ramp
	GainStart float64
	GainEnd   float64
	GainRamp  Ramp
}

// Sfx names a UI sound.
type Sfx uint8

const (
	SfxClick Sfx = iota
	SfxHover
	SfxSwitch
	SfxError
)
