package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/pthm-cable/discosculpter/components"
)

// waveSample evaluates one period of w at phase in [0, 1).
func waveSample(w components.Waveform, phase float64, rng *rand.Rand) float64 {
	switch w {
	case components.WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case components.WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case components.WaveSaw:
		return 2 * (phase - 0.5)
	case components.WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case components.WaveNoise:
		return rng.Float64()*2 - 1
	}
	return 0
}

// advance moves phase by inc cycles and keeps it in [0, 1).
func advance(phase, inc float64) float64 {
	phase += inc
	return phase - math.Floor(phase)
}

// onePole is a first-order IIR filter. Highpass is the input minus the
// lowpass output.
type onePole struct {
	kind components.FilterKind
	y    float64
}

func (f *onePole) process(x, cutoff, sampleRate float64) float64 {
	if f.kind == components.FilterNone {
		return x
	}
	cutoff = math.Max(1, math.Min(cutoff, sampleRate/2))
	a := 1 - math.Exp(-2*math.Pi*cutoff/sampleRate)
	f.y += a * (x - f.y)
	if f.kind == components.FilterHighpass {
		return x - f.y
	}
	return f.y
}

// voice streams an AudioRecipe forever: source, filter, gain, with the
// recipe's LFO applied to one of them.
type voice struct {
	recipe     components.AudioRecipe
	sampleRate float64
	phase      float64
	lfoPhase   float64
	filter     onePole
	rng        *rand.Rand
}

func newVoice(r components.AudioRecipe, sr beep.SampleRate, seed int64) *voice {
	return &voice{
		recipe:     r,
		sampleRate: float64(sr),
		filter:     onePole{kind: r.Filter},
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	r := &v.recipe
	for i := range samples {
		var lfo float64
		if r.Mod != components.ModNone {
			lfo = waveSample(r.ModWave, v.lfoPhase, v.rng) * r.ModDepth
			v.lfoPhase = advance(v.lfoPhase, r.ModRate/v.sampleRate)
		}

		freq, cutoff, gain := r.Frequency, r.Cutoff, r.Gain
		switch r.Mod {
		case components.ModFrequency:
			freq += lfo
		case components.ModCutoff:
			cutoff += lfo
		case components.ModAmplitude:
			gain += lfo
		}

		x := waveSample(r.Source, v.phase, v.rng)
		v.phase = advance(v.phase, freq/v.sampleRate)

		s := v.filter.process(x, cutoff, v.sampleRate) * gain
		samples[i][0] = s
		samples[i][1] = s
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// newVolume scales s by a linear gain. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
