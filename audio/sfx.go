package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/discosculpter/components"
)

var sfxRecipes = [...]components.SfxRecipe{
	components.SfxClick: {
		Wave:      components.WaveSine,
		Duration:  100 * time.Millisecond,
		FreqStart: 800, FreqEnd: 400, FreqRamp: components.RampExponential,
		GainStart: 0.5, GainEnd: 0.01, GainRamp: components.RampExponential,
	},
	components.SfxHover: {
		Wave:      components.WaveTriangle,
		Duration:  50 * time.Millisecond,
		FreqStart: 300, FreqEnd: 300, FreqRamp: components.RampHold,
		GainStart: 0.1, GainEnd: 0.01, GainRamp: components.RampLinear,
	},
	components.SfxSwitch: {
		Wave:      components.WaveSaw,
		Duration:  150 * time.Millisecond,
		FreqStart: 200, FreqEnd: 600, FreqRamp: components.RampLinear,
		GainStart: 0.2, GainEnd: 0.01, GainRamp: components.RampLinear,
	},
	components.SfxError: {
		Wave:      components.WaveSaw,
		Duration:  150 * time.Millisecond,
		FreqStart: 100, FreqEnd: 100, FreqRamp: components.RampHold,
		GainStart: 0.3, GainEnd: 0.01, GainRamp: components.RampLinear,
	},
}

// SfxRecipe returns the recipe for s, or false for an unknown sound.
func SfxRecipe(s components.Sfx) (components.SfxRecipe, bool) {
	if int(s) < len(sfxRecipes) {
		return sfxRecipes[s], true
	}
	return components.SfxRecipe{}, false
}

// ramp interpolates from a to b at u in [0, 1].
func ramp(kind components.Ramp, a, b, u float64) float64 {
	switch kind {
	case components.RampLinear:
		return a + (b-a)*u
	case components.RampExponential:
		if a > 0 && b > 0 {
			return a * math.Pow(b/a, u)
		}
		return a + (b-a)*u
	}
	return a
}

// oneShot streams an SfxRecipe and ends after its duration.
type oneShot struct {
	recipe   components.SfxRecipe
	rate     float64
	total    int
	position int
	phase    float64
	rng      *rand.Rand
}

func newOneShot(r components.SfxRecipe, sr beep.SampleRate, seed int64) *oneShot {
	return &oneShot{
		recipe: r,
		rate:   float64(sr),
		total:  sr.N(r.Duration),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (o *oneShot) Stream(samples [][2]float64) (n int, ok bool) {
	r := &o.recipe
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}
		u := float64(o.position) / float64(o.total)
		freq := ramp(r.FreqRamp, r.FreqStart, r.FreqEnd, u)
		gain := ramp(r.GainRamp, r.GainStart, r.GainEnd, u)

		s := waveSample(r.Wave, o.phase, o.rng) * gain
		o.phase = advance(o.phase, freq/o.rate)

		samples[i][0] = s
		samples[i][1] = s
		o.position++
	}
	return len(samples), true
}

func (o *oneShot) Err() error { return nil }
