package audio

import (
	"math/rand"

	perlin "github.com/aquilax/go-perlin"
	"github.com/gopxl/beep"

	"github.com/pthm-cable/discosculpter/components"
)

// Perlin parameters for the slow swell on the ambient rumble.
const (
	swellAlpha = 2.0
	swellBeta  = 2.0
	swellN     = 3
	swellRate  = 0.15 // noise units per second
	swellDepth = 0.25 // fraction of the base gain
)

// rumble is lowpassed white noise whose gain drifts with 1D Perlin noise.
// The swell is evaluated once per Stream call.
type rumble struct {
	gain       float64
	cutoff     float64
	sampleRate float64
	filter     onePole
	rng        *rand.Rand
	swell      *perlin.Perlin
	t          float64
}

func newRumble(cutoff, gain float64, sr beep.SampleRate, seed int64) *rumble {
	return &rumble{
		gain:       gain,
		cutoff:     cutoff,
		sampleRate: float64(sr),
		filter:     onePole{kind: components.FilterLowpass},
		rng:        rand.New(rand.NewSource(seed)),
		swell:      perlin.NewPerlin(swellAlpha, swellBeta, swellN, seed),
	}
}

func (r *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	g := r.gain * (1 + swellDepth*r.swell.Noise1D(r.t*swellRate))
	for i := range samples {
		x := r.rng.Float64()*2 - 1
		s := r.filter.process(x, r.cutoff, r.sampleRate) * g
		samples[i][0] = s
		samples[i][1] = s
	}
	r.t += float64(len(samples)) / r.sampleRate
	return len(samples), true
}

func (r *rumble) Err() error { return nil }
