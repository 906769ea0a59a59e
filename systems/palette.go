package systems

import (
	"math/rand"

	"github.com/pthm-cable/discosculpter/components"
)

// AssignColors overwrites the color buffer of ps. With an empty palette the
// color is a vertical gradient from colorA (bottom) to colorB (top) keyed by
// rest height; otherwise each particle picks a palette entry uniformly.
func AssignColors(ps *ParticleSet, colorA, colorB components.Color, profile EffectProfile, rng *rand.Rand) {
	palette := profile.Palette
	a, b := colorA.Colorful(), colorB.Colorful()
	for i := 0; i < ps.Count; i++ {
		ix := i * 3

		var c components.Color
		if len(palette) > 0 {
			c = palette[rng.Intn(len(palette))]
		} else {
			c = components.FromColorful(a.BlendRgb(b, float64(GradientT(ps.Rest[ix+1]))))
		}

		ps.Color[ix] = c.R
		ps.Color[ix+1] = c.G
		ps.Color[ix+2] = c.B
	}
}

// GradientT maps a rest height to the gradient parameter in [0, 1].
func GradientT(y float32) float32 {
	return clamp01((y + SphereRadius) / (2 * SphereRadius))
}
