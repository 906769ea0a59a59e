package systems

import (
	"math/rand"

	"github.com/pthm-cable/discosculpter/components"
)

// Ambient wobble amplitude applied to every particle regardless of effect.
const wobbleAmplitude = 0.02

// Lightning flicker: per particle, per frame chance and jitter span.
const (
	lightningChance = 0.05
	lightningJitter = 0.3
)

// Fire jitter applies above this physics height.
const fireJitterHeight = 2

// DisplaceFunc returns the cosmetic offset for a particle at physics
// position (px, py, pz) at elapsed time t. It must not retain rng.
type DisplaceFunc func(px, py, pz, t float32, rng *rand.Rand) (dx, dy, dz float32)

// EffectProfile bundles everything an effect changes: the palette used for
// particle colors, the per-frame displacement and the looping sound.
type EffectProfile struct {
	Effect   components.Effect
	Palette  []components.Color // empty means vertical gradient
	Displace DisplaceFunc       // nil means wobble only
	Audio    components.AudioRecipe
}

var profiles = [...]EffectProfile{
	components.EffectNone: {
		Effect: components.EffectNone,
	},
	components.EffectFire: {
		Effect:   components.EffectFire,
		Palette:  []components.Color{components.Hex(0xff3300), components.Hex(0xffaa00), components.Hex(0xff0000)},
		Displace: displaceFire,
		Audio: components.AudioRecipe{
			Source:   components.WaveNoise,
			Filter:   components.FilterHighpass,
			Cutoff:   800,
			Gain:     0.15,
			Mod:      components.ModAmplitude,
			ModWave:  components.WaveSquare,
			ModRate:  15,
			ModDepth: 0.5,
		},
	},
	components.EffectWater: {
		Effect:   components.EffectWater,
		Palette:  []components.Color{components.Hex(0x00ffff), components.Hex(0x0055ff), components.Hex(0xe0ffff)},
		Displace: displaceWater,
		Audio: components.AudioRecipe{
			Source:   components.WaveNoise,
			Filter:   components.FilterLowpass,
			Cutoff:   400,
			Gain:     0.2,
			Mod:      components.ModCutoff,
			ModWave:  components.WaveSine,
			ModRate:  0.5,
			ModDepth: 200,
		},
	},
	components.EffectToxic: {
		Effect:   components.EffectToxic,
		Palette:  []components.Color{components.Hex(0x77ff00), components.Hex(0xccff00), components.Hex(0x00ff00)},
		Displace: displaceToxic,
		Audio: components.AudioRecipe{
			Source:    components.WaveSine,
			Frequency: 200,
			Gain:      0.1,
			Mod:       components.ModFrequency,
			ModWave:   components.WaveSaw,
			ModRate:   8,
			ModDepth:  100,
		},
	},
	components.EffectLightning: {
		Effect:   components.EffectLightning,
		Palette:  []components.Color{components.Hex(0xe0e0ff), components.Hex(0xa000ff), components.Hex(0xffffff)},
		Displace: displaceLightning,
		Audio: components.AudioRecipe{
			Source:    components.WaveSaw,
			Frequency: 50,
			Gain:      0.05,
		},
	},
}

// Profile returns the profile for e. Unknown effects fall back to none.
func Profile(e components.Effect) EffectProfile {
	if int(e) < len(profiles) {
		return profiles[e]
	}
	return profiles[components.EffectNone]
}

// wobble is the low-amplitude ambient motion every particle gets.
func wobble(px, py, pz, t float32) (dx, dy, dz float32) {
	return sin32(t*0.5+py) * wobbleAmplitude,
		cos32(t*0.3+px) * wobbleAmplitude,
		sin32(t*0.4+pz) * wobbleAmplitude
}

func displaceFire(px, py, pz, t float32, rng *rand.Rand) (dx, dy, dz float32) {
	height := (py + 4) / 8
	dx = sin32(t*5+py*2) * 0.1 * height
	dy = sin32(t*3+px*5)*0.05 + 0.05*height
	if py > fireJitterHeight {
		dx += (rng.Float32() - 0.5) * 0.1
		dy += (rng.Float32() - 0.5) * 0.1
	}
	return dx, dy, 0
}

func displaceWater(px, py, pz, t float32, _ *rand.Rand) (dx, dy, dz float32) {
	wave := sin32(t*2+px*2) * 0.1
	wave2 := cos32(t*1.5+pz*2) * 0.1
	return 0, wave + wave2, 0
}

func displaceToxic(px, py, pz, t float32, _ *rand.Rand) (dx, dy, dz float32) {
	drip := sin32(t+px*10) * sin32(t+py) * 0.15
	return 0, -abs32(drip), 0
}

func displaceLightning(px, py, pz, t float32, rng *rand.Rand) (dx, dy, dz float32) {
	if rng.Float32() >= lightningChance {
		return 0, 0, 0
	}
	return (rng.Float32() - 0.5) * lightningJitter,
		(rng.Float32() - 0.5) * lightningJitter,
		(rng.Float32() - 0.5) * lightningJitter
}
