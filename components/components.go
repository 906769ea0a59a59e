// Package components defines the data types shared by the simulation,
// the scene ECS and the host layers.
package components

// Mode selects the physics model of the sphere.
type Mode uint8

const (
	ModeSolid  Mode = iota // Fixed damping, velocities settle to zero
	ModeLiquid             // Spring return to rest plus viscosity damping
)

// Effect selects the elemental overlay (palette, displacement and sound).
type Effect uint8

const (
	EffectNone Effect = iota
	EffectFire
	EffectWater
	EffectToxic
	EffectLightning
)

// SphereConfig is the per-interaction snapshot of simulation and render
// parameters. It is replaced wholesale; the core never mutates it.
type SphereConfig struct {
	ParticleCount int     `yaml:"particle_count" json:"particleCount"`
	ParticleSize  float32 `yaml:"particle_size" json:"particleSize"`
	MoldRadius    float32 `yaml:"mold_radius" json:"moldRadius"`
	MoldStrength  float32 `yaml:"mold_strength" json:"moldStrength"`
	ColorA        Color   `yaml:"color_a" json:"colorA"`
	ColorB        Color   `yaml:"color_b" json:"colorB"`
	Mode          Mode    `yaml:"mode" json:"mode"`
	Viscosity     float32 `yaml:"viscosity" json:"viscosity"`
	Tension       float32 `yaml:"tension" json:"tension"`
	Effect        Effect  `yaml:"effect" json:"effect"`
}

// NeedsRebuild reports whether moving from c to next requires reallocating
// the particle buffers.
func (c SphereConfig) NeedsRebuild(next SphereConfig) bool {
	return c.ParticleCount != next.ParticleCount
}

// NeedsRecolor reports whether moving from c to next requires recomputing
// the color buffer.
func (c SphereConfig) NeedsRecolor(next SphereConfig) bool {
	return c.ParticleCount != next.ParticleCount ||
		c.ColorA != next.ColorA ||
		c.ColorB != next.ColorB ||
		c.Effect != next.Effect
}
