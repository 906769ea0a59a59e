package systems

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/discosculpter/components"
)

// Change flags what Apply did with a new configuration snapshot.
type Change uint8

const (
	ChangeRebuild Change = 1 << iota // particle buffers reallocated
	ChangeRecolor                    // color buffer recomputed
	ChangeMode                       // solid/liquid switched
	ChangeEffect                     // effect switched
)

// Has reports whether all bits of flag are set in c.
func (c Change) Has(flag Change) bool {
	return c&flag == flag
}

// Sphere owns the molding sphere's simulation state: the current config
// snapshot, its effect profile and the particle buffers. It is the only
// writer of those buffers.
type Sphere struct {
	cfg      components.SphereConfig
	profile  EffectProfile
	set      *ParticleSet
	rng      *rand.Rand
	resetGen uint64
}

// NewSphere seeds a sphere for cfg.
func NewSphere(cfg components.SphereConfig, rng *rand.Rand) *Sphere {
	s := &Sphere{
		cfg:     cfg,
		profile: Profile(cfg.Effect),
		rng:     rng,
	}
	s.set = NewParticleSet(cfg.ParticleCount)
	AssignColors(s.set, cfg.ColorA, cfg.ColorB, s.profile, s.rng)
	return s
}

// Config returns the active configuration snapshot.
func (s *Sphere) Config() components.SphereConfig {
	return s.cfg
}

// Profile returns the active effect profile.
func (s *Sphere) Profile() EffectProfile {
	return s.profile
}

// Particles returns the current particle set. The pointer changes when the
// particle count changes; callers must not hold it across Apply.
func (s *Sphere) Particles() *ParticleSet {
	return s.set
}

// Apply replaces the configuration snapshot. A particle count change builds
// a complete new buffer set before swapping it in.
func (s *Sphere) Apply(next components.SphereConfig) Change {
	prev := s.cfg
	var change Change

	if prev.NeedsRebuild(next) {
		fresh := NewParticleSet(next.ParticleCount)
		s.set = fresh
		change |= ChangeRebuild
		slog.Debug("particle set rebuilt", "from", prev.ParticleCount, "to", next.ParticleCount)
	}
	if prev.Mode != next.Mode {
		change |= ChangeMode
	}
	if prev.Effect != next.Effect {
		change |= ChangeEffect
	}

	s.cfg = next
	s.profile = Profile(next.Effect)

	if prev.NeedsRecolor(next) {
		AssignColors(s.set, next.ColorA, next.ColorB, s.profile, s.rng)
		change |= ChangeRecolor
	}
	return change
}

// SyncReset resets the particles when gen differs from the last seen reset
// generation. It reports whether a reset happened.
func (s *Sphere) SyncReset(gen uint64) bool {
	if gen == s.resetGen {
		return false
	}
	s.resetGen = gen
	s.set.Reset()
	return true
}

// Step runs one integrator frame with the probe's current contact.
func (s *Sphere) Step(elapsed, delta float32, probe Probe) Frame {
	fr := Frame{Elapsed: elapsed, Delta: delta}
	if probe != nil {
		fr.Contact, fr.HasContact = probe.Contact()
	}
	Integrate(s.set, &s.cfg, s.profile, fr, s.rng)
	return fr
}
