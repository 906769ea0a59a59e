package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/discosculpter/components"
)

func defaultSphereConfig() components.SphereConfig {
	return components.SphereConfig{
		ParticleCount: 500,
		ParticleSize:  0.05,
		MoldRadius:    1.2,
		MoldStrength:  0.5,
		ColorA:        components.Hex(0x00ffff),
		ColorB:        components.Hex(0xff00ff),
		Mode:          components.ModeSolid,
		Viscosity:     0.05,
		Tension:       0.02,
		Effect:        components.EffectNone,
	}
}

func TestSphereApplyChanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*components.SphereConfig)
		want   Change
	}{
		{"identical", func(c *components.SphereConfig) {}, 0},
		{"count", func(c *components.SphereConfig) { c.ParticleCount = 800 }, ChangeRebuild | ChangeRecolor},
		{"color a", func(c *components.SphereConfig) { c.ColorA = components.Hex(0x123456) }, ChangeRecolor},
		{"color b", func(c *components.SphereConfig) { c.ColorB = components.Hex(0x654321) }, ChangeRecolor},
		{"mode", func(c *components.SphereConfig) { c.Mode = components.ModeLiquid }, ChangeMode},
		{"effect", func(c *components.SphereConfig) { c.Effect = components.EffectFire }, ChangeEffect | ChangeRecolor},
		{"radius only", func(c *components.SphereConfig) { c.MoldRadius = 2 }, 0},
		{"size only", func(c *components.SphereConfig) { c.ParticleSize = 0.1 }, 0},
	}

	for _, tt := range tests {
		s := NewSphere(defaultSphereConfig(), rand.New(rand.NewSource(1)))
		next := defaultSphereConfig()
		tt.mutate(&next)

		got := s.Apply(next)
		if got != tt.want {
			t.Errorf("%s: change = %b, want %b", tt.name, got, tt.want)
		}
		if s.Config() != next {
			t.Errorf("%s: config not replaced", tt.name)
		}
	}
}

func TestSphereApplyRebuildSizes(t *testing.T) {
	s := NewSphere(defaultSphereConfig(), rand.New(rand.NewSource(1)))
	old := s.Particles()

	next := defaultSphereConfig()
	next.ParticleCount = 1200
	s.Apply(next)

	ps := s.Particles()
	if ps == old {
		t.Fatal("expected a fresh particle set")
	}
	if ps.Count != 1200 || len(ps.Color) != 3600 || len(ps.Display) != 3600 {
		t.Errorf("rebuilt set has count %d, color len %d, display len %d", ps.Count, len(ps.Color), len(ps.Display))
	}
}

func TestSphereApplyKeepsMotionOnModeSwitch(t *testing.T) {
	s := NewSphere(defaultSphereConfig(), rand.New(rand.NewSource(1)))
	ps := s.Particles()
	ps.Position[0] += 0.5
	ps.Velocity[0] = 0.2

	next := defaultSphereConfig()
	next.Mode = components.ModeLiquid
	s.Apply(next)

	if s.Particles() != ps {
		t.Fatal("mode switch must not rebuild")
	}
	if ps.Velocity[0] != 0.2 || ps.Position[0] != ps.Rest[0]+0.5 {
		t.Error("mode switch must keep positions and velocities")
	}
}

func TestSphereApplyEffectSwapsProfile(t *testing.T) {
	s := NewSphere(defaultSphereConfig(), rand.New(rand.NewSource(1)))
	next := defaultSphereConfig()
	next.Effect = components.EffectWater
	s.Apply(next)

	if s.Profile().Effect != components.EffectWater {
		t.Errorf("expected water profile, got %s", s.Profile().Effect)
	}
	palette := s.Profile().Palette
	c := colorAt(s.Particles(), 0)
	if c != palette[0] && c != palette[1] && c != palette[2] {
		t.Errorf("particle color %v not from water palette", c)
	}
}

func TestSphereSyncReset(t *testing.T) {
	s := NewSphere(defaultSphereConfig(), rand.New(rand.NewSource(1)))
	ps := s.Particles()

	if s.SyncReset(0) {
		t.Error("generation 0 should not reset a fresh sphere")
	}

	ps.Position[4] += 1
	ps.Velocity[4] = 0.3
	if !s.SyncReset(1) {
		t.Fatal("expected reset for new generation")
	}
	if ps.Position[4] != ps.Rest[4] || ps.Velocity[4] != 0 {
		t.Error("reset did not restore particle")
	}

	ps.Position[4] += 1
	if s.SyncReset(1) {
		t.Error("same generation must not reset twice")
	}
	if ps.Position[4] == ps.Rest[4] {
		t.Error("particle should still be displaced")
	}
}

type fixedProbe struct {
	at components.Vec3
}

func (p fixedProbe) Contact() (components.Vec3, bool) {
	return p.at, true
}

func TestSphereStepUsesProbe(t *testing.T) {
	s := NewSphere(defaultSphereConfig(), rand.New(rand.NewSource(1)))
	ps := s.Particles()
	x, y, z := ps.At(0)

	fr := s.Step(1, 1.0/60, fixedProbe{at: components.Vec3{X: x, Y: y, Z: z}.Scale(0.9)})
	if !fr.HasContact {
		t.Fatal("expected frame to carry the contact")
	}
	if speed(ps, 0) == 0 {
		t.Error("particle next to contact should move")
	}

	s.SyncReset(1)
	if fr := s.Step(2, 1.0/60, nil); fr.HasContact {
		t.Error("nil probe must not report contact")
	}
	if fr := s.Step(3, 1.0/60, NoProbe{}); fr.HasContact {
		t.Error("NoProbe must not report contact")
	}
	if ps.KineticEnergy() != 0 {
		t.Errorf("expected rest without contact, got energy %f", ps.KineticEnergy())
	}
}
