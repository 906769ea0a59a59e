package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/discosculpter/components"
)

func TestProfileTable(t *testing.T) {
	for i, name := range components.EffectNames() {
		e := components.Effect(i)
		p := Profile(e)
		if p.Effect != e {
			t.Errorf("%s: profile reports effect %s", name, p.Effect)
		}
		if e == components.EffectNone {
			if len(p.Palette) != 0 || p.Displace != nil || !p.Audio.Silent() {
				t.Errorf("none profile should be empty, got %+v", p)
			}
			continue
		}
		if len(p.Palette) != 3 {
			t.Errorf("%s: expected 3 palette entries, got %d", name, len(p.Palette))
		}
		if p.Displace == nil {
			t.Errorf("%s: expected a displacement function", name)
		}
		if p.Audio.Silent() {
			t.Errorf("%s: expected an audible recipe", name)
		}
	}
}

func TestProfileUnknownFallsBackToNone(t *testing.T) {
	if p := Profile(components.Effect(99)); p.Effect != components.EffectNone {
		t.Errorf("expected none profile, got %s", p.Effect)
	}
}

func TestDisplaceToxicOnlyDrips(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		px := float32(i%17) * 0.3
		py := float32(i%11) * 0.2
		dx, dy, dz := displaceToxic(px, py, 0, float32(i)*0.05, rng)
		if dx != 0 || dz != 0 {
			t.Fatalf("toxic moved x/z: (%f, %f)", dx, dz)
		}
		if dy > 0 {
			t.Fatalf("toxic drip must not raise particles, got dy=%f", dy)
		}
		if dy < -0.15 {
			t.Fatalf("toxic drip exceeds amplitude, got dy=%f", dy)
		}
	}
}

func TestDisplaceWaterBounded(t *testing.T) {
	for i := 0; i < 500; i++ {
		dx, dy, dz := displaceWater(float32(i)*0.1, 0, float32(i)*0.07, float32(i)*0.03, nil)
		if dx != 0 || dz != 0 {
			t.Fatalf("water moved x/z: (%f, %f)", dx, dz)
		}
		if dy > 0.2+1e-6 || dy < -0.2-1e-6 {
			t.Fatalf("water wave out of range: %f", dy)
		}
	}
}

func TestDisplaceFireJitterAboveThreshold(t *testing.T) {
	// Below the threshold fire is a pure function of position and time
	a1, b1, _ := displaceFire(0.5, 1.0, 0, 2, rand.New(rand.NewSource(1)))
	a2, b2, _ := displaceFire(0.5, 1.0, 0, 2, rand.New(rand.NewSource(2)))
	if a1 != a2 || b1 != b2 {
		t.Errorf("fire below threshold should not be random: (%f,%f) vs (%f,%f)", a1, b1, a2, b2)
	}

	// Above it the jitter differs between random streams
	c1, _, _ := displaceFire(0.5, 3.0, 0, 2, rand.New(rand.NewSource(1)))
	c2, _, _ := displaceFire(0.5, 3.0, 0, 2, rand.New(rand.NewSource(2)))
	if c1 == c2 {
		t.Errorf("fire above threshold should jitter, got identical %f", c1)
	}
}

func TestDisplaceLightningFlickerRate(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const n = 20000
	hits := 0
	for i := 0; i < n; i++ {
		dx, dy, dz := displaceLightning(0, 0, 0, 0, rng)
		if dx != 0 || dy != 0 || dz != 0 {
			hits++
			if abs32(dx) > lightningJitter/2 || abs32(dy) > lightningJitter/2 || abs32(dz) > lightningJitter/2 {
				t.Fatalf("lightning jitter out of range: (%f, %f, %f)", dx, dy, dz)
			}
		}
	}
	rate := float64(hits) / n
	if rate < 0.04 || rate > 0.06 {
		t.Errorf("expected ~5%% flicker rate, got %.3f", rate)
	}
}
