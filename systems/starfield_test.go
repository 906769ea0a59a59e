package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/discosculpter/components"
)

func testStarfieldParams() StarfieldParams {
	return StarfieldParams{
		Stars:          200,
		StarRadius:     100,
		StarDepth:      50,
		StarSize:       0.8,
		TwinkleSpeed:   1,
		Sparkles:       50,
		SparkleScale:   12,
		SparkleSize:    0.1,
		SparkleSpeed:   0.3,
		SparkleOpacity: 0.4,
	}
}

func TestStarfieldSpawnCounts(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewStarfieldSystem(w, testStarfieldParams(), rand.New(rand.NewSource(3)))

	stars, sparkles := 0, 0
	sys.EachStar(func(components.Position, components.Star) { stars++ })
	sys.EachSparkle(func(components.Position, components.Sparkle) { sparkles++ })

	if stars != 200 {
		t.Errorf("expected 200 stars, got %d", stars)
	}
	if sparkles != 50 {
		t.Errorf("expected 50 sparkles, got %d", sparkles)
	}
}

func TestStarfieldStarsInShell(t *testing.T) {
	p := testStarfieldParams()
	w := ecs.NewWorld()
	sys := NewStarfieldSystem(w, p, rand.New(rand.NewSource(3)))

	sys.EachStar(func(pos components.Position, _ components.Star) {
		r := math.Sqrt(float64(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z))
		if r < float64(p.StarRadius)-1e-3 || r > float64(p.StarRadius+p.StarDepth)+1e-3 {
			t.Errorf("star at radius %f outside shell [%f, %f]", r, p.StarRadius, p.StarRadius+p.StarDepth)
		}
	})
}

func TestStarfieldUpdateBounds(t *testing.T) {
	p := testStarfieldParams()
	w := ecs.NewWorld()
	sys := NewStarfieldSystem(w, p, rand.New(rand.NewSource(3)))

	half := p.SparkleScale / 2
	for frame := 0; frame < 600; frame++ {
		sys.Update(float32(frame)/60, 0.5)
	}

	sys.EachStar(func(_ components.Position, star components.Star) {
		if star.Bright < 0 || star.Bright > 1 {
			t.Errorf("star brightness %f out of range", star.Bright)
		}
	})
	sys.EachSparkle(func(pos components.Position, sp components.Sparkle) {
		if abs32(pos.X) > half || abs32(pos.Y) > half || abs32(pos.Z) > half {
			t.Errorf("sparkle escaped cube: %+v", pos)
		}
		if sp.Opacity < 0 || sp.Opacity > p.SparkleOpacity+1e-6 {
			t.Errorf("sparkle opacity %f out of range", sp.Opacity)
		}
	})
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, half, want float32
	}{
		{0, 6, 0},
		{6, 6, 6},
		{7, 6, -5},
		{-7, 6, 5},
		{25, 6, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := wrap(tt.v, tt.half); math.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("wrap(%f, %f) = %f, want %f", tt.v, tt.half, got, tt.want)
		}
	}
}
