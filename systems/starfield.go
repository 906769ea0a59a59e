package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/discosculpter/components"
)

// StarfieldParams configures the background stars and sparkles.
type StarfieldParams struct {
	Stars        int
	StarRadius   float32 // inner radius of the star shell
	StarDepth    float32 // shell thickness
	StarSize     float32
	TwinkleSpeed float32

	Sparkles       int
	SparkleScale   float32 // edge length of the sparkle cube
	SparkleSize    float32
	SparkleSpeed   float32
	SparkleOpacity float32
}

// StarfieldSystem spawns and animates the background entities.
type StarfieldSystem struct {
	params StarfieldParams

	starMap    *ecs.Map2[components.Position, components.Star]
	sparkleMap *ecs.Map3[components.Position, components.Velocity, components.Sparkle]

	stars    *ecs.Filter2[components.Position, components.Star]
	sparkles *ecs.Filter3[components.Position, components.Velocity, components.Sparkle]
}

// NewStarfieldSystem creates the system and spawns all entities into w.
func NewStarfieldSystem(w *ecs.World, params StarfieldParams, rng *rand.Rand) *StarfieldSystem {
	s := &StarfieldSystem{
		params:     params,
		starMap:    ecs.NewMap2[components.Position, components.Star](w),
		sparkleMap: ecs.NewMap3[components.Position, components.Velocity, components.Sparkle](w),
		stars:      ecs.NewFilter2[components.Position, components.Star](w),
		sparkles:   ecs.NewFilter3[components.Position, components.Velocity, components.Sparkle](w),
	}
	s.spawnStars(rng)
	s.spawnSparkles(rng)
	return s
}

func (s *StarfieldSystem) spawnStars(rng *rand.Rand) {
	p := s.params
	for i := 0; i < p.Stars; i++ {
		// Uniform direction, radius spread through the shell
		z := rng.Float64()*2 - 1
		theta := rng.Float64() * 2 * math.Pi
		ring := math.Sqrt(1 - z*z)
		r := float64(p.StarRadius + rng.Float32()*p.StarDepth)

		pos := components.Position{
			X: float32(r * ring * math.Cos(theta)),
			Y: float32(r * ring * math.Sin(theta)),
			Z: float32(r * z),
		}
		star := components.Star{
			Size:  p.StarSize * (0.5 + rng.Float32()),
			Base:  0.4 + rng.Float32()*0.6,
			Phase: rng.Float32() * 2 * math.Pi,
			Speed: p.TwinkleSpeed * (0.5 + rng.Float32()),
		}
		star.Bright = star.Base
		s.starMap.NewEntity(&pos, &star)
	}
}

func (s *StarfieldSystem) spawnSparkles(rng *rand.Rand) {
	p := s.params
	half := p.SparkleScale / 2
	for i := 0; i < p.Sparkles; i++ {
		pos := components.Position{
			X: (rng.Float32()*2 - 1) * half,
			Y: (rng.Float32()*2 - 1) * half,
			Z: (rng.Float32()*2 - 1) * half,
		}
		vel := components.Velocity{
			X: (rng.Float32() - 0.5) * p.SparkleSpeed,
			Y: rng.Float32() * p.SparkleSpeed,
			Z: (rng.Float32() - 0.5) * p.SparkleSpeed,
		}
		sp := components.Sparkle{
			Size:    p.SparkleSize * (0.5 + rng.Float32()),
			Phase:   rng.Float32() * 2 * math.Pi,
			Opacity: p.SparkleOpacity,
		}
		s.sparkleMap.NewEntity(&pos, &vel, &sp)
	}
}

// Update twinkles the stars and drifts the sparkles, wrapping them inside
// the sparkle cube.
func (s *StarfieldSystem) Update(elapsed, dt float32) {
	query := s.stars.Query()
	for query.Next() {
		_, star := query.Get()
		star.Bright = clamp01(star.Base * (0.75 + 0.25*sin32(elapsed*star.Speed+star.Phase)))
	}

	half := s.params.SparkleScale / 2
	sq := s.sparkles.Query()
	for sq.Next() {
		pos, vel, sp := sq.Get()
		pos.X = wrap(pos.X+vel.X*dt, half)
		pos.Y = wrap(pos.Y+vel.Y*dt, half)
		pos.Z = wrap(pos.Z+vel.Z*dt, half)
		sp.Opacity = s.params.SparkleOpacity * (0.5 + 0.5*sin32(elapsed*2+sp.Phase))
	}
}

// EachStar calls fn for every star.
func (s *StarfieldSystem) EachStar(fn func(pos components.Position, star components.Star)) {
	query := s.stars.Query()
	for query.Next() {
		pos, star := query.Get()
		fn(*pos, *star)
	}
}

// EachSparkle calls fn for every sparkle.
func (s *StarfieldSystem) EachSparkle(fn func(pos components.Position, sp components.Sparkle)) {
	query := s.sparkles.Query()
	for query.Next() {
		pos, _, sp := query.Get()
		fn(*pos, *sp)
	}
}

// wrap folds v back into [-half, half].
func wrap(v, half float32) float32 {
	if half <= 0 {
		return 0
	}
	span := 2 * half
	for v > half {
		v -= span
	}
	for v < -half {
		v += span
	}
	return v
}
