package systems

import (
	"math"

	"gonum.org/v1/gonum/blas/blas32"
)

// SphereRadius is the radius of the sphere the particles are seeded on.
const SphereRadius = 3.5

// goldenAngle is pi * (1 + sqrt(5)), the azimuth step of the Fibonacci lattice.
var goldenAngle = math.Pi * (1 + math.Sqrt(5))

// ParticleSet is the flat particle store. All buffers hold interleaved
// x,y,z (or r,g,b) triples and always have length 3*Count.
//
// Rest is written once at creation and never again. Position and Velocity
// are the physics state. Display is the render-ready copy of Position with
// cosmetic displacement applied; it is rewritten every step and never read
// back by the physics.
type ParticleSet struct {
	Count    int
	Rest     []float32
	Position []float32
	Velocity []float32
	Color    []float32
	Display  []float32
}

// NewParticleSet allocates count particles on a Fibonacci lattice over the
// sphere of radius SphereRadius. Seeding is deterministic in count.
// Negative counts yield an empty set.
func NewParticleSet(count int) *ParticleSet {
	if count < 0 {
		count = 0
	}
	n := count * 3
	ps := &ParticleSet{
		Count:    count,
		Rest:     make([]float32, n),
		Position: make([]float32, n),
		Velocity: make([]float32, n),
		Color:    make([]float32, n),
		Display:  make([]float32, n),
	}

	for i := 0; i < count; i++ {
		x, y, z := FibonacciPoint(i, count, SphereRadius)
		ix := i * 3
		ps.Rest[ix] = x
		ps.Rest[ix+1] = y
		ps.Rest[ix+2] = z
		ps.Color[ix] = 1
		ps.Color[ix+1] = 1
		ps.Color[ix+2] = 1
	}

	ps.Reset()
	return ps
}

// FibonacciPoint returns the i-th of count lattice points on a sphere of
// radius r.
func FibonacciPoint(i, count int, r float64) (x, y, z float32) {
	k := float64(i) + 0.5
	phi := math.Acos(1 - 2*k/float64(count))
	theta := goldenAngle * k

	sinPhi := math.Sin(phi)
	return float32(r * sinPhi * math.Cos(theta)),
		float32(r * sinPhi * math.Sin(theta)),
		float32(r * math.Cos(phi))
}

// Reset returns every particle to its rest position with zero velocity.
// No buffers are reallocated.
func (ps *ParticleSet) Reset() {
	if ps.Count == 0 {
		return
	}
	rest := ps.vector(ps.Rest)
	blas32.Copy(rest, ps.vector(ps.Position))
	blas32.Copy(rest, ps.vector(ps.Display))
	clear(ps.Velocity)
}

// KineticEnergy returns sum(|v|^2)/2 over all particles (unit mass).
func (ps *ParticleSet) KineticEnergy() float64 {
	if ps.Count == 0 {
		return 0
	}
	v := ps.vector(ps.Velocity)
	return float64(blas32.Dot(v, v)) / 2
}

// At returns the physics position of particle i.
func (ps *ParticleSet) At(i int) (x, y, z float32) {
	ix := i * 3
	return ps.Position[ix], ps.Position[ix+1], ps.Position[ix+2]
}

// VelocityAt returns the velocity of particle i.
func (ps *ParticleSet) VelocityAt(i int) (x, y, z float32) {
	ix := i * 3
	return ps.Velocity[ix], ps.Velocity[ix+1], ps.Velocity[ix+2]
}

// Displacements writes each particle's distance from its rest position
// into dst (grown as needed) and returns it.
func (ps *ParticleSet) Displacements(dst []float64) []float64 {
	if cap(dst) < ps.Count {
		dst = make([]float64, ps.Count)
	}
	dst = dst[:ps.Count]
	for i := range dst {
		ix := i * 3
		dx := ps.Position[ix] - ps.Rest[ix]
		dy := ps.Position[ix+1] - ps.Rest[ix+1]
		dz := ps.Position[ix+2] - ps.Rest[ix+2]
		dst[i] = math.Sqrt(float64(dx*dx + dy*dy + dz*dz))
	}
	return dst
}

func (ps *ParticleSet) vector(data []float32) blas32.Vector {
	return blas32.Vector{N: len(data), Inc: 1, Data: data}
}
