package systems

import (
	"math"

	"github.com/pthm-cable/discosculpter/components"
)

// ProxyRadius is the radius of the invisible sphere pointer rays are cast
// against. It sits just inside the particle shell.
const ProxyRadius = 3.4

// Probe yields the current mold contact in the sphere's local frame, or
// false when there is no drag or the ray misses. Valid for one frame.
type Probe interface {
	Contact() (components.Vec3, bool)
}

// Ray is a half-line in world space. Dir need not be normalized.
type Ray struct {
	Origin components.Vec3
	Dir    components.Vec3
}

// IntersectSphere returns the nearest point where r enters or, from the
// inside, leaves the sphere of the given radius centered at the origin.
func IntersectSphere(r Ray, radius float32) (components.Vec3, bool) {
	a := r.Dir.Dot(r.Dir)
	if a == 0 {
		return components.Vec3{}, false
	}
	b := 2 * r.Origin.Dot(r.Dir)
	c := r.Origin.Dot(r.Origin) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return components.Vec3{}, false
	}
	sq := sqrt32(disc)

	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return components.Vec3{}, false
	}
	return r.Origin.Add(r.Dir.Scale(t)), true
}

// RotateY rotates v by angle radians about the +Y axis (right-handed).
func RotateY(v components.Vec3, angle float32) components.Vec3 {
	s, c := math.Sincos(float64(angle))
	sin, cos := float32(s), float32(c)
	return components.Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// LocalContact casts r against the proxy sphere of a group rotated by
// rotationY and returns the hit in the group's local frame.
func LocalContact(r Ray, rotationY float32) (components.Vec3, bool) {
	hit, ok := IntersectSphere(r, ProxyRadius)
	if !ok {
		return components.Vec3{}, false
	}
	return RotateY(hit, -rotationY), true
}

// NoProbe never reports contact.
type NoProbe struct{}

// Contact implements Probe.
func (NoProbe) Contact() (components.Vec3, bool) {
	return components.Vec3{}, false
}

// ScriptedProbe drives a contact point around the proxy sphere for headless
// runs. It presses for Duty of every Period seconds while orbiting the
// equator at Speed radians per second.
type ScriptedProbe struct {
	Period float32
	Duty   float32
	Speed  float32

	elapsed float32
}

// Advance moves the script forward by dt seconds.
func (p *ScriptedProbe) Advance(dt float32) {
	p.elapsed += dt
}

// Contact implements Probe.
func (p *ScriptedProbe) Contact() (components.Vec3, bool) {
	if p.Period <= 0 {
		return components.Vec3{}, false
	}
	phase := float32(math.Mod(float64(p.elapsed), float64(p.Period)))
	if phase >= p.Duty {
		return components.Vec3{}, false
	}
	angle := p.elapsed * p.Speed
	return components.Vec3{
		X: ProxyRadius * cos32(angle),
		Y: ProxyRadius * 0.3 * sin32(angle*0.5),
		Z: ProxyRadius * sin32(angle),
	}, true
}
