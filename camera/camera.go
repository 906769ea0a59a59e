// Package camera provides an orbit camera around the scene origin.
package camera

import "math"

// Pitch stays short of the poles so the up vector never flips.
const maxPitch = math.Pi/2 - 0.01

// Camera orbits the origin at a fixed target. There is no pan.
type Camera struct {
	// Orbit angles in radians. Yaw 0 and pitch 0 look down -Z from +Z.
	Yaw, Pitch float32

	// Distance from the target
	Distance float32

	// Vertical field of view in degrees
	Fovy float32

	// Zoom constraints
	MinDistance, MaxDistance float32

	initialDistance float32
}

// New creates a camera on the +Z axis at the given distance.
func New(distance, fovy, minDistance, maxDistance float32) *Camera {
	c := &Camera{
		Fovy:            fovy,
		MinDistance:     minDistance,
		MaxDistance:     maxDistance,
		initialDistance: distance,
	}
	c.SetDistance(distance)
	return c
}

// Position returns the camera position in world coordinates.
func (c *Camera) Position() (x, y, z float32) {
	sy, cy := math.Sincos(float64(c.Yaw))
	sp, cp := math.Sincos(float64(c.Pitch))
	d := float64(c.Distance)
	return float32(d * cp * sy), float32(d * sp), float32(d * cp * cy)
}

// Orbit rotates the camera by a screen drag of (dx, dy) pixels. Dragging
// right moves the camera left around the target, as with a turntable.
func (c *Camera) Orbit(dx, dy, radiansPerPixel float32) {
	c.Yaw = wrapAngle(c.Yaw - dx*radiansPerPixel)
	c.Pitch = clamp(c.Pitch+dy*radiansPerPixel, -maxPitch, maxPitch)
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// Zoom moves the camera toward the target by wheel notches. Positive
// notches zoom in.
func (c *Camera) Zoom(notches, step float32) {
	c.SetDistance(c.Distance - notches*step)
}

// Reset returns the camera to its initial position.
func (c *Camera) Reset() {
	c.Yaw = 0
	c.Pitch = 0
	c.SetDistance(c.initialDistance)
}

// wrapAngle folds a into (-pi, pi].
func wrapAngle(a float32) float32 {
	r := float32(math.Mod(float64(a)+math.Pi, 2*math.Pi))
	if r < 0 {
		r += 2 * math.Pi
	}
	return r - math.Pi
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
