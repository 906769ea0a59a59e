// Package systems contains the particle simulation and the scene systems.
package systems

import (
	"math/rand"

	"github.com/pthm-cable/discosculpter/components"
)

// MaxDelta bounds the frame delta so a hitch cannot blow up the integrator.
const MaxDelta = 0.05

// Force model constants.
const (
	repulsionScale  = 80
	springScale     = 50
	viscosityScale  = 3.5
	solidDrag       = 0.90
	settleThreshold = 0.001 // L1 velocity below which solid particles stop
	minContactDist  = 0.0001
)

// Frame is the per-call input of the integrator.
type Frame struct {
	Elapsed    float32 // seconds since start, drives the cosmetic motion
	Delta      float32 // seconds since last frame, clamped by Integrate
	Contact    components.Vec3
	HasContact bool
}

// ClampDelta limits a frame delta to [0, MaxDelta].
func ClampDelta(delta float32) float32 {
	return clampFloat(delta, 0, MaxDelta)
}

// Drag returns the per-frame velocity multiplier for cfg.
// Liquid drag is floored at zero so large viscosities stop particles
// instead of reversing them.
func Drag(cfg *components.SphereConfig) float32 {
	if cfg.Mode != components.ModeLiquid {
		return solidDrag
	}
	drag := 1 - cfg.Viscosity*viscosityScale
	if drag < 0 {
		return 0
	}
	return drag
}

// Integrate advances every particle of ps by one frame and rewrites the
// display buffer. Per particle: mouse repulsion, liquid spring return,
// damping (solid settles to exactly zero), Euler position update, then the
// cosmetic displacement which only touches Display.
func Integrate(ps *ParticleSet, cfg *components.SphereConfig, profile EffectProfile, fr Frame, rng *rand.Rand) {
	dt := ClampDelta(fr.Delta)
	t := fr.Elapsed

	liquid := cfg.Mode == components.ModeLiquid
	drag := Drag(cfg)

	moldRadius := cfg.MoldRadius
	moldRadiusSq := moldRadius * moldRadius
	repel := fr.HasContact && moldRadius > 0
	forceScale := cfg.MoldStrength * repulsionScale * dt
	spring := cfg.Tension * springScale * dt
	cx, cy, cz := fr.Contact.X, fr.Contact.Y, fr.Contact.Z

	displace := profile.Displace

	pos := ps.Position
	vel := ps.Velocity
	rest := ps.Rest
	out := ps.Display

	for i := 0; i < ps.Count; i++ {
		ix, iy, iz := i*3, i*3+1, i*3+2

		px, py, pz := pos[ix], pos[iy], pos[iz]
		vx, vy, vz := vel[ix], vel[iy], vel[iz]

		// Repulsion from the contact point, linear falloff to zero at the radius
		if repel {
			dx := px - cx
			dy := py - cy
			dz := pz - cz
			distSq := dx*dx + dy*dy + dz*dz

			if distSq < moldRadiusSq {
				dist := sqrt32(distSq)
				mag := (1 - dist/moldRadius) * forceScale

				var nx, ny, nz float32 = 0, 1, 0
				if dist >= minContactDist {
					nx, ny, nz = dx/dist, dy/dist, dz/dist
				}

				vx += nx * mag
				vy += ny * mag
				vz += nz * mag
			}
		}

		if liquid {
			vx += (rest[ix] - px) * spring
			vy += (rest[iy] - py) * spring
			vz += (rest[iz] - pz) * spring
		}

		vx *= drag
		vy *= drag
		vz *= drag

		if !liquid && abs32(vx)+abs32(vy)+abs32(vz) < settleThreshold {
			vx, vy, vz = 0, 0, 0
		}

		// Velocity already carries dt from the force terms
		px += vx
		py += vy
		pz += vz

		vel[ix], vel[iy], vel[iz] = vx, vy, vz
		pos[ix], pos[iy], pos[iz] = px, py, pz

		wx, wy, wz := wobble(px, py, pz, t)
		rx, ry, rz := px+wx, py+wy, pz+wz
		if displace != nil {
			ex, ey, ez := displace(px, py, pz, t, rng)
			rx += ex
			ry += ey
			rz += ez
		}
		out[ix], out[iy], out[iz] = rx, ry, rz
	}
}
