package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discosculpter/components"
	"github.com/pthm-cable/discosculpter/systems"
)

// SphereRenderer draws the molding sphere as additive billboards.
type SphereRenderer struct {
	sprite *Sprite
}

// NewSphereRenderer creates a renderer drawing with sprite.
func NewSphereRenderer(sprite *Sprite) *SphereRenderer {
	return &SphereRenderer{sprite: sprite}
}

// Draw renders every particle's display position, rotated by the group's
// Y rotation, tinted by its color. Must be called inside BeginMode3D.
func (r *SphereRenderer) Draw(cam rl.Camera3D, ps *systems.ParticleSet, rotationY, size float32) {
	tex := r.sprite.Texture()

	additivePass(func() {
		for i := 0; i < ps.Count; i++ {
			ix := i * 3
			p := systems.RotateY(components.Vec3{
				X: ps.Display[ix],
				Y: ps.Display[ix+1],
				Z: ps.Display[ix+2],
			}, rotationY)

			color := tint(ps.Color[ix], ps.Color[ix+1], ps.Color[ix+2], 1)
			rl.DrawBillboard(cam, tex, rl.Vector3{X: p.X, Y: p.Y, Z: p.Z}, size, color)
		}
	})
}
