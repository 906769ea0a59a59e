package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discosculpter/components"
	"github.com/pthm-cable/discosculpter/systems"
)

// StarfieldRenderer draws the background stars and the sparkle motes.
type StarfieldRenderer struct {
	sprite       *Sprite
	sparkleColor components.Color
}

// NewStarfieldRenderer creates a renderer drawing with sprite. Sparkles are
// tinted with sparkleColor; stars are white.
func NewStarfieldRenderer(sprite *Sprite, sparkleColor components.Color) *StarfieldRenderer {
	return &StarfieldRenderer{sprite: sprite, sparkleColor: sparkleColor}
}

// Draw renders the scene entities. Must be called inside BeginMode3D.
func (r *StarfieldRenderer) Draw(cam rl.Camera3D, field *systems.StarfieldSystem) {
	tex := r.sprite.Texture()
	sc := r.sparkleColor

	additivePass(func() {
		field.EachStar(func(pos components.Position, star components.Star) {
			c := tint(star.Bright, star.Bright, star.Bright, 1)
			rl.DrawBillboard(cam, tex, rl.Vector3{X: pos.X, Y: pos.Y, Z: pos.Z}, star.Size, c)
	})
	field.EachSparkle(func(pos components.Position, sp components.Sparkle) {
		c := tint(sc.R*sp.Opacity, sc.G*sp.Opacity, sc.B*sp.Opacity, 1)
		rl.DrawBillboard(cam, tex, rl.Vector3{X: pos.X, Y: pos.Y, Z: pos.Z}, sp.Size, c)
	})
	})
}
