package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discosculpter/components"
)

// colorPicker holds the HSV state of one gradient end between frames, so
// the hue survives while saturation or value is zero.
type colorPicker struct {
	hsv    rl.Vector3 // X hue [0, 360), Y saturation, Z value
	color  components.Color
	synced bool
}

// sync adopts c when it differs from the color the picker last produced,
// e.g. after a remote snapshot or a config reload.
func (p *colorPicker) sync(c components.Color) {
	if p.synced && c == p.color {
		return
	}
	h, s, v := c.Hsv()
	p.hsv = rl.Vector3{X: float32(h), Y: float32(s), Z: float32(v)}
	p.color = c
	p.synced = true
}

// update takes the HSV edited by the widget and returns the resulting
// color. An untouched picker returns the synced color unchanged.
func (p *colorPicker) update(hsv rl.Vector3) components.Color {
	if hsv == p.hsv {
		return p.color
	}
	p.hsv = hsv
	p.color = components.Hsv(float64(hsv.X), float64(hsv.Y), float64(hsv.Z))
	return p.color
}
