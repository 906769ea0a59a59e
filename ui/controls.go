package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discosculpter/components"
	"github.com/pthm-cable/discosculpter/config"
)

// row identifies one line of the controls panel.
type row uint8

const (
	rowTitle row = iota
	rowMode
	rowEffect
	rowCount
	rowSize
	rowRadius
	rowStrength
	rowViscosity
	rowTension
	rowColorA
	rowColorB
	rowReset
)

// visibleRows returns the panel rows for cfg, top to bottom. Viscosity and
// tension only apply to liquid; the gradient only shows without an effect.
func visibleRows(cfg components.SphereConfig) []row {
	rows := []row{rowTitle, rowMode, rowEffect, rowCount, rowSize, rowRadius, rowStrength}
	if cfg.Mode == components.ModeLiquid {
		rows = append(rows, rowViscosity, rowTension)
	}
	if cfg.Effect == components.EffectNone {
		rows = append(rows, rowColorA, rowColorB)
	}
	return append(rows, rowReset)
}

func (t Theme) rowHeight(r row) int32 {
	switch r {
	case rowTitle:
		return t.HeaderFontSize + t.RowGap
	case rowMode, rowEffect, rowReset:
		return t.ButtonHeight + t.RowGap
	case rowColorA, rowColorB:
		return t.LineHeight + t.PickerHeight + t.RowGap
	}
	return t.LineHeight + t.SliderHeight + t.RowGap
}

// panelHeight returns the height of a panel showing rows.
func (t Theme) panelHeight(rows []row) int32 {
	h := 2 * t.Padding
	for _, r := range rows {
		h += t.rowHeight(r)
	}
	return h - t.RowGap
}

// PanelResult is what one frame of the panel produced.
type PanelResult struct {
	Config  components.SphereConfig // whole new snapshot
	Changed bool                    // Config differs from the input snapshot
	Reset   bool                    // reset button pressed
	Sfx     []components.Sfx        // UI sounds to play
}

// ControlsPanel is the raygui panel that edits the sphere configuration.
type ControlsPanel struct {
	renderer    *Renderer
	ranges      config.ControlsConfig
	x, y, width int32
	hoverSounds bool

	height  int32
	hovered string

	pickerA, pickerB colorPicker
}

// NewControlsPanel creates a panel at (x, y). Slider values are clamped to
// ranges.
func NewControlsPanel(x, y int32, ranges config.ControlsConfig, hoverSounds bool) *ControlsPanel {
	width := int32(ranges.PanelWidth)
	if width <= 0 {
		width = 300
	}
	return &ControlsPanel{
		renderer:    NewRenderer(),
		ranges:      ranges,
		x:           x,
		y:           y,
		width:       width,
		hoverSounds: hoverSounds,
	}
}

// Contains reports whether the screen point lies on the panel as last drawn.
func (c *ControlsPanel) Contains(px, py float32) bool {
	return px >= float32(c.x) && px < float32(c.x+c.width) &&
		py >= float32(c.y) && py < float32(c.y+c.height)
}

// Draw renders the panel for cfg and returns the edited snapshot.
func (c *ControlsPanel) Draw(cfg components.SphereConfig) PanelResult {
	r := c.renderer
	th := r.Theme
	res := PanelResult{Config: cfg}

	rows := visibleRows(cfg)
	c.height = th.panelHeight(rows)
	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := c.x + th.Padding
	y := c.y + th.Padding
	w := c.width - 2*th.Padding
	hovered := ""

	for _, rw := range rows {
		switch rw {
		case rowTitle:
			r.DrawSectionHeader(x, y, "DISCO SCULPTER")

		case rowMode:
			names := components.ModeNames()
			for i, b := range buttonRow(x, y, w, th.ButtonHeight, len(names), 6) {
				m := components.Mode(i)
				if c.button(b, strings.ToUpper(names[i]), &hovered) && res.Config.Mode != m {
					res.Config.Mode = m
					res.Sfx = append(res.Sfx, components.SfxSwitch)
				}
				if res.Config.Mode == m {
					r.DrawActiveOutline(b)
				}
			}

		case rowEffect:
			names := components.EffectNames()
			for i, b := range buttonRow(x, y, w, th.ButtonHeight, len(names), 4) {
				e := components.Effect(i)
				if c.button(b, effectLabel(names[i]), &hovered) {
					res.Config.Effect = e
					res.Sfx = append(res.Sfx, components.SfxClick)
				}
				if res.Config.Effect == e {
					r.DrawActiveOutline(b)
				}
			}

		case rowCount:
			v := c.slider(x, y, w, "Particles", fmt.Sprintf("%d", res.Config.ParticleCount),
				float64(res.Config.ParticleCount), c.ranges.ParticleCount)
			res.Config.ParticleCount = int(v)
		case rowSize:
			v := c.slider(x, y, w, "Particle size", fmt.Sprintf("%.2f", res.Config.ParticleSize),
				float64(res.Config.ParticleSize), c.ranges.ParticleSize)
			res.Config.ParticleSize = float32(v)
		case rowRadius:
			v := c.slider(x, y, w, "Brush radius", fmt.Sprintf("%.1f", res.Config.MoldRadius),
				float64(res.Config.MoldRadius), c.ranges.MoldRadius)
			res.Config.MoldRadius = float32(v)
		case rowStrength:
			v := c.slider(x, y, w, "Brush strength", fmt.Sprintf("%.2f", res.Config.MoldStrength),
				float64(res.Config.MoldStrength), c.ranges.MoldStrength)
			res.Config.MoldStrength = float32(v)
		case rowViscosity:
			v := c.slider(x, y, w, "Viscosity", fmt.Sprintf("%.3f", res.Config.Viscosity),
				float64(res.Config.Viscosity), c.ranges.Viscosity)
			res.Config.Viscosity = float32(v)
		case rowTension:
			v := c.slider(x, y, w, "Tension", fmt.Sprintf("%.3f", res.Config.Tension),
				float64(res.Config.Tension), c.ranges.Tension)
			res.Config.Tension = float32(v)

		case rowColorA:
			res.Config.ColorA = c.pickColor(x, y, w, "Gradient start", &c.pickerA, res.Config.ColorA)
		case rowColorB:
			res.Config.ColorB = c.pickColor(x, y, w, "Gradient end", &c.pickerB, res.Config.ColorB)

		case rowReset:
			b := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(th.ButtonHeight)}
			if c.button(b, "RESET SPHERE", &hovered) {
				res.Reset = true
				res.Sfx = append(res.Sfx, components.SfxClick)
			}
		}
		y += th.rowHeight(rw)
	}

	if hovered != c.hovered && hovered != "" && c.hoverSounds {
		res.Sfx = append(res.Sfx, components.SfxHover)
	}
	c.hovered = hovered

	res.Changed = res.Config != cfg
	return res
}

// button draws a raygui button and records it as hovered when the mouse is
// over it.
func (c *ControlsPanel) button(b rl.Rectangle, label string, hovered *string) bool {
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), b) {
		*hovered = label
	}
	return gui.Button(b, label)
}

// slider draws a labelled slider bar and returns the new value snapped to
// rng.
func (c *ControlsPanel) slider(x, y, w int32, label, value string, v float64, rng config.RangeConfig) float64 {
	th := c.renderer.Theme
	c.renderer.DrawLabelValue(x, y, label, value, w)
	b := rl.Rectangle{
		X:      float32(x),
		Y:      float32(y + th.LineHeight),
		Width:  float32(w),
		Height: float32(th.SliderHeight),
	}
	got := gui.SliderBar(b, "", "", float32(v), float32(rng.Min), float32(rng.Max))
	if float64(got) == float64(float32(v)) {
		return v
	}
	return rng.Clamp(float64(got))
}

// pickColor edits a gradient end with a raygui HSV picker and shows the
// current color as a swatch beside the label.
func (c *ControlsPanel) pickColor(x, y, w int32, label string, p *colorPicker, color components.Color) components.Color {
	th := c.renderer.Theme
	c.renderer.DrawLabel(x, y, label)

	sw := th.LineHeight - 4
	swatch := rl.Rectangle{X: float32(x + w - 2*sw), Y: float32(y), Width: float32(2 * sw), Height: float32(sw)}
	r, g, b := color.RGBA8()
	c.renderer.DrawColorSwatch(swatch, rl.Color{R: r, G: g, B: b, A: 255})

	// The hue bar is drawn to the right of the bounds
	hueBar := int32(gui.GetStyle(gui.COLORPICKER, gui.HUEBAR_WIDTH) + gui.GetStyle(gui.COLORPICKER, gui.HUEBAR_PADDING))
	bounds := rl.Rectangle{
		X:      float32(x),
		Y:      float32(y + th.LineHeight),
		Width:  float32(w - hueBar),
		Height: float32(th.PickerHeight),
	}

	p.sync(color)
	hsv := p.hsv
	gui.ColorPickerHSV(bounds, "", &hsv)
	return p.update(hsv)
}

// buttonRow splits a row of width w into n equal buttons separated by gap.
func buttonRow(x, y, w, h int32, n int, gap int32) []rl.Rectangle {
	if n <= 0 {
		return nil
	}
	bw := (float32(w) - float32(gap)*float32(n-1)) / float32(n)
	out := make([]rl.Rectangle, n)
	for i := range out {
		out[i] = rl.Rectangle{
			X:      float32(x) + float32(i)*(bw+float32(gap)),
			Y:      float32(y),
			Width:  bw,
			Height: float32(h),
		}
	}
	return out
}

// effectLabel shortens effect names to fit five buttons on one row.
func effectLabel(name string) string {
	if name == "lightning" {
		return "ZAP"
	}
	return strings.ToUpper(name)
}
