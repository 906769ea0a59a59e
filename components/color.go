package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with channels in [0, 1], stored as float32 to match
// the particle color buffer.
type Color struct {
	R, G, B float32
}

// FromColorful narrows a colorful.Color to a Color.
func FromColorful(c colorful.Color) Color {
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}

// Colorful widens c for color-space math.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// Hex returns a Color from a 24-bit 0xRRGGBB value.
func Hex(v uint32) Color {
	c, err := colorful.Hex(fmt.Sprintf("#%06x", v&0xffffff))
	if err != nil {
		panic(err)
	}
	return FromColorful(c)
}

// ParseColor parses "#rrggbb" or "#rgb" (the leading '#' is optional).
func ParseColor(s string) (Color, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(digits) != 6 && len(digits) != 3 {
		return Color{}, fmt.Errorf("color %q: want 3 or 6 hex digits", s)
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// Lerp returns the RGB interpolation between c and o at t.
func (c Color) Lerp(o Color, t float32) Color {
	return FromColorful(c.Colorful().BlendRgb(o.Colorful(), float64(t)))
}

// Hsv returns hue in degrees [0, 360) with saturation and value in [0, 1].
// Grays have hue 0.
func (c Color) Hsv() (h, s, v float64) {
	return c.Colorful().Clamped().Hsv()
}

// Hsv returns the color for hue degrees (wrapped into [0, 360)) with
// saturation and value clamped to [0, 1].
func Hsv(h, s, v float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return FromColorful(colorful.Hsv(h, clamp01(s), clamp01(v)))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// RGBA8 returns the color as 8-bit channels.
func (c Color) RGBA8() (r, g, b uint8) {
	return c.Colorful().Clamped().RGB255()
}

// String returns the color as "#rrggbb".
func (c Color) String() string {
	return c.Colorful().Clamped().Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
