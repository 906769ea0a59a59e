// Package renderer draws the sphere particles and the background scene
// with raylib.
package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Sprite is a crisp white disc on a transparent square, tinted per draw.
type Sprite struct {
	size, radius int32

	texture     rl.Texture2D
	initialized bool
}

// NewSprite creates a sprite of size pixels with a disc of radius pixels.
func NewSprite(size, radius int32) *Sprite {
	if size < 2 {
		size = 2
	}
	if radius <= 0 || radius > size/2 {
		radius = size / 2
	}
	return &Sprite{size: size, radius: radius}
}

// Init uploads the texture (must be called after the raylib window is created).
func (s *Sprite) Init() {
	if s.initialized {
		return
	}

	img := rl.GenImageColor(int(s.size), int(s.size), rl.Blank)
	rl.ImageDrawCircle(img, s.size/2, s.size/2, s.radius, rl.White)
	s.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(s.texture, rl.FilterBilinear)

	s.initialized = true
}

// Texture returns the GPU texture, uploading it on first use.
func (s *Sprite) Texture() rl.Texture2D {
	if !s.initialized {
		s.Init()
	}
	return s.texture
}

// Unload frees resources.
func (s *Sprite) Unload() {
	if s.initialized {
		rl.UnloadTexture(s.texture)
		s.initialized = false
	}
}

// tint converts a [0, 1] RGB triple and opacity to a raylib color.
func tint(r, g, b, a float32) rl.Color {
	return rl.Color{R: unit8(r), G: unit8(g), B: unit8(b), A: unit8(a)}
}

func unit8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
