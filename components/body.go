package components

// Star is a background point on the far shell around the scene.
// Brightness oscillates around Base with the given phase and speed.
type Star struct {
	Size   float32
	Base   float32 // resting brightness [0, 1]
	Phase  float32 // twinkle phase offset (radians)
	Speed  float32 // twinkle angular speed (radians per second)
	Bright float32 // current brightness, written by the starfield system
}

// Sparkle is a small drifting mote inside the sparkle volume.
type Sparkle struct {
	Size    float32
	Phase   float32
	Opacity float32 // current opacity, written by the starfield system
}
