package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// passOps are the raylib state calls around a sprite pass.
type passOps struct {
	beginBlend func(mode rl.BlendMode)
	endBlend   func()
	depthWrite func(on bool)
}

var ops = passOps{
	beginBlend: rl.BeginBlendMode,
	endBlend:   rl.EndBlendMode,
	depthWrite: func(on bool) {
		if on {
			rl.EnableDepthMask()
		} else {
			rl.DisableDepthMask()
		}
	},
}

// additivePass runs draw with additive blending and depth writes off, so
// the transparent corners of near sprites never hide sprites behind them.
// Blend mode changes flush the batch, so the mask is switched after the
// begin flush and restored after the end flush.
func additivePass(draw func()) {
	ops.beginBlend(rl.BlendAdditive)
	ops.depthWrite(false)
	draw()
	ops.endBlend()
	ops.depthWrite(true)
}
