package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discosculpter/components"
	"github.com/pthm-cable/discosculpter/systems"
)

// mouseProbe holds the left-drag contact computed at the start of a frame.
type mouseProbe struct {
	contact components.Vec3
	active  bool
	onPanel bool // the current drag started on the controls panel
}

// Contact implements systems.Probe.
func (p *mouseProbe) Contact() (components.Vec3, bool) {
	return p.contact, p.active
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.requestReset()
		g.playSfx(components.SfxClick)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	// Camera controls
	g.handleCameraInput()

	g.updateMouseProbe()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenW = int32(rl.GetScreenWidth())
	g.screenH = int32(rl.GetScreenHeight())
	g.perfPanel.SetPosition(16, g.screenH-160)
}

// handleCameraInput processes orbit and zoom controls.
func (g *Game) handleCameraInput() {
	mp := rl.GetMousePosition()

	// Right drag orbits
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Orbit(d.X, d.Y, float32(g.cfg.Camera.OrbitSpeed))
	}

	// Wheel zooms unless scrolling over the panel
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !g.panel.Contains(mp.X, mp.Y) {
		g.camera.Zoom(wheel, float32(g.cfg.Camera.ZoomSpeed))
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// updateMouseProbe casts the cursor ray against the proxy sphere while the
// left button is held. Drags that start on the panel never mold.
func (g *Game) updateMouseProbe() {
	mp := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.mouse.onPanel = g.panel.Contains(mp.X, mp.Y)
	}

	g.mouse.active = false
	if !rl.IsMouseButtonDown(rl.MouseButtonLeft) || g.mouse.onPanel {
		return
	}

	ray := rl.GetScreenToWorldRay(mp, g.camera3D())
	g.mouse.contact, g.mouse.active = systems.LocalContact(systems.Ray{
		Origin: components.Vec3{X: ray.Position.X, Y: ray.Position.Y, Z: ray.Position.Z},
		Dir:    components.Vec3{X: ray.Direction.X, Y: ray.Direction.Y, Z: ray.Direction.Z},
	}, g.rotationY)
}
