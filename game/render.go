package game

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discosculpter/telemetry"
	"github.com/pthm-cable/discosculpter/ui"
)

const controlsLegend = "Left drag: mold | Right drag: orbit | Wheel: zoom | R: reset | P: perf | Home: camera"

// Update runs one windowed frame: audio lifecycle, input, then the
// simulation with the mouse probe. The frame timing ends in Draw.
func (g *Game) Update() {
	g.perfCollector.StartFrame()
	g.perfCollector.RecordFrame()

	g.perfCollector.StartPhase(telemetry.PhaseAudio)
	g.updateAudioLifecycle()

	g.perfCollector.StartPhase(telemetry.PhaseProbe)
	g.handleInput()

	g.step(rl.GetFrameTime(), &g.mouse)
}

// Draw renders the scene and the UI, and applies what the controls panel
// produced.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)
	rl.BeginDrawing()
	g.drawScene()

	cfg := g.sphere.Config()
	g.handlePanel(g.panel.Draw(cfg))

	hud := ui.HUDData{
		Particles:    g.sphere.Particles().Count,
		Mode:         cfg.Mode.String(),
		Effect:       cfg.Effect.String(),
		Frame:        g.frame,
		FPS:          rl.GetFPS(),
		Molding:      g.mouse.active,
		AudioState:   "off",
		ScreenWidth:  g.screenW,
		ScreenHeight: g.screenH,
	}
	if g.audio != nil {
		hud.AudioState = g.audio.State().String()
	}
	if g.remote != nil {
		hud.Remote = g.remote.Addr()
		hud.RemoteCount = g.remote.Clients()
	}
	g.hud.Draw(hud)
	g.hud.DrawControls(g.screenW, g.screenH, controlsLegend)

	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	rl.EndDrawing()
	g.perfCollector.EndFrame()
}

// drawScene clears to the background and draws the stars and the sphere.
func (g *Game) drawScene() {
	r, gr, b := g.cfg.Scene.Background.RGBA8()
	rl.ClearBackground(rl.Color{R: r, G: gr, B: b, A: 255})

	cam := g.camera3D()
	rl.BeginMode3D(cam)
	g.starRenderer.Draw(cam, g.starfield)
	g.sphereRenderer.Draw(cam, g.sphere.Particles(), g.rotationY, g.sphere.Config().ParticleSize)
	rl.EndMode3D()
}

// SaveSnapshot renders the scene without UI into a width x height PNG.
// The game must have been created with a window.
func (g *Game) SaveSnapshot(path string, width, height int32) error {
	if g.headless {
		return errors.New("snapshot needs a window")
	}

	target := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	g.drawScene()
	rl.EndTextureMode()

	// Render textures are stored bottom-up
	img := rl.LoadImageFromTexture(target.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)

	if !rl.ExportImage(*img, path) {
		return fmt.Errorf("exporting %s", path)
	}
	return nil
}

// handlePanel plays the panel's sounds and applies its snapshot and reset.
func (g *Game) handlePanel(res ui.PanelResult) {
	for _, s := range res.Sfx {
		g.playSfx(s)
	}
	if res.Changed {
		g.applyConfig(res.Config)
	}
	if res.Reset {
		g.requestReset()
	}
}
