// Package game wires the sphere simulation, scene, audio, remote control
// and telemetry into one frame loop, with or without a window.
package game

import (
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/discosculpter/audio"
	"github.com/pthm-cable/discosculpter/camera"
	"github.com/pthm-cable/discosculpter/config"
	"github.com/pthm-cable/discosculpter/remote"
	"github.com/pthm-cable/discosculpter/renderer"
	"github.com/pthm-cable/discosculpter/systems"
	"github.com/pthm-cable/discosculpter/telemetry"
	"github.com/pthm-cable/discosculpter/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 uses the config value
	OutputDir      string
	Headless       bool

	// Optional subsystems; nil disables them.
	Audio  *audio.Engine
	Remote *remote.Server
}

// Game holds the complete application state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	// Simulation
	sphere    *systems.Sphere
	world     *ecs.World
	starfield *systems.StarfieldSystem
	rotationY float32
	resetGen  uint64

	// Clock
	frame   int32
	elapsed float64

	// Probes
	scripted *systems.ScriptedProbe
	mouse    mouseProbe

	// Optional subsystems
	audio  *audio.Engine
	remote *remote.Server

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	displacements []float64

	// Presentation (nil when headless)
	headless       bool
	camera         *camera.Camera
	sprite         *renderer.Sprite
	sphereRenderer *renderer.SphereRenderer
	starRenderer   *renderer.StarfieldRenderer
	panel          *ui.ControlsPanel
	hud            *ui.HUD
	perfPanel      *ui.PerfPanel
	showPerf       bool
	screenW        int32
	screenH        int32
}

// NewGame creates a game from the global config.
func NewGame(opts Options) *Game {
	cfg := config.Cfg()

	g := &Game{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		world:    ecs.NewWorld(),
		audio:    opts.Audio,
		remote:   opts.Remote,
		logStats: opts.LogStats,
		headless: opts.Headless,
		screenW:  int32(cfg.Screen.Width),
		screenH:  int32(cfg.Screen.Height),
	}

	g.sphere = systems.NewSphere(cfg.Sphere, g.rng)
	g.starfield = systems.NewStarfieldSystem(g.world, starfieldParams(cfg), rand.New(rand.NewSource(opts.Seed+1)))
	g.scripted = &systems.ScriptedProbe{
		Period: float32(cfg.Headless.ProbePeriod),
		Duty:   float32(cfg.Headless.ProbeDuty),
		Speed:  float32(cfg.Headless.ProbeSpeed),
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(statsWindow)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("output disabled", "dir", opts.OutputDir, "error", err)
	} else if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	if g.audio != nil {
		// Starts with the first user gesture
		g.audio.SetEffect(g.sphere.Profile().Audio)
	}

	if !g.headless {
		g.initPresentation()
	}

	slog.Info("game created",
		"seed", opts.Seed,
		"particles", cfg.Sphere.ParticleCount,
		"mode", cfg.Sphere.Mode.String(),
		"effect", cfg.Sphere.Effect.String(),
		"headless", opts.Headless,
	)
	return g
}

func starfieldParams(cfg *config.Config) systems.StarfieldParams {
	s := cfg.Scene
	return systems.StarfieldParams{
		Stars:          s.Stars,
		StarRadius:     float32(s.StarRadius),
		StarDepth:      float32(s.StarDepth),
		StarSize:       float32(s.StarSize),
		TwinkleSpeed:   float32(s.TwinkleSpeed),
		Sparkles:       s.Sparkles,
		SparkleScale:   float32(s.SparkleScale),
		SparkleSize:    float32(s.SparkleSize),
		SparkleSpeed:   float32(s.SparkleSpeed),
		SparkleOpacity: float32(s.SparkleOpacity),
	}
}

// initPresentation creates the camera, renderers and UI (must be called
// after the raylib window is created).
func (g *Game) initPresentation() {
	c := g.cfg.Camera
	g.camera = camera.New(float32(c.Distance), float32(c.Fovy), float32(c.MinDistance), float32(c.MaxDistance))

	g.sprite = renderer.NewSprite(int32(g.cfg.Scene.SpriteSize), int32(g.cfg.Scene.SpriteRadius))
	g.sprite.Init()
	g.sphereRenderer = renderer.NewSphereRenderer(g.sprite)
	g.starRenderer = renderer.NewStarfieldRenderer(g.sprite, g.cfg.Scene.SparkleColor)

	g.panel = ui.NewControlsPanel(16, 16, g.cfg.Controls, g.cfg.Audio.HoverSounds)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(16, g.screenH-160)
}

// camera3D converts the orbit camera to a raylib camera.
func (g *Game) camera3D() rl.Camera3D {
	x, y, z := g.camera.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       g.camera.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// Frame returns the number of frames simulated.
func (g *Game) Frame() int32 {
	return g.frame
}

// ResetCount returns the reset counter. Every increment re-seeds the
// particles at the start of the next frame.
func (g *Game) ResetCount() uint64 {
	return g.resetGen
}

// Sphere returns the simulation state.
func (g *Game) Sphere() *systems.Sphere {
	return g.sphere
}

// Unload releases all resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.sprite != nil {
		g.sprite.Unload()
	}
}
