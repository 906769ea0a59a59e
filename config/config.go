// Package config provides configuration loading and access for the sculpter.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/discosculpter/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig            `yaml:"screen"`
	Sphere    components.SphereConfig `yaml:"sphere"`
	Controls  ControlsConfig          `yaml:"controls"`
	Camera    CameraConfig            `yaml:"camera"`
	Scene     SceneConfig             `yaml:"scene"`
	Audio     AudioConfig             `yaml:"audio"`
	Telemetry TelemetryConfig         `yaml:"telemetry"`
	Headless  HeadlessConfig          `yaml:"headless"`
	Server    ServerConfig            `yaml:"server"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// RangeConfig is a slider range. Step 0 means continuous.
type RangeConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Clamp limits v to the range and snaps it to the step grid.
func (r RangeConfig) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	if r.Step > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

// ControlsConfig holds the slider ranges of the controls panel. Remote
// snapshots are clamped to the same ranges.
type ControlsConfig struct {
	ParticleCount RangeConfig `yaml:"particle_count"`
	ParticleSize  RangeConfig `yaml:"particle_size"`
	MoldRadius    RangeConfig `yaml:"mold_radius"`
	MoldStrength  RangeConfig `yaml:"mold_strength"`
	Viscosity     RangeConfig `yaml:"viscosity"`
	Tension       RangeConfig `yaml:"tension"`
	PanelWidth    int         `yaml:"panel_width"`
}

// Clamp returns cfg with every numeric field inside its slider range and
// mode/effect forced to known values.
func (c ControlsConfig) Clamp(cfg components.SphereConfig) components.SphereConfig {
	cfg.ParticleCount = int(c.ParticleCount.Clamp(float64(cfg.ParticleCount)))
	cfg.ParticleSize = float32(c.ParticleSize.Clamp(float64(cfg.ParticleSize)))
	cfg.MoldRadius = float32(c.MoldRadius.Clamp(float64(cfg.MoldRadius)))
	cfg.MoldStrength = float32(c.MoldStrength.Clamp(float64(cfg.MoldStrength)))
	cfg.Viscosity = float32(c.Viscosity.Clamp(float64(cfg.Viscosity)))
	cfg.Tension = float32(c.Tension.Clamp(float64(cfg.Tension)))
	if cfg.Mode != components.ModeLiquid {
		cfg.Mode = components.ModeSolid
	}
	if int(cfg.Effect) >= components.EffectCount() {
		cfg.Effect = components.EffectNone
	}
	return cfg
}

// CameraConfig holds the orbit camera parameters.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"` // initial distance from the origin along +Z
	Fovy        float64 `yaml:"fovy"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	OrbitSpeed  float64 `yaml:"orbit_speed"` // radians per pixel of right-drag
	ZoomSpeed   float64 `yaml:"zoom_speed"`  // distance per wheel notch
}

// SceneConfig holds the background and sprite parameters.
type SceneConfig struct {
	Background     components.Color `yaml:"background"`
	RotationSpeed  float64          `yaml:"rotation_speed"` // radians per frame about Y
	Stars          int              `yaml:"stars"`
	StarRadius     float64          `yaml:"star_radius"`
	StarDepth      float64          `yaml:"star_depth"`
	StarSize       float64          `yaml:"star_size"`
	TwinkleSpeed   float64          `yaml:"twinkle_speed"`
	Sparkles       int              `yaml:"sparkles"`
	SparkleScale   float64          `yaml:"sparkle_scale"`
	SparkleSize    float64          `yaml:"sparkle_size"`
	SparkleSpeed   float64          `yaml:"sparkle_speed"`
	SparkleColor   components.Color `yaml:"sparkle_color"`
	SparkleOpacity float64          `yaml:"sparkle_opacity"`
	SpriteSize     int              `yaml:"sprite_size"`   // particle texture edge in pixels
	SpriteRadius   float64          `yaml:"sprite_radius"` // circle radius inside the texture
}

// AudioConfig holds the audio engine parameters.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	SampleRate   int     `yaml:"sample_rate"`
	BufferMillis int     `yaml:"buffer_millis"`
	MasterGain   float64 `yaml:"master_gain"`
	RumbleCutoff float64 `yaml:"rumble_cutoff"`
	RumbleGain   float64 `yaml:"rumble_gain"`
	HoverSounds  bool    `yaml:"hover_sounds"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// HeadlessConfig holds the scripted run parameters.
type HeadlessConfig struct {
	DT          float64 `yaml:"dt"`
	ProbePeriod float64 `yaml:"probe_period"`
	ProbeDuty   float64 `yaml:"probe_duty"`
	ProbeSpeed  float64 `yaml:"probe_speed"`
}

// ServerConfig holds remote control parameters.
type ServerConfig struct {
	Listen        string `yaml:"listen"` // empty disables the server
	CommandBuffer int    `yaml:"command_buffer"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32     float32 // Screen.Width as float32
	ScreenH32     float32 // Screen.Height as float32
	DT32          float32 // Headless.DT as float32
	RotationSpeed float32 // Scene.RotationSpeed as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.Sphere = cfg.Controls.Clamp(cfg.Sphere)
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the loop cannot run with.
func (c *Config) validate() error {
	for name, r := range map[string]RangeConfig{
		"particle_count": c.Controls.ParticleCount,
		"particle_size":  c.Controls.ParticleSize,
		"mold_radius":    c.Controls.MoldRadius,
		"mold_strength":  c.Controls.MoldStrength,
		"viscosity":      c.Controls.Viscosity,
		"tension":        c.Controls.Tension,
	} {
		if r.Min > r.Max {
			return fmt.Errorf("controls.%s: min %g exceeds max %g", name, r.Min, r.Max)
		}
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MinDistance > c.Camera.MaxDistance {
		return fmt.Errorf("camera: invalid distance range [%g, %g]", c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("telemetry.stats_window must be positive, got %g", c.Telemetry.StatsWindow)
	}
	if c.Headless.DT <= 0 {
		return fmt.Errorf("headless.dt must be positive, got %g", c.Headless.DT)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.DT32 = float32(c.Headless.DT)
	c.Derived.RotationSpeed = float32(c.Scene.RotationSpeed)

	if c.Server.CommandBuffer <= 0 {
		c.Server.CommandBuffer = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
