package telemetry

import (
	"math"

	"github.com/pthm-cable/discosculpter/components"
)

// Collector accumulates per-frame samples and events within time windows
// and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartFrame int32
	windowStartSec   float64

	frames        int
	contactFrames int
	energySum     float64
	energyMax     float64

	events [len(eventNames)]int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordFrame records one integrator frame.
func (c *Collector) RecordFrame(contact bool, kineticEnergy float64) {
	c.frames++
	if contact {
		c.contactFrames++
	}
	c.energySum += kineticEnergy
	c.energyMax = math.Max(c.energyMax, kineticEnergy)
}

// RecordEvent counts a discrete event.
func (c *Collector) RecordEvent(e Event) {
	if int(e.Type) < len(c.events) {
		c.events[e.Type]++
	}
}

// ShouldFlush returns true if the window has covered its duration.
func (c *Collector) ShouldFlush(simTimeSec float64) bool {
	return simTimeSec-c.windowStartSec >= c.windowDurationSec
}

// SphereSample is the sphere state sampled at window end.
type SphereSample struct {
	Particles     int
	Mode          components.Mode
	Effect        components.Effect
	Displacements []float64 // per-particle distance from rest, reordered by Flush
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentFrame int32, simTimeSec float64, sample SphereSample) WindowStats {
	disp := ComputeDisplacementStats(sample.Displacements)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		SimTimeSec:       simTimeSec,
		Frames:           c.frames,

		Particles: sample.Particles,
		Mode:      sample.Mode.String(),
		Effect:    sample.Effect.String(),

		ContactFrames: c.contactFrames,
		EnergyMax:     c.energyMax,

		DispMean: disp.Mean,
		DispStd:  disp.Std,
		DispP50:  disp.P50,
		DispP90:  disp.P90,
		DispMax:  disp.Max,

		Resets:        c.events[EventReset],
		Rebuilds:      c.events[EventRebuild],
		ModeSwitches:  c.events[EventModeSwitch],
		EffectChanges: c.events[EventEffectSwitch],
		RemoteConfigs: c.events[EventRemoteConfig],
	}
	if c.frames > 0 {
		stats.ContactRatio = float64(c.contactFrames) / float64(c.frames)
		stats.EnergyMean = c.energySum / float64(c.frames)
	}

	// Reset for next window
	c.windowStartFrame = currentFrame
	c.windowStartSec = simTimeSec
	c.frames = 0
	c.contactFrames = 0
	c.energySum = 0
	c.energyMax = 0
	c.events = [len(eventNames)]int{}

	return stats
}

// WindowDuration returns the window length in seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
