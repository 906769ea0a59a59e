package game

import (
	"log/slog"

	"github.com/pthm-cable/discosculpter/components"
	"github.com/pthm-cable/discosculpter/remote"
	"github.com/pthm-cable/discosculpter/systems"
	"github.com/pthm-cable/discosculpter/telemetry"
)

// UpdateHeadless runs one frame at the configured fixed delta with the
// scripted probe.
func (g *Game) UpdateHeadless() {
	dt := g.cfg.Derived.DT32

	g.perfCollector.StartFrame()
	g.perfCollector.StartPhase(telemetry.PhaseProbe)
	g.scripted.Advance(dt)
	g.step(dt, g.scripted)
	g.perfCollector.EndFrame()
}

// step runs one frame of the simulation. Remote commands are applied
// first, then any pending reset, then the integrator and the scene.
func (g *Game) step(delta float32, probe systems.Probe) {
	g.perfCollector.StartPhase(telemetry.PhaseCommands)
	g.drainCommands()
	if g.sphere.SyncReset(g.resetGen) {
		g.recordEvent(telemetry.NewResetEvent(g.frame))
	}

	g.perfCollector.StartPhase(telemetry.PhaseIntegrate)
	fr := g.sphere.Step(float32(g.elapsed), delta, probe)
	g.rotationY += g.cfg.Derived.RotationSpeed

	dt := systems.ClampDelta(delta)
	g.perfCollector.StartPhase(telemetry.PhaseScene)
	g.starfield.Update(float32(g.elapsed), dt)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordFrame(fr.HasContact, g.sphere.Particles().KineticEnergy())
	g.frame++
	// Animation time follows the wall clock even when a hitch frame was
	// clamped for the integrator.
	if delta > 0 {
		g.elapsed += float64(delta)
	}
	g.flushTelemetry()
}

// drainCommands applies everything queued by the remote server.
func (g *Game) drainCommands() {
	if g.remote == nil {
		return
	}
	g.remote.Drain(func(cmd remote.Command) {
		switch cmd.Kind {
		case remote.CommandConfig:
			g.recordEvent(telemetry.NewRemoteConfigEvent(g.frame))
			g.applyConfig(cmd.Merge(g.sphere.Config()))
		case remote.CommandReset:
			g.requestReset()
		}
	})
}

// applyConfig replaces the sphere configuration and reacts to what changed.
func (g *Game) applyConfig(next components.SphereConfig) {
	change := g.sphere.Apply(next)

	if change.Has(systems.ChangeRebuild) {
		g.recordEvent(telemetry.NewRebuildEvent(g.frame, next.ParticleCount))
	}
	if change.Has(systems.ChangeMode) {
		g.recordEvent(telemetry.NewModeSwitchEvent(g.frame, next.Mode))
	}
	if change.Has(systems.ChangeEffect) {
		g.recordEvent(telemetry.NewEffectSwitchEvent(g.frame, next.Effect))
		if g.audio != nil {
			g.audio.SetEffect(g.sphere.Profile().Audio)
		}
	}
}

// requestReset bumps the reset counter; the particles return to rest at
// the start of the next frame.
func (g *Game) requestReset() {
	g.resetGen++
	slog.Debug("reset requested", "count", g.resetGen)
}
