package game

import (
	"log/slog"

	"github.com/pthm-cable/discosculpter/telemetry"
)

// flushTelemetry closes the stats window once it has covered its duration
// and fans the result out to the log, the CSV files and remote clients.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.elapsed) {
		return
	}

	cfg := g.sphere.Config()
	g.displacements = g.sphere.Particles().Displacements(g.displacements[:0])
	stats := g.collector.Flush(g.frame, g.elapsed, telemetry.SphereSample{
		Particles:     g.sphere.Particles().Count,
		Mode:          cfg.Mode,
		Effect:        cfg.Effect,
		Displacements: g.displacements,
	})
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	if g.remote != nil {
		g.remote.Broadcast(stats)
	}
}
