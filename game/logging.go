package game

import (
	"log/slog"

	"github.com/pthm-cable/discosculpter/telemetry"
)

// recordEvent counts e in the current stats window and logs it.
func (g *Game) recordEvent(e telemetry.Event) {
	g.collector.RecordEvent(e)
	slog.Info("sphere event", "event", e)
}
