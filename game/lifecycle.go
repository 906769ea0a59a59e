package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discosculpter/audio"
	"github.com/pthm-cable/discosculpter/components"
)

// updateAudioLifecycle opens the audio device on the first user gesture,
// suspends it while the window is hidden or unfocused and resumes it when
// the window comes back.
func (g *Game) updateAudioLifecycle() {
	if g.audio == nil {
		return
	}

	hidden := rl.IsWindowMinimized() || rl.IsWindowHidden() || !rl.IsWindowFocused()
	gesture := rl.IsMouseButtonPressed(rl.MouseButtonLeft) ||
		rl.IsMouseButtonPressed(rl.MouseButtonRight) ||
		rl.GetKeyPressed() != 0

	switch {
	case hidden:
		if err := g.audio.Suspend(); err != nil {
			slog.Warn("audio suspend failed", "error", err)
		}
	case gesture && g.audio.State() == audio.StateUninitialized,
		g.audio.State() == audio.StateSuspended:
		g.activateAudio()
	}
}

// activateAudio starts or resumes the engine. A device failure disables
// audio for the rest of the session.
func (g *Game) activateAudio() {
	if err := g.audio.Activate(); err != nil {
		slog.Warn("audio disabled", "error", err)
		g.audio.Close()
		g.audio = nil
	}
}

// playSfx plays a UI sound if audio is running.
func (g *Game) playSfx(s components.Sfx) {
	if g.audio != nil {
		g.audio.PlaySfx(s)
	}
}
