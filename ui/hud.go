package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discosculpter/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Particles    int
	Mode         string
	Effect       string
	Frame        int32
	FPS          int32
	Molding      bool
	AudioState   string
	Remote       string // listen address, empty when disabled
	RemoteCount  int
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the status lines in the top right corner.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	lines := []string{
		fmt.Sprintf("%d particles | %s | %s", data.Particles, data.Mode, data.Effect),
		fmt.Sprintf("Frame: %d | FPS: %d", data.Frame, data.FPS),
		fmt.Sprintf("Audio: %s", data.AudioState),
	}
	if data.Remote != "" {
		lines = append(lines, fmt.Sprintf("Remote: %s (%d)", data.Remote, data.RemoteCount))
	}

	th := h.renderer.Theme
	y := int32(10)
	for _, line := range lines {
		w := rl.MeasureText(line, 16)
		rl.DrawText(line, data.ScreenWidth-w-10, y, 16, th.LabelColor)
		y += 20
	}

	if data.Molding {
		w := rl.MeasureText("MOLDING", 16)
		rl.DrawText("MOLDING", data.ScreenWidth-w-10, y, 16, th.SectionHeader)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	w := rl.MeasureText(controls, 14)
	rl.DrawText(controls, (screenWidth-w)/2, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, p.renderer.Theme.ValueColor)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s  FPS: %.0f",
		stats.AvgFrameDuration.Round(time.Microsecond),
		stats.MaxFrameDuration.Round(time.Microsecond),
		stats.FPS,
	), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases() {
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
