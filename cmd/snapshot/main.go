// Snapshot tool - runs the scripted probe for a number of frames and saves
// the resulting sphere to a PNG file for inspection.
//
// Usage: go run ./cmd/snapshot -frames 300 -effect fire -out sphere.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discosculpter/components"
	"github.com/pthm-cable/discosculpter/config"
	"github.com/pthm-cable/discosculpter/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "sphere.png", "Output PNG path")
	width := flag.Int("width", 1024, "Render width")
	height := flag.Int("height", 1024, "Render height")
	frames := flag.Int("frames", 240, "Frames to simulate before rendering")
	seed := flag.Int64("seed", 1, "RNG seed")
	mode := flag.String("mode", "", "Override the sculpt mode (solid, liquid)")
	effect := flag.String("effect", "", "Override the effect (none, fire, water, toxic, lightning)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *mode != "" {
		m, err := components.ParseMode(*mode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		cfg.Sphere.Mode = m
	}
	if *effect != "" {
		e, err := components.ParseEffect(*effect)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		cfg.Sphere.Effect = e
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Snapshot")
	defer rl.CloseWindow()

	g := game.NewGame(game.Options{Seed: *seed})
	defer g.Unload()

	for i := 0; i < *frames; i++ {
		g.UpdateHeadless()
	}

	if err := g.SaveSnapshot(*outPath, int32(*width), int32(*height)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Sphere rendered to: %s (%dx%d, frame %d)\n", *outPath, *width, *height, g.Frame())
}
