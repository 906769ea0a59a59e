package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/discosculpter/audio"
	"github.com/pthm-cable/discosculpter/config"
	"github.com/pthm-cable/discosculpter/game"
	"github.com/pthm-cable/discosculpter/remote"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by the scripted probe")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	listen := flag.String("listen", "", "Address for the websocket control server (empty = use config)")
	mute := flag.Bool("mute", false, "Disable audio")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
	}

	if !*mute && !*headless && cfg.Audio.Enabled {
		opts.Audio = audio.NewEngine(audio.Config{
			SampleRate:   cfg.Audio.SampleRate,
			BufferMillis: cfg.Audio.BufferMillis,
			MasterGain:   cfg.Audio.MasterGain,
			RumbleCutoff: cfg.Audio.RumbleCutoff,
			RumbleGain:   cfg.Audio.RumbleGain,
			Seed:         rngSeed,
		}, audio.Speaker{})
	}

	addr := cfg.Server.Listen
	if *listen != "" {
		addr = *listen
	}
	if addr != "" {
		srv := remote.NewServer(cfg.Controls, cfg.Server.CommandBuffer)
		if err := srv.Start(addr); err != nil {
			slog.Error("failed to start remote server", "addr", addr, "error", err)
			os.Exit(1)
		}
		slog.Info("remote server listening", "addr", srv.Addr())
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				slog.Warn("remote server shutdown", "error", err)
			}
		}()
		opts.Remote = srv
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g := game.NewGame(opts)
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"max_frames", *maxFrames,
		)

		for {
			g.UpdateHeadless()

			if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
				slog.Info("max frames reached", "frame", g.Frame())
				return
			}
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGame(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
			break
		}
	}
}
