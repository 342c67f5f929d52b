package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gekko3d/flycam"
	"github.com/gekko3d/flycam/input/scripted"
	"github.com/gekko3d/flycam/internal/replay"
)

func main() {
	scriptPath := flag.String("script", "", "tengo input script")
	configPath := flag.String("config", "", "YAML config (defaults if empty)")
	frames := flag.Int("frames", 60, "number of frames to run")
	dt := flag.Duration("dt", time.Second/60, "frame delta")
	every := flag.Int("every", 10, "record a pose every N frames")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	logger := flycam.NewLogger(os.Stderr, os.Stderr, "flycam-replay", *debug)

	if *scriptPath == "" {
		log.Fatalf("flycam-replay: -script is required")
	}
	cfg := flycam.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = flycam.LoadConfig(*configPath); err != nil {
			log.Fatalf("flycam-replay: %v", err)
		}
	}
	src, err := scripted.Load(*scriptPath)
	if err != nil {
		log.Fatalf("flycam-replay: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := replay.Run(ctx, replay.Options{
		Script: src,
		Config: cfg,
		Frames: *frames,
		Dt:     *dt,
		Every:  *every,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("flycam-replay: %v", err)
	}
	if err := replay.WriteYAML(os.Stdout, res); err != nil {
		log.Fatalf("flycam-replay: %v", err)
	}
}
