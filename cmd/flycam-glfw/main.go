package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/gekko3d/flycam/internal/window"
)

func init() {
	// glfw event polling must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config, reloaded on change")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	if err := window.Run(window.Options{
		Width:      *width,
		Height:     *height,
		ConfigPath: *configPath,
		Debug:      *debug,
	}); err != nil {
		log.Fatalf("flycam-glfw: %v", err)
	}
}
