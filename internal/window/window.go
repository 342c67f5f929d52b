// Package window flies a debug camera inside a bare glfw window. There is no
// renderer; the pose is shown in the window title and logged on request.
package window

import (
	"fmt"
	"time"

	"github.com/gekko3d/flycam"
	"github.com/gekko3d/flycam/input/glfwinput"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Options struct {
	Width, Height int
	ConfigPath    string
	Debug         bool
}

const titleInterval = 250 * time.Millisecond

// Run blocks until the window is closed. The caller must be on the main
// thread.
func Run(opts Options) error {
	logger := flycam.NewDefaultLogger("flycam-glfw", opts.Debug)

	cfg := flycam.DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = flycam.LoadConfig(opts.ConfigPath); err != nil {
			return err
		}
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("window: glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	win, err := glfw.CreateWindow(opts.Width, opts.Height, "flycam", nil, nil)
	if err != nil {
		return fmt.Errorf("window: create: %w", err)
	}
	defer win.Destroy()

	source := glfwinput.New(win)
	ctrl := flycam.NewController(cfg, flycam.WithLogger(logger), flycam.WithCursorGrabber(source))
	rig := flycam.NewRig()
	cam := cfg.NewCamera()
	id, err := rig.Attach(&cam)
	if err != nil {
		return err
	}

	var watcher *flycam.ConfigWatcher
	if opts.ConfigPath != "" {
		if watcher, err = flycam.WatchConfig(opts.ConfigPath, logger); err != nil {
			logger.Warnf("config hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	in := flycam.NewInput()
	tm := flycam.NewTime(time.Time{})
	var lastTitle time.Time

	for !win.ShouldClose() {
		if watcher != nil {
			if next, ok := watcher.Poll(); ok {
				ctrl.SetConfig(next)
			}
		}

		tm.Tick(time.Now())
		source.Poll(in)
		rig.Update(ctrl, in, tm)

		if in.KeyJustPressed(flycam.KeyP) {
			logger.Infof("pose: %s", poseString(&cam))
		}
		if tm.Time.Sub(lastTitle) >= titleInterval {
			win.SetTitle("flycam  " + poseString(&cam) + "  " + ctrl.ActiveGamepad().String())
			lastTitle = tm.Time
		}
		// Without a swap chain there is no vsync to pace the loop.
		time.Sleep(time.Millisecond)
	}

	logger.Debugf("window closed, camera %s at %v", id, cam.Position)
	return nil
}

func poseString(cam *flycam.DebugCamera) string {
	p, f := cam.Position, cam.Forward
	return fmt.Sprintf("pos (%.2f, %.2f, %.2f) fwd (%.3f, %.3f, %.3f)", p[0], p[1], p[2], f[0], f[1], f[2])
}
