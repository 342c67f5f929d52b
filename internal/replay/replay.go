// Package replay runs a scripted input trace headlessly and reports the
// resulting camera poses.
package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gekko3d/flycam"
	"github.com/gekko3d/flycam/input/scripted"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Script *scripted.Source
	Config flycam.Config
	Frames int
	Dt     time.Duration
	// Every selects which frames are recorded; the last frame always is.
	Every  int
	Logger flycam.Logger
}

type FramePose struct {
	Frame    int        `yaml:"frame"`
	Position [3]float32 `yaml:"position,flow"`
	Forward  [3]float32 `yaml:"forward,flow"`
	Up       [3]float32 `yaml:"up,flow"`
}

type Diagnostic struct {
	Frame   int    `yaml:"frame"`
	Event   string `yaml:"event"`
	Gamepad int    `yaml:"gamepad_id"`
	Name    string `yaml:"gamepad_name,omitempty"`
}

type Result struct {
	Frames      int          `yaml:"frames"`
	Poses       []FramePose  `yaml:"poses"`
	Diagnostics []Diagnostic `yaml:"diagnostics,omitempty"`
}

// Run feeds opts.Frames frames of scripted input through a controller and a
// single default camera. It stops early if ctx is cancelled between frames.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Script == nil {
		return Result{}, errors.New("replay: no script")
	}
	if opts.Frames <= 0 {
		return Result{}, fmt.Errorf("replay: frames must be positive, got %d", opts.Frames)
	}
	if opts.Dt <= 0 {
		opts.Dt = time.Second / 60
	}
	if opts.Every <= 0 {
		opts.Every = 1
	}
	if opts.Logger == nil {
		opts.Logger = flycam.NewNopLogger()
	}

	diag := flycam.NewChannelDiagnostics(64)
	ctrl := flycam.NewController(opts.Config,
		flycam.WithLogger(opts.Logger),
		flycam.WithDiagnostics(flycam.MultiDiagnostics{diag, flycam.LogDiagnostics{Logger: opts.Logger}}),
	)
	rig := flycam.NewRig()
	cam := opts.Config.NewCamera()
	id, err := rig.Attach(&cam)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	in := flycam.NewInput()
	tm := flycam.NewTime(time.Unix(0, 0))
	var res Result

	for frame := 0; frame < opts.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("replay: stopped at frame %d: %w", frame, err)
		}
		tm.Advance(opts.Dt)
		if err := opts.Script.Poll(ctx, in, tm.DeltaSeconds()); err != nil {
			return res, fmt.Errorf("replay: %w", err)
		}
		rig.Update(ctrl, in, tm)
		res.Frames = frame + 1

	drain:
		for {
			select {
			case ev := <-diag.C:
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					Frame:   frame,
					Event:   string(ev.Kind),
					Gamepad: int(ev.Gamepad),
					Name:    ev.Name,
				})
			default:
				break drain
			}
		}

		if frame%opts.Every == 0 || frame == opts.Frames-1 {
			c, _ := rig.Camera(id)
			res.Poses = append(res.Poses, FramePose{
				Frame:    frame,
				Position: c.Position,
				Forward:  c.Forward,
				Up:       c.Up,
			})
		}
	}
	return res, nil
}

func WriteYAML(w io.Writer, res Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return enc.Close()
}
