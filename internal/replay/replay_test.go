package replay

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/gekko3d/flycam"
	"github.com/gekko3d/flycam/input/scripted"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const flyForward = `
pad = 1
if frame == 0 {
	connect = [{id: 1, name: "replay pad"}]
}
if frame < 30 {
	keys = ["W"]
}
if frame == 59 {
	disconnect = [1]
}
`

func script(t *testing.T, src string) *scripted.Source {
	t.Helper()
	s, err := scripted.Compile([]byte(src))
	require.NoError(t, err)
	return s
}

func TestRun(t *testing.T) {
	res, err := Run(context.Background(), Options{
		Script: script(t, flyForward),
		Config: flycam.DefaultConfig(),
		Frames: 60,
		Dt:     time.Second / 60,
		Every:  20,
	})
	require.NoError(t, err)

	assert.Equal(t, 60, res.Frames)
	require.Len(t, res.Poses, 4)
	assert.Equal(t, []int{0, 20, 40, 59}, []int{res.Poses[0].Frame, res.Poses[1].Frame, res.Poses[2].Frame, res.Poses[3].Frame})

	// 30 frames of W at 0.5 * 100 units per second
	last := res.Poses[3]
	assert.InDelta(t, 25, last.Position[0], 1e-3)
	assert.InDelta(t, 0, last.Position[1], 1e-4)
	assert.InDelta(t, 1, last.Forward[0], 1e-6)

	assert.Equal(t, []Diagnostic{
		{Frame: 0, Event: "active_gamepad_set", Gamepad: 1, Name: "replay pad"},
		{Frame: 59, Event: "active_gamepad_removed", Gamepad: 1},
	}, res.Diagnostics)
}

func TestRunIsDeterministic(t *testing.T) {
	const src = `
keys = frame % 2 == 0 ? ["W", "E"] : ["D"]
motion = [[frame % 5, 1]]
`
	opts := Options{Config: flycam.DefaultConfig(), Frames: 120, Every: 7}

	opts.Script = script(t, src)
	a, err := Run(context.Background(), opts)
	require.NoError(t, err)

	opts.Script = script(t, src)
	b, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRunOptions(t *testing.T) {
	_, err := Run(context.Background(), Options{Config: flycam.DefaultConfig(), Frames: 1})
	assert.Error(t, err, "no script")

	_, err = Run(context.Background(), Options{Script: script(t, ""), Config: flycam.DefaultConfig()})
	assert.Error(t, err, "no frames")

	cfg := flycam.DefaultConfig()
	cfg.Camera.SpeedTranslate = -1
	_, err = Run(context.Background(), Options{Script: script(t, ""), Config: cfg, Frames: 1})
	assert.ErrorIs(t, err, flycam.ErrInvalidSpeed)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, Options{Script: script(t, ""), Config: flycam.DefaultConfig(), Frames: 10})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Frames)
}

func TestWriteYAML(t *testing.T) {
	res := Result{
		Frames: 1,
		Poses:  []FramePose{{Frame: 0, Position: [3]float32{1, 2, 3}, Forward: [3]float32{1, 0, 0}, Up: [3]float32{0, 1, 0}}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, res))
	assert.Contains(t, buf.String(), "position: [1, 2, 3]")
	assert.NotContains(t, buf.String(), "diagnostics")

	var back Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, res, back)
}
