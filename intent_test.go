package flycam

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonsToDir(t *testing.T) {
	assert.Equal(t, float32(0), ButtonsToDir(false, false))
	assert.Equal(t, float32(1), ButtonsToDir(true, false))
	assert.Equal(t, float32(-1), ButtonsToDir(false, true))
	assert.Equal(t, float32(0), ButtonsToDir(true, true))
}

// fullPad reports every axis and button the default bindings read.
func fullPad(in *Input, id GamepadId) *GamepadState {
	pad := in.Gamepad(id)
	for _, a := range AllGamepadAxes() {
		pad.SetAxis(a, 0)
	}
	for _, b := range AllGamepadButtons() {
		pad.SetButton(b, 0)
	}
	pad.SetAxis(GamepadAxisLeftStickY, 0.5)
	pad.SetAxis(GamepadAxisLeftStickX, -0.25)
	pad.SetButton(GamepadButtonRightTrigger2, 0.8)
	pad.SetButton(GamepadButtonLeftTrigger2, 0.2)
	pad.SetAxis(GamepadAxisRightStickX, 0.3)
	pad.SetAxis(GamepadAxisRightStickY, -0.6)
	pad.SetButton(GamepadButtonRightTrigger, 1)
	return pad
}

func activePad(id GamepadId) *ActiveGamepad {
	return &ActiveGamepad{id: id, set: true}
}

func TestGamepadIntent(t *testing.T) {
	in := NewInput()
	fullPad(in, 1)

	got := GamepadIntent(in, 1, DefaultGamepadBindings(), DefaultGamepadSettings(), 0.1)

	assertVec(t, mgl32.Vec3{0.05, 0.06, -0.025}, got.Translate, 1e-6)
	// yaw is negated, roll right is positive
	assertVec(t, mgl32.Vec3{-0.03, -0.06, 0.1}, got.Rotate, 1e-6)
}

func TestGamepadIntentMissingReadings(t *testing.T) {
	t.Run("no trigger omits translation", func(t *testing.T) {
		in := NewInput()
		pad := &GamepadState{}
		in.gamepads[1] = pad
		pad.SetAxis(GamepadAxisLeftStickX, 1)
		pad.SetAxis(GamepadAxisLeftStickY, 1)
		pad.SetButton(GamepadButtonRightTrigger2, 1)
		pad.SetAxis(GamepadAxisRightStickX, 0.5)
		pad.SetAxis(GamepadAxisRightStickY, 0.5)

		got := GamepadIntent(in, 1, DefaultGamepadBindings(), DefaultGamepadSettings(), 1)
		assert.Equal(t, mgl32.Vec3{}, got.Translate)
		assertVec(t, mgl32.Vec3{-0.5, 0.5, 0}, got.Rotate, 1e-6)
	})

	t.Run("no pitch axis omits rotation", func(t *testing.T) {
		in := NewInput()
		pad := fullPad(in, 1)
		pad.axisSupported[GamepadAxisRightStickY] = false

		got := GamepadIntent(in, 1, DefaultGamepadBindings(), DefaultGamepadSettings(), 1)
		assert.Equal(t, mgl32.Vec3{}, got.Rotate)
		assert.NotEqual(t, mgl32.Vec3{}, got.Translate)
	})

	t.Run("unknown gamepad", func(t *testing.T) {
		got := GamepadIntent(NewInput(), 9, DefaultGamepadBindings(), DefaultGamepadSettings(), 1)
		assert.True(t, got.IsZero())
	})
}

func TestGamepadIntentDeadzone(t *testing.T) {
	in := NewInput()
	pad := fullPad(in, 1)
	pad.SetAxis(GamepadAxisLeftStickY, 0.04)
	pad.SetAxis(GamepadAxisLeftStickX, -0.08)

	got := GamepadIntent(in, 1, DefaultGamepadBindings(), DefaultGamepadSettings(), 1)
	assert.Equal(t, float32(0), got.Translate.X(), "inside default deadzone")
	assert.InDelta(t, -0.08, got.Translate.Z(), 1e-6, "outside default deadzone")

	wide := GamepadSettings{DeadzoneLowerbound: -0.1, DeadzoneUpperbound: 0.1}
	got = GamepadIntent(in, 1, DefaultGamepadBindings(), wide, 1)
	assert.Equal(t, float32(0), got.Translate.Z(), "inside selected deadzone")
}

func TestKeyMouseIntent(t *testing.T) {
	in := NewInput()
	in.SetKey(KeyW, true)
	in.SetKey(KeyA, true)
	in.SetKey(KeySpace, true)
	in.SetKey(KeyE, true)

	got := KeyMouseIntent(in, DefaultKeyboardBindings(), mgl32.Vec2{4, 4}, 0.2)

	// forward, down, left at 0.5 * dt
	assertVec(t, mgl32.Vec3{0.1, -0.1, -0.1}, got.Translate, 1e-6)
	// mouse right/down gives negative yaw/pitch, E rolls right
	assertVec(t, mgl32.Vec3{-0.4, -0.4, 0.1}, got.Rotate, 1e-6)
}

func TestKeyMouseIntentOpposingKeysCancel(t *testing.T) {
	in := NewInput()
	in.SetKey(KeyW, true)
	in.SetKey(KeyS, true)
	in.SetKey(KeyQ, true)
	in.SetKey(KeyE, true)

	got := KeyMouseIntent(in, DefaultKeyboardBindings(), mgl32.Vec2{}, 1)
	assert.True(t, got.IsZero())
}

func TestFuseIntentIsAdditive(t *testing.T) {
	in := NewInput()
	fullPad(in, 2)
	in.SetKey(KeyW, true)
	in.SetKey(KeyQ, true)
	motion := []mgl32.Vec2{{3, -1}, {1, 2}}
	settings := DefaultGamepadSettings()
	const dt = 1.0 / 60

	fuse := func(active DebugCameraActive) Intent {
		in.MouseMotion.Push(motion...)
		cfg := DefaultConfig()
		cfg.Active = active
		return FuseIntent(in, cfg, activePad(2), settings, dt)
	}

	both := fuse(DebugCameraActive{KeyMouse: true, Gamepad: true})
	keyMouse := fuse(DebugCameraActive{KeyMouse: true})
	gamepad := fuse(DebugCameraActive{Gamepad: true})

	want := keyMouse.Add(gamepad)
	assertVec(t, want.Translate, both.Translate, 1e-7)
	assertVec(t, want.Rotate, both.Rotate, 1e-7)

	assert.Equal(t, KeyMouseIntent(in, DefaultKeyboardBindings(), mgl32.Vec2{4, 1}, dt), keyMouse)
	assert.Equal(t, GamepadIntent(in, 2, DefaultGamepadBindings(), settings, dt), gamepad)
}

func TestFuseIntentGamepadNotSelected(t *testing.T) {
	in := NewInput()
	fullPad(in, 2)
	in.SetKey(KeyD, true)

	got := FuseIntent(in, DefaultConfig(), &ActiveGamepad{}, DefaultGamepadSettings(), 1)

	assertVec(t, mgl32.Vec3{0, 0, 0.5}, got.Translate, 1e-7)
	assert.Equal(t, mgl32.Vec3{}, got.Rotate)
}

func TestFuseIntentDrainsMouseWhenInactive(t *testing.T) {
	tests := []struct {
		name   string
		active DebugCameraActive
	}{
		{"both off", DebugCameraActive{}},
		{"gamepad only", DebugCameraActive{Gamepad: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput()
			in.MouseMotion.Push(mgl32.Vec2{10, 10})
			cfg := DefaultConfig()
			cfg.Active = tt.active

			got := FuseIntent(in, cfg, &ActiveGamepad{}, DefaultGamepadSettings(), 1)
			assert.True(t, got.IsZero())
			assert.Equal(t, 0, in.MouseMotion.Len())

			// The stale motion must not leak into the next active frame.
			cfg.Active = DefaultDebugCameraActive()
			got = FuseIntent(in, cfg, &ActiveGamepad{}, DefaultGamepadSettings(), 1)
			require.True(t, got.IsZero())
		})
	}
}

func TestSumMotion(t *testing.T) {
	assert.Equal(t, mgl32.Vec2{}, SumMotion(nil))
	assert.Equal(t, mgl32.Vec2{-1, 5}, SumMotion([]mgl32.Vec2{{1, 2}, {-2, 3}}))
}
