package flycam

import "github.com/go-gl/mathgl/mgl32"

// KeyMouseDamping scales keyboard and mouse input relative to the gamepad so
// that using both at once stays in a comparable range.
const KeyMouseDamping = 0.5

// Intent is one frame of fused, time-scaled motion in the camera's local
// frame.
type Intent struct {
	// X along forward, Y along up, Z along right.
	Translate mgl32.Vec3
	// X yaw about up, Y pitch about right, Z roll about forward.
	Rotate mgl32.Vec3
}

func (i Intent) Add(o Intent) Intent {
	return Intent{
		Translate: i.Translate.Add(o.Translate),
		Rotate:    i.Rotate.Add(o.Rotate),
	}
}

func (i Intent) IsZero() bool {
	return i.Translate == (mgl32.Vec3{}) && i.Rotate == (mgl32.Vec3{})
}

// ButtonsToDir maps two opposing buttons to +1, -1 or 0 when both or
// neither are held.
func ButtonsToDir(positive, negative bool) float32 {
	switch {
	case positive == negative:
		return 0
	case positive:
		return 1
	default:
		return -1
	}
}

func SumMotion(events []mgl32.Vec2) mgl32.Vec2 {
	var d mgl32.Vec2
	for _, ev := range events {
		d = d.Add(ev)
	}
	return d
}

// GamepadIntent reads one gamepad. Translation needs both movement axes and
// both trigger values; rotation needs both look axes. A group with any
// reading missing contributes nothing.
func GamepadIntent(in InputSnapshot, id GamepadId, b GamepadBindings, settings GamepadSettings, dt float32) Intent {
	var intent Intent

	x, okX := in.GamepadAxis(id, b.LeftRight)
	y, okY := in.GamepadAxis(id, b.ForwardBack)
	down, okDown := in.GamepadButtonValue(id, b.Down)
	up, okUp := in.GamepadButtonValue(id, b.Up)
	if okX && okY && okDown && okUp {
		intent.Translate = mgl32.Vec3{settings.Filter(y), up - down, settings.Filter(x)}.Mul(dt)
	}

	yaw, okYaw := in.GamepadAxis(id, b.Yaw)
	pitch, okPitch := in.GamepadAxis(id, b.Pitch)
	if okYaw && okPitch {
		roll := ButtonsToDir(in.GamepadButtonPressed(id, b.RollRight), in.GamepadButtonPressed(id, b.RollLeft))
		intent.Rotate = mgl32.Vec3{-settings.Filter(yaw), settings.Filter(pitch), roll}.Mul(dt)
	}

	return intent
}

// KeyMouseIntent reads the keyboard and an already summed mouse delta.
// Mouse motion is inverted on both axes, so dragging right or down yields
// negative yaw and pitch.
func KeyMouseIntent(in InputSnapshot, b KeyboardBindings, mouse mgl32.Vec2, dt float32) Intent {
	scale := dt * KeyMouseDamping
	return Intent{
		Translate: mgl32.Vec3{
			ButtonsToDir(in.KeyPressed(b.Forward), in.KeyPressed(b.Back)),
			ButtonsToDir(in.KeyPressed(b.Up), in.KeyPressed(b.Down)),
			ButtonsToDir(in.KeyPressed(b.Right), in.KeyPressed(b.Left)),
		}.Mul(scale),
		Rotate: mgl32.Vec3{
			-mouse.X(),
			-mouse.Y(),
			ButtonsToDir(in.KeyPressed(b.RollRight), in.KeyPressed(b.RollLeft)),
		}.Mul(scale),
	}
}

// FuseIntent drains this frame's mouse motion and combines the active
// device classes: gamepad first, keyboard and mouse added on top. Motion is
// drained even when keyboard and mouse are inactive so it never carries
// over to a later frame.
func FuseIntent(in InputSnapshot, cfg Config, gamepad *ActiveGamepad, settings GamepadSettings, dt float32) Intent {
	mouse := SumMotion(in.DrainMouseMotion())

	var intent Intent
	if !cfg.Active.Any() {
		return intent
	}

	if cfg.Active.Gamepad {
		if id, ok := gamepad.Get(); ok {
			intent = intent.Add(GamepadIntent(in, id, cfg.Gamepad, settings, dt))
		}
	}

	if cfg.Active.KeyMouse {
		intent = intent.Add(KeyMouseIntent(in, cfg.Keyboard, mouse, dt))
	}

	return intent
}
