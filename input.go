package flycam

import "github.com/go-gl/mathgl/mgl32"

// InputSnapshot is one frame of device state as seen by the controller.
// Lookups report ok=false when the device is unknown or the control is not
// supported. The Drain methods hand over everything queued since the last
// drain and leave the queue empty.
type InputSnapshot interface {
	KeyPressed(key Key) bool
	KeyJustPressed(key Key) bool

	GamepadAxis(id GamepadId, axis GamepadAxisType) (float32, bool)
	GamepadButtonValue(id GamepadId, button GamepadButtonType) (float32, bool)
	GamepadButtonPressed(id GamepadId, button GamepadButtonType) bool

	DrainMouseMotion() []mgl32.Vec2
	DrainGamepadEvents() []GamepadEvent
}

// EventQueue buffers events between drains.
type EventQueue[T any] struct {
	events []T
}

func (q *EventQueue[T]) Push(events ...T) {
	q.events = append(q.events, events...)
}

func (q *EventQueue[T]) Len() int {
	return len(q.events)
}

// Drain returns the queued events and resets the queue. The returned slice
// is owned by the caller.
func (q *EventQueue[T]) Drain() []T {
	out := q.events
	q.events = nil
	return out
}

// GamepadState is the last polled state of one gamepad. Axes and buttons a
// device does not provide are left unsupported.
type GamepadState struct {
	Name string

	axes            [gamepadAxisCount]float32
	axisSupported   [gamepadAxisCount]bool
	buttons         [gamepadButtonCount]float32
	buttonSupported [gamepadButtonCount]bool
}

func (s *GamepadState) SetAxis(axis GamepadAxisType, v float32) {
	if axis < 0 || axis >= gamepadAxisCount {
		return
	}
	s.axes[axis] = v
	s.axisSupported[axis] = true
}

// SetButton records an analog button value in [0, 1]. Digital buttons use 0
// or 1.
func (s *GamepadState) SetButton(button GamepadButtonType, v float32) {
	if button < 0 || button >= gamepadButtonCount {
		return
	}
	s.buttons[button] = v
	s.buttonSupported[button] = true
}

// ButtonPressThreshold is the analog value at which a button reads as pressed.
const ButtonPressThreshold = 0.75

// Input is the host-filled InputSnapshot. Backends write key state and
// gamepad state every frame and push motion and connection events; the
// controller only reads and drains it.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	// MouseCaptured is the cursor capture state last applied by the backend.
	// Backends only queue motion while the cursor is captured.
	MouseCaptured bool

	MouseMotion   EventQueue[mgl32.Vec2]
	GamepadEvents EventQueue[GamepadEvent]

	gamepads map[GamepadId]*GamepadState
}

var _ InputSnapshot = (*Input)(nil)

func NewInput() *Input {
	return &Input{gamepads: make(map[GamepadId]*GamepadState)}
}

// SetKey updates pressed state and derives the just pressed/released edges.
func (in *Input) SetKey(key Key, pressed bool) {
	if key < 0 || key >= keyCount {
		return
	}
	in.JustPressed[key] = pressed && !in.Pressed[key]
	in.JustReleased[key] = !pressed && in.Pressed[key]
	in.Pressed[key] = pressed
}

// Gamepad returns the state for id, creating it on first use.
func (in *Input) Gamepad(id GamepadId) *GamepadState {
	if in.gamepads == nil {
		in.gamepads = make(map[GamepadId]*GamepadState)
	}
	s, ok := in.gamepads[id]
	if !ok {
		s = &GamepadState{}
		in.gamepads[id] = s
	}
	return s
}

func (in *Input) RemoveGamepad(id GamepadId) {
	delete(in.gamepads, id)
}

func (in *Input) KeyPressed(key Key) bool {
	return key >= 0 && key < keyCount && in.Pressed[key]
}

func (in *Input) KeyJustPressed(key Key) bool {
	return key >= 0 && key < keyCount && in.JustPressed[key]
}

func (in *Input) GamepadAxis(id GamepadId, axis GamepadAxisType) (float32, bool) {
	s, ok := in.gamepads[id]
	if !ok || axis < 0 || axis >= gamepadAxisCount || !s.axisSupported[axis] {
		return 0, false
	}
	return s.axes[axis], true
}

func (in *Input) GamepadButtonValue(id GamepadId, button GamepadButtonType) (float32, bool) {
	s, ok := in.gamepads[id]
	if !ok || button < 0 || button >= gamepadButtonCount || !s.buttonSupported[button] {
		return 0, false
	}
	return s.buttons[button], true
}

func (in *Input) GamepadButtonPressed(id GamepadId, button GamepadButtonType) bool {
	v, ok := in.GamepadButtonValue(id, button)
	return ok && v >= ButtonPressThreshold
}

func (in *Input) DrainMouseMotion() []mgl32.Vec2 {
	return in.MouseMotion.Drain()
}

func (in *Input) DrainGamepadEvents() []GamepadEvent {
	return in.GamepadEvents.Drain()
}
