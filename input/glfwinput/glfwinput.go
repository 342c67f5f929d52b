// Package glfwinput fills a flycam.Input from a glfw window and the glfw
// joystick API. Poll must run on the main thread, after glfw.Init.
package glfwinput

import (
	"github.com/gekko3d/flycam"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type Source struct {
	window *glfw.Window

	lastX, lastY float64
	havePos      bool
	captured     bool

	pending []flycam.GamepadEvent
	known   map[glfw.Joystick]bool
}

var _ flycam.CursorGrabber = (*Source)(nil)

func New(window *glfw.Window) *Source {
	s := &Source{
		window: window,
		known:  make(map[glfw.Joystick]bool),
	}
	glfw.SetJoystickCallback(func(joy glfw.Joystick, event glfw.PeripheralEvent) {
		switch event {
		case glfw.Connected:
			s.connect(joy)
		case glfw.Disconnected:
			s.disconnect(joy)
		}
	})
	// Pads plugged in before the callback was installed.
	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() {
			s.connect(joy)
		}
	}
	return s
}

func (s *Source) connect(joy glfw.Joystick) {
	if s.known[joy] {
		return
	}
	s.known[joy] = true
	name := joy.GetGamepadName()
	if name == "" {
		name = joy.GetName()
	}
	s.pending = append(s.pending, flycam.GamepadEvent{Gamepad: flycam.GamepadId(joy), Kind: flycam.GamepadConnected, Name: name})
}

func (s *Source) disconnect(joy glfw.Joystick) {
	if !s.known[joy] {
		return
	}
	delete(s.known, joy)
	s.pending = append(s.pending, flycam.GamepadEvent{Gamepad: flycam.GamepadId(joy), Kind: flycam.GamepadDisconnected})
}

func (s *Source) SetCursorCaptured(captured bool) {
	if captured == s.captured {
		return
	}
	s.captured = captured
	// Avoid a jump from the position the cursor had before capture.
	s.havePos = false
	if captured {
		s.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		s.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// Poll processes pending window events and writes this frame's state into in.
func (s *Source) Poll(in *flycam.Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		action := s.window.GetKey(glfwKey)
		in.SetKey(key, action == glfw.Press || action == glfw.Repeat)
	}
	for key, btn := range mouseToGlfw {
		in.SetKey(key, s.window.GetMouseButton(btn) == glfw.Press)
	}

	mx, my := s.window.GetCursorPos()
	if s.captured && s.havePos {
		if dx, dy := mx-s.lastX, my-s.lastY; dx != 0 || dy != 0 {
			in.MouseMotion.Push(mgl32.Vec2{float32(dx), float32(dy)})
		}
	}
	s.lastX, s.lastY = mx, my
	s.havePos = true
	in.MouseCaptured = s.captured

	for _, ev := range s.pending {
		if ev.Kind == flycam.GamepadDisconnected {
			in.RemoveGamepad(ev.Gamepad)
		}
	}
	in.GamepadEvents.Push(s.pending...)
	s.pending = s.pending[:0]

	for joy := range s.known {
		pollGamepad(joy, in.Gamepad(flycam.GamepadId(joy)))
	}
}

func pollGamepad(joy glfw.Joystick, state *flycam.GamepadState) {
	if !joy.IsGamepad() {
		return
	}
	gs := joy.GetGamepadState()
	if gs == nil {
		return
	}

	state.SetAxis(flycam.GamepadAxisLeftStickX, gs.Axes[glfw.AxisLeftX])
	state.SetAxis(flycam.GamepadAxisLeftStickY, -gs.Axes[glfw.AxisLeftY])
	state.SetAxis(flycam.GamepadAxisRightStickX, gs.Axes[glfw.AxisRightX])
	state.SetAxis(flycam.GamepadAxisRightStickY, -gs.Axes[glfw.AxisRightY])
	state.SetButton(flycam.GamepadButtonLeftTrigger2, TriggerValue(gs.Axes[glfw.AxisLeftTrigger]))
	state.SetButton(flycam.GamepadButtonRightTrigger2, TriggerValue(gs.Axes[glfw.AxisRightTrigger]))

	for button, glfwButton := range buttonToGlfw {
		v := float32(0)
		if gs.Buttons[glfwButton] == glfw.Press {
			v = 1
		}
		state.SetButton(button, v)
	}
}

// TriggerValue maps glfw's [-1, 1] trigger range to [0, 1].
func TriggerValue(v float32) float32 {
	return mgl32.Clamp((v+1)/2, 0, 1)
}

var buttonToGlfw = map[flycam.GamepadButtonType]glfw.GamepadButton{
	flycam.GamepadButtonSouth:        glfw.ButtonA,
	flycam.GamepadButtonEast:         glfw.ButtonB,
	flycam.GamepadButtonWest:         glfw.ButtonX,
	flycam.GamepadButtonNorth:        glfw.ButtonY,
	flycam.GamepadButtonLeftTrigger:  glfw.ButtonLeftBumper,
	flycam.GamepadButtonRightTrigger: glfw.ButtonRightBumper,
	flycam.GamepadButtonSelect:       glfw.ButtonBack,
	flycam.GamepadButtonStart:        glfw.ButtonStart,
	flycam.GamepadButtonMode:         glfw.ButtonGuide,
	flycam.GamepadButtonLeftThumb:    glfw.ButtonLeftThumb,
	flycam.GamepadButtonRightThumb:   glfw.ButtonRightThumb,
	flycam.GamepadButtonDPadUp:       glfw.ButtonDpadUp,
	flycam.GamepadButtonDPadDown:     glfw.ButtonDpadDown,
	flycam.GamepadButtonDPadLeft:     glfw.ButtonDpadLeft,
	flycam.GamepadButtonDPadRight:    glfw.ButtonDpadRight,
}

var mouseToGlfw = map[flycam.Key]glfw.MouseButton{
	flycam.MouseButtonLeft:   glfw.MouseButtonLeft,
	flycam.MouseButtonRight:  glfw.MouseButtonRight,
	flycam.MouseButtonMiddle: glfw.MouseButtonMiddle,
}

var keyToGlfw = map[flycam.Key]glfw.Key{
	flycam.KeyA:            glfw.KeyA,
	flycam.KeyB:            glfw.KeyB,
	flycam.KeyC:            glfw.KeyC,
	flycam.KeyD:            glfw.KeyD,
	flycam.KeyE:            glfw.KeyE,
	flycam.KeyF:            glfw.KeyF,
	flycam.KeyG:            glfw.KeyG,
	flycam.KeyH:            glfw.KeyH,
	flycam.KeyI:            glfw.KeyI,
	flycam.KeyJ:            glfw.KeyJ,
	flycam.KeyK:            glfw.KeyK,
	flycam.KeyL:            glfw.KeyL,
	flycam.KeyM:            glfw.KeyM,
	flycam.KeyN:            glfw.KeyN,
	flycam.KeyO:            glfw.KeyO,
	flycam.KeyP:            glfw.KeyP,
	flycam.KeyQ:            glfw.KeyQ,
	flycam.KeyR:            glfw.KeyR,
	flycam.KeyS:            glfw.KeyS,
	flycam.KeyT:            glfw.KeyT,
	flycam.KeyU:            glfw.KeyU,
	flycam.KeyV:            glfw.KeyV,
	flycam.KeyW:            glfw.KeyW,
	flycam.KeyX:            glfw.KeyX,
	flycam.KeyY:            glfw.KeyY,
	flycam.KeyZ:            glfw.KeyZ,
	flycam.Key0:            glfw.Key0,
	flycam.Key1:            glfw.Key1,
	flycam.Key2:            glfw.Key2,
	flycam.Key3:            glfw.Key3,
	flycam.Key4:            glfw.Key4,
	flycam.Key5:            glfw.Key5,
	flycam.Key6:            glfw.Key6,
	flycam.Key7:            glfw.Key7,
	flycam.Key8:            glfw.Key8,
	flycam.Key9:            glfw.Key9,
	flycam.KeySpace:        glfw.KeySpace,
	flycam.KeyEnter:        glfw.KeyEnter,
	flycam.KeyEscape:       glfw.KeyEscape,
	flycam.KeyTab:          glfw.KeyTab,
	flycam.KeyBackspace:    glfw.KeyBackspace,
	flycam.KeyInsert:       glfw.KeyInsert,
	flycam.KeyDelete:       glfw.KeyDelete,
	flycam.KeyRight:        glfw.KeyRight,
	flycam.KeyLeft:         glfw.KeyLeft,
	flycam.KeyDown:         glfw.KeyDown,
	flycam.KeyUp:           glfw.KeyUp,
	flycam.KeyPageUp:       glfw.KeyPageUp,
	flycam.KeyPageDown:     glfw.KeyPageDown,
	flycam.KeyF1:           glfw.KeyF1,
	flycam.KeyF2:           glfw.KeyF2,
	flycam.KeyF3:           glfw.KeyF3,
	flycam.KeyF4:           glfw.KeyF4,
	flycam.KeyF5:           glfw.KeyF5,
	flycam.KeyF6:           glfw.KeyF6,
	flycam.KeyF7:           glfw.KeyF7,
	flycam.KeyF8:           glfw.KeyF8,
	flycam.KeyF9:           glfw.KeyF9,
	flycam.KeyF10:          glfw.KeyF10,
	flycam.KeyF11:          glfw.KeyF11,
	flycam.KeyF12:          glfw.KeyF12,
	flycam.KeyMinus:        glfw.KeyMinus,
	flycam.KeyEqual:        glfw.KeyEqual,
	flycam.KeyKPPlus:       glfw.KeyKPAdd,
	flycam.KeyKPMinus:      glfw.KeyKPSubtract,
	flycam.KeyLeftShift:    glfw.KeyLeftShift,
	flycam.KeyRightShift:   glfw.KeyRightShift,
	flycam.KeyLeftControl:  glfw.KeyLeftControl,
	flycam.KeyRightControl: glfw.KeyRightControl,
	flycam.KeyLeftAlt:      glfw.KeyLeftAlt,
	flycam.KeyRightAlt:     glfw.KeyRightAlt,
}
