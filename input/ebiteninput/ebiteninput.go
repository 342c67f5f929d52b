// Package ebiteninput fills a flycam.Input from ebiten's input state. Call
// Poll from the game's Update.
package ebiteninput

import (
	"github.com/gekko3d/flycam"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type Source struct {
	lastX, lastY int
	havePos      bool
	captured     bool

	gamepadIds []ebiten.GamepadID
	connected  map[ebiten.GamepadID]bool
}

var _ flycam.CursorGrabber = (*Source)(nil)

func New() *Source {
	return &Source{connected: make(map[ebiten.GamepadID]bool)}
}

func (s *Source) SetCursorCaptured(captured bool) {
	if captured == s.captured {
		return
	}
	s.captured = captured
	s.havePos = false
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

func (s *Source) Poll(in *flycam.Input) {
	for key, ebKey := range keyToEbiten {
		in.SetKey(key, ebiten.IsKeyPressed(ebKey))
	}
	for key, btn := range mouseToEbiten {
		in.SetKey(key, ebiten.IsMouseButtonPressed(btn))
	}

	mx, my := ebiten.CursorPosition()
	if s.captured && s.havePos {
		if dx, dy := mx-s.lastX, my-s.lastY; dx != 0 || dy != 0 {
			in.MouseMotion.Push(mgl32.Vec2{float32(dx), float32(dy)})
		}
	}
	s.lastX, s.lastY = mx, my
	s.havePos = true
	in.MouseCaptured = s.captured

	for id := range s.connected {
		if inpututil.IsGamepadJustDisconnected(id) {
			delete(s.connected, id)
			in.RemoveGamepad(flycam.GamepadId(id))
			in.GamepadEvents.Push(flycam.GamepadEvent{Gamepad: flycam.GamepadId(id), Kind: flycam.GamepadDisconnected})
		}
	}

	s.gamepadIds = ebiten.AppendGamepadIDs(s.gamepadIds[:0])
	for _, id := range s.gamepadIds {
		if !s.connected[id] {
			s.connected[id] = true
			in.GamepadEvents.Push(flycam.GamepadEvent{
				Gamepad: flycam.GamepadId(id),
				Kind:    flycam.GamepadConnected,
				Name:    ebiten.GamepadName(id),
			})
		}
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			pollStandardGamepad(id, in.Gamepad(flycam.GamepadId(id)))
		}
	}
}

func pollStandardGamepad(id ebiten.GamepadID, state *flycam.GamepadState) {
	state.Name = ebiten.GamepadName(id)

	// ebiten reports vertical stick axes positive downwards.
	state.SetAxis(flycam.GamepadAxisLeftStickX, float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)))
	state.SetAxis(flycam.GamepadAxisLeftStickY, -float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)))
	state.SetAxis(flycam.GamepadAxisRightStickX, float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)))
	state.SetAxis(flycam.GamepadAxisRightStickY, -float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)))

	for button, ebButton := range buttonToEbiten {
		state.SetButton(button, float32(ebiten.StandardGamepadButtonValue(id, ebButton)))
	}
}

var buttonToEbiten = map[flycam.GamepadButtonType]ebiten.StandardGamepadButton{
	flycam.GamepadButtonSouth:         ebiten.StandardGamepadButtonRightBottom,
	flycam.GamepadButtonEast:          ebiten.StandardGamepadButtonRightRight,
	flycam.GamepadButtonWest:          ebiten.StandardGamepadButtonRightLeft,
	flycam.GamepadButtonNorth:         ebiten.StandardGamepadButtonRightTop,
	flycam.GamepadButtonLeftTrigger:   ebiten.StandardGamepadButtonFrontTopLeft,
	flycam.GamepadButtonRightTrigger:  ebiten.StandardGamepadButtonFrontTopRight,
	flycam.GamepadButtonLeftTrigger2:  ebiten.StandardGamepadButtonFrontBottomLeft,
	flycam.GamepadButtonRightTrigger2: ebiten.StandardGamepadButtonFrontBottomRight,
	flycam.GamepadButtonSelect:        ebiten.StandardGamepadButtonCenterLeft,
	flycam.GamepadButtonStart:         ebiten.StandardGamepadButtonCenterRight,
	flycam.GamepadButtonMode:          ebiten.StandardGamepadButtonCenterCenter,
	flycam.GamepadButtonLeftThumb:     ebiten.StandardGamepadButtonLeftStick,
	flycam.GamepadButtonRightThumb:    ebiten.StandardGamepadButtonRightStick,
	flycam.GamepadButtonDPadUp:        ebiten.StandardGamepadButtonLeftTop,
	flycam.GamepadButtonDPadDown:      ebiten.StandardGamepadButtonLeftBottom,
	flycam.GamepadButtonDPadLeft:      ebiten.StandardGamepadButtonLeftLeft,
	flycam.GamepadButtonDPadRight:     ebiten.StandardGamepadButtonLeftRight,
}

var mouseToEbiten = map[flycam.Key]ebiten.MouseButton{
	flycam.MouseButtonLeft:   ebiten.MouseButtonLeft,
	flycam.MouseButtonRight:  ebiten.MouseButtonRight,
	flycam.MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

var keyToEbiten = map[flycam.Key]ebiten.Key{
	flycam.KeyA:            ebiten.KeyA,
	flycam.KeyB:            ebiten.KeyB,
	flycam.KeyC:            ebiten.KeyC,
	flycam.KeyD:            ebiten.KeyD,
	flycam.KeyE:            ebiten.KeyE,
	flycam.KeyF:            ebiten.KeyF,
	flycam.KeyG:            ebiten.KeyG,
	flycam.KeyH:            ebiten.KeyH,
	flycam.KeyI:            ebiten.KeyI,
	flycam.KeyJ:            ebiten.KeyJ,
	flycam.KeyK:            ebiten.KeyK,
	flycam.KeyL:            ebiten.KeyL,
	flycam.KeyM:            ebiten.KeyM,
	flycam.KeyN:            ebiten.KeyN,
	flycam.KeyO:            ebiten.KeyO,
	flycam.KeyP:            ebiten.KeyP,
	flycam.KeyQ:            ebiten.KeyQ,
	flycam.KeyR:            ebiten.KeyR,
	flycam.KeyS:            ebiten.KeyS,
	flycam.KeyT:            ebiten.KeyT,
	flycam.KeyU:            ebiten.KeyU,
	flycam.KeyV:            ebiten.KeyV,
	flycam.KeyW:            ebiten.KeyW,
	flycam.KeyX:            ebiten.KeyX,
	flycam.KeyY:            ebiten.KeyY,
	flycam.KeyZ:            ebiten.KeyZ,
	flycam.Key0:            ebiten.KeyDigit0,
	flycam.Key1:            ebiten.KeyDigit1,
	flycam.Key2:            ebiten.KeyDigit2,
	flycam.Key3:            ebiten.KeyDigit3,
	flycam.Key4:            ebiten.KeyDigit4,
	flycam.Key5:            ebiten.KeyDigit5,
	flycam.Key6:            ebiten.KeyDigit6,
	flycam.Key7:            ebiten.KeyDigit7,
	flycam.Key8:            ebiten.KeyDigit8,
	flycam.Key9:            ebiten.KeyDigit9,
	flycam.KeySpace:        ebiten.KeySpace,
	flycam.KeyEnter:        ebiten.KeyEnter,
	flycam.KeyEscape:       ebiten.KeyEscape,
	flycam.KeyTab:          ebiten.KeyTab,
	flycam.KeyBackspace:    ebiten.KeyBackspace,
	flycam.KeyInsert:       ebiten.KeyInsert,
	flycam.KeyDelete:       ebiten.KeyDelete,
	flycam.KeyRight:        ebiten.KeyArrowRight,
	flycam.KeyLeft:         ebiten.KeyArrowLeft,
	flycam.KeyDown:         ebiten.KeyArrowDown,
	flycam.KeyUp:           ebiten.KeyArrowUp,
	flycam.KeyPageUp:       ebiten.KeyPageUp,
	flycam.KeyPageDown:     ebiten.KeyPageDown,
	flycam.KeyF1:           ebiten.KeyF1,
	flycam.KeyF2:           ebiten.KeyF2,
	flycam.KeyF3:           ebiten.KeyF3,
	flycam.KeyF4:           ebiten.KeyF4,
	flycam.KeyF5:           ebiten.KeyF5,
	flycam.KeyF6:           ebiten.KeyF6,
	flycam.KeyF7:           ebiten.KeyF7,
	flycam.KeyF8:           ebiten.KeyF8,
	flycam.KeyF9:           ebiten.KeyF9,
	flycam.KeyF10:          ebiten.KeyF10,
	flycam.KeyF11:          ebiten.KeyF11,
	flycam.KeyF12:          ebiten.KeyF12,
	flycam.KeyMinus:        ebiten.KeyMinus,
	flycam.KeyEqual:        ebiten.KeyEqual,
	flycam.KeyKPPlus:       ebiten.KeyNumpadAdd,
	flycam.KeyKPMinus:      ebiten.KeyNumpadSubtract,
	flycam.KeyLeftShift:    ebiten.KeyShiftLeft,
	flycam.KeyRightShift:   ebiten.KeyShiftRight,
	flycam.KeyLeftControl:  ebiten.KeyControlLeft,
	flycam.KeyRightControl: ebiten.KeyControlRight,
	flycam.KeyLeftAlt:      ebiten.KeyAltLeft,
	flycam.KeyRightAlt:     ebiten.KeyAltRight,
}
