package flycam

import (
	"fmt"
	"strings"
)

type GamepadId int

type GamepadAxisType int

const (
	GamepadAxisLeftStickX GamepadAxisType = iota
	GamepadAxisLeftStickY
	GamepadAxisRightStickX
	GamepadAxisRightStickY

	gamepadAxisCount
)

var gamepadAxisNames = map[GamepadAxisType]string{
	GamepadAxisLeftStickX:  "LeftStickX",
	GamepadAxisLeftStickY:  "LeftStickY",
	GamepadAxisRightStickX: "RightStickX",
	GamepadAxisRightStickY: "RightStickY",
}

var gamepadAxesByName = invertNames(gamepadAxisNames)

func (a GamepadAxisType) String() string {
	if name, ok := gamepadAxisNames[a]; ok {
		return name
	}
	return fmt.Sprintf("GamepadAxis(%d)", int(a))
}

func (a GamepadAxisType) MarshalText() ([]byte, error) {
	name, ok := gamepadAxisNames[a]
	if !ok {
		return nil, fmt.Errorf("flycam: unknown gamepad axis %d", int(a))
	}
	return []byte(name), nil
}

func (a *GamepadAxisType) UnmarshalText(text []byte) error {
	v, err := ParseGamepadAxis(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func ParseGamepadAxis(name string) (GamepadAxisType, error) {
	if a, ok := gamepadAxesByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("flycam: unknown gamepad axis %q", name)
}

// GamepadButtonType follows the positional naming of a standard layout:
// South/East/North/West face buttons, LeftTrigger/RightTrigger for the
// bumpers and LeftTrigger2/RightTrigger2 for the analog triggers.
type GamepadButtonType int

const (
	GamepadButtonSouth GamepadButtonType = iota
	GamepadButtonEast
	GamepadButtonNorth
	GamepadButtonWest
	GamepadButtonLeftTrigger
	GamepadButtonRightTrigger
	GamepadButtonLeftTrigger2
	GamepadButtonRightTrigger2
	GamepadButtonSelect
	GamepadButtonStart
	GamepadButtonMode
	GamepadButtonLeftThumb
	GamepadButtonRightThumb
	GamepadButtonDPadUp
	GamepadButtonDPadDown
	GamepadButtonDPadLeft
	GamepadButtonDPadRight

	gamepadButtonCount
)

var gamepadButtonNames = map[GamepadButtonType]string{
	GamepadButtonSouth:         "South",
	GamepadButtonEast:          "East",
	GamepadButtonNorth:         "North",
	GamepadButtonWest:          "West",
	GamepadButtonLeftTrigger:   "LeftTrigger",
	GamepadButtonRightTrigger:  "RightTrigger",
	GamepadButtonLeftTrigger2:  "LeftTrigger2",
	GamepadButtonRightTrigger2: "RightTrigger2",
	GamepadButtonSelect:        "Select",
	GamepadButtonStart:         "Start",
	GamepadButtonMode:          "Mode",
	GamepadButtonLeftThumb:     "LeftThumb",
	GamepadButtonRightThumb:    "RightThumb",
	GamepadButtonDPadUp:        "DPadUp",
	GamepadButtonDPadDown:      "DPadDown",
	GamepadButtonDPadLeft:      "DPadLeft",
	GamepadButtonDPadRight:     "DPadRight",
}

var gamepadButtonsByName = invertNames(gamepadButtonNames)

func (b GamepadButtonType) String() string {
	if name, ok := gamepadButtonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("GamepadButton(%d)", int(b))
}

func (b GamepadButtonType) MarshalText() ([]byte, error) {
	name, ok := gamepadButtonNames[b]
	if !ok {
		return nil, fmt.Errorf("flycam: unknown gamepad button %d", int(b))
	}
	return []byte(name), nil
}

func (b *GamepadButtonType) UnmarshalText(text []byte) error {
	v, err := ParseGamepadButton(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func ParseGamepadButton(name string) (GamepadButtonType, error) {
	if b, ok := gamepadButtonsByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("flycam: unknown gamepad button %q", name)
}

type GamepadEventKind int

const (
	GamepadConnected GamepadEventKind = iota
	GamepadDisconnected
)

func (k GamepadEventKind) String() string {
	switch k {
	case GamepadConnected:
		return "connected"
	case GamepadDisconnected:
		return "disconnected"
	}
	return fmt.Sprintf("GamepadEventKind(%d)", int(k))
}

type GamepadEvent struct {
	Gamepad GamepadId
	Kind    GamepadEventKind
	// Name is only set on connect, and only when the backend knows it.
	Name string
}

// ActiveGamepad is the gamepad currently driving the cameras. The zero value
// has no gamepad selected.
type ActiveGamepad struct {
	id  GamepadId
	set bool
}

func (a *ActiveGamepad) Get() (GamepadId, bool) {
	if a == nil {
		return 0, false
	}
	return a.id, a.set
}

func (a *ActiveGamepad) IsSet() bool {
	return a != nil && a.set
}

func (a *ActiveGamepad) String() string {
	if !a.IsSet() {
		return "none"
	}
	return fmt.Sprintf("gamepad %d", a.id)
}

// GamepadSettings filters bipolar axis readings.
type GamepadSettings struct {
	DeadzoneLowerbound float32 `yaml:"deadzone_lowerbound"`
	DeadzoneUpperbound float32 `yaml:"deadzone_upperbound"`
}

func DefaultGamepadSettings() GamepadSettings {
	return GamepadSettings{DeadzoneLowerbound: -0.05, DeadzoneUpperbound: 0.05}
}

// Filter zeroes values within the deadzone and passes the rest through.
func (s GamepadSettings) Filter(v float32) float32 {
	if v >= s.DeadzoneLowerbound && v <= s.DeadzoneUpperbound {
		return 0
	}
	return v
}

// GamepadConnections keeps the active gamepad in sync with connect and
// disconnect events. The first gamepad to connect while none is active wins;
// only a disconnect of that same gamepad clears the selection.
type GamepadConnections struct {
	Active   ActiveGamepad
	Settings GamepadSettings

	logger      Logger
	diagnostics Diagnostics
}

func NewGamepadConnections(logger Logger, diagnostics Diagnostics) *GamepadConnections {
	if logger == nil {
		logger = NewNopLogger()
	}
	if diagnostics == nil {
		diagnostics = NopDiagnostics{}
	}
	return &GamepadConnections{
		Settings:    DefaultGamepadSettings(),
		logger:      logger,
		diagnostics: diagnostics,
	}
}

func (g *GamepadConnections) Handle(events []GamepadEvent) {
	for _, ev := range events {
		switch ev.Kind {
		case GamepadConnected:
			if g.Active.set {
				g.logger.Debugf("gamepad %d connected while gamepad %d is active, ignoring", ev.Gamepad, g.Active.id)
				continue
			}
			g.Active = ActiveGamepad{id: ev.Gamepad, set: true}
			g.Settings.DeadzoneLowerbound = -0.1
			g.Settings.DeadzoneUpperbound = 0.1
			g.diagnostics.Emit(DiagnosticEvent{Kind: ActiveGamepadSet, Gamepad: ev.Gamepad, Name: ev.Name})

		case GamepadDisconnected:
			g.logger.Debugf("lost gamepad connection with id %d", ev.Gamepad)
			if !g.Active.set || g.Active.id != ev.Gamepad {
				continue
			}
			g.Active = ActiveGamepad{}
			g.diagnostics.Emit(DiagnosticEvent{Kind: ActiveGamepadRemoved, Gamepad: ev.Gamepad})
		}
	}
}

func AllGamepadAxes() []GamepadAxisType {
	axes := make([]GamepadAxisType, 0, gamepadAxisCount)
	for a := GamepadAxisType(0); a < gamepadAxisCount; a++ {
		axes = append(axes, a)
	}
	return axes
}

func AllGamepadButtons() []GamepadButtonType {
	buttons := make([]GamepadButtonType, 0, gamepadButtonCount)
	for b := GamepadButtonType(0); b < gamepadButtonCount; b++ {
		buttons = append(buttons, b)
	}
	return buttons
}
