package flycam

// KeyboardBindings routes keyboard keys to camera actions. Yaw and pitch
// always come from mouse motion.
type KeyboardBindings struct {
	Forward   Key `yaml:"forward"`
	Back      Key `yaml:"back"`
	Left      Key `yaml:"left"`
	Right     Key `yaml:"right"`
	Up        Key `yaml:"up"`
	Down      Key `yaml:"down"`
	RollLeft  Key `yaml:"roll_left"`
	RollRight Key `yaml:"roll_right"`
	// Escape toggles cursor capture.
	Escape Key `yaml:"escape"`
}

func DefaultKeyboardBindings() KeyboardBindings {
	return KeyboardBindings{
		Forward:   KeyW,
		Back:      KeyS,
		Left:      KeyA,
		Right:     KeyD,
		Up:        KeyLeftShift,
		Down:      KeySpace,
		RollLeft:  KeyQ,
		RollRight: KeyE,
		Escape:    KeyEscape,
	}
}

// GamepadBindings routes gamepad axes and buttons to camera actions. Up and
// Down are read as analog values so triggers give proportional speed.
type GamepadBindings struct {
	ForwardBack GamepadAxisType   `yaml:"forward_back"`
	LeftRight   GamepadAxisType   `yaml:"left_right"`
	Up          GamepadButtonType `yaml:"up"`
	Down        GamepadButtonType `yaml:"down"`
	Yaw         GamepadAxisType   `yaml:"yaw"`
	Pitch       GamepadAxisType   `yaml:"pitch"`
	RollLeft    GamepadButtonType `yaml:"roll_left"`
	RollRight   GamepadButtonType `yaml:"roll_right"`
}

func DefaultGamepadBindings() GamepadBindings {
	return GamepadBindings{
		ForwardBack: GamepadAxisLeftStickY,
		LeftRight:   GamepadAxisLeftStickX,
		Up:          GamepadButtonRightTrigger2,
		Down:        GamepadButtonLeftTrigger2,
		Yaw:         GamepadAxisRightStickX,
		Pitch:       GamepadAxisRightStickY,
		RollLeft:    GamepadButtonLeftTrigger,
		RollRight:   GamepadButtonRightTrigger,
	}
}

// DebugCameraActive gates each device class. With both off the controller
// leaves cameras and transforms untouched.
type DebugCameraActive struct {
	KeyMouse bool `yaml:"keymouse"`
	Gamepad  bool `yaml:"gamepad"`
}

func DefaultDebugCameraActive() DebugCameraActive {
	return DebugCameraActive{KeyMouse: true, Gamepad: true}
}

func (a DebugCameraActive) Any() bool {
	return a.KeyMouse || a.Gamepad
}
