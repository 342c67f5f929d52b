package flycam

// CursorGrabber is implemented by backends that can capture the cursor.
type CursorGrabber interface {
	SetCursorCaptured(captured bool)
}

type ControllerOption func(*Controller)

func WithLogger(logger Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithDiagnostics(diagnostics Diagnostics) ControllerOption {
	return func(c *Controller) {
		c.diagnostics = diagnostics
	}
}

func WithCursorGrabber(cursor CursorGrabber) ControllerOption {
	return func(c *Controller) {
		c.cursor = cursor
	}
}

// Controller drives every debug camera from one shared config and one
// active gamepad. It is not safe for concurrent use; call it from the frame
// loop only.
type Controller struct {
	config   Config
	gamepads *GamepadConnections

	logger      Logger
	diagnostics Diagnostics
	cursor      CursorGrabber

	cursorReleased bool
}

func NewController(cfg Config, opts ...ControllerOption) *Controller {
	c := &Controller{config: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = NewNopLogger()
	}
	if c.diagnostics == nil {
		c.diagnostics = LogDiagnostics{Logger: c.logger}
	}
	c.gamepads = NewGamepadConnections(c.logger, c.diagnostics)
	return c
}

func (c *Controller) Config() Config {
	return c.config
}

// SetConfig swaps bindings and activation flags; the next Update uses them.
func (c *Controller) SetConfig(cfg Config) {
	c.config = cfg
	c.logger.Debugf("config replaced: keymouse=%t gamepad=%t", cfg.Active.KeyMouse, cfg.Active.Gamepad)
}

func (c *Controller) ActiveGamepad() *ActiveGamepad {
	return &c.gamepads.Active
}

func (c *Controller) GamepadSettings() GamepadSettings {
	return c.gamepads.Settings
}

// CursorCaptured reports whether the controller wants the cursor captured.
func (c *Controller) CursorCaptured() bool {
	return c.config.Active.KeyMouse && !c.cursorReleased
}

// Update runs one frame: gamepad connection events, cursor capture, then
// input fusion and integration for every camera. The snapshot's queues are
// drained.
func (c *Controller) Update(in InputSnapshot, tm *Time, cams ...*DebugCamera) Intent {
	c.gamepads.Handle(in.DrainGamepadEvents())
	c.updateCursor(in)

	intent := FuseIntent(in, c.config, &c.gamepads.Active, c.gamepads.Settings, tm.DeltaSeconds())
	if !c.config.Active.Any() {
		return intent
	}
	for _, cam := range cams {
		Integrate(cam, intent)
	}
	return intent
}

func (c *Controller) updateCursor(in InputSnapshot) {
	if !c.config.Active.KeyMouse {
		return
	}
	if in.KeyJustPressed(c.config.Keyboard.Escape) {
		c.cursorReleased = !c.cursorReleased
		c.logger.Debugf("cursor captured=%t", !c.cursorReleased)
	}
	if c.cursor != nil {
		c.cursor.SetCursorCaptured(!c.cursorReleased)
	}
}
