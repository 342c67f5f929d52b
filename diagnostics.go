package flycam

type DiagnosticKind string

const (
	ActiveGamepadSet     DiagnosticKind = "active_gamepad_set"
	ActiveGamepadRemoved DiagnosticKind = "active_gamepad_removed"
)

type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Gamepad GamepadId
	// Name is set for ActiveGamepadSet only.
	Name string
}

// Diagnostics receives selection changes. Emit must not block the frame.
type Diagnostics interface {
	Emit(ev DiagnosticEvent)
}

type NopDiagnostics struct{}

func (NopDiagnostics) Emit(DiagnosticEvent) {}

// LogDiagnostics renders events as key=value lines.
type LogDiagnostics struct {
	Logger Logger
}

func (d LogDiagnostics) Emit(ev DiagnosticEvent) {
	if d.Logger == nil {
		return
	}
	if ev.Kind == ActiveGamepadSet {
		d.Logger.Infof("diagnostic event=%s gamepad_id=%d gamepad_name=%q", ev.Kind, ev.Gamepad, ev.Name)
		return
	}
	d.Logger.Infof("diagnostic event=%s gamepad_id=%d", ev.Kind, ev.Gamepad)
}

// ChannelDiagnostics forwards events to a buffered channel, dropping the
// event when the buffer is full.
type ChannelDiagnostics struct {
	C chan DiagnosticEvent
}

func NewChannelDiagnostics(size int) *ChannelDiagnostics {
	return &ChannelDiagnostics{C: make(chan DiagnosticEvent, size)}
}

func (d *ChannelDiagnostics) Emit(ev DiagnosticEvent) {
	select {
	case d.C <- ev:
	default:
	}
}

type MultiDiagnostics []Diagnostics

func (m MultiDiagnostics) Emit(ev DiagnosticEvent) {
	for _, d := range m {
		if d != nil {
			d.Emit(ev)
		}
	}
}
