package flycam

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelDiagnosticsDropsWhenFull(t *testing.T) {
	d := NewChannelDiagnostics(1)
	d.Emit(DiagnosticEvent{Kind: ActiveGamepadSet, Gamepad: 1})
	d.Emit(DiagnosticEvent{Kind: ActiveGamepadRemoved, Gamepad: 1})

	assert.Equal(t, []DiagnosticEvent{{Kind: ActiveGamepadSet, Gamepad: 1}}, drainDiagnostics(d))
}

func TestMultiDiagnostics(t *testing.T) {
	a, b := NewChannelDiagnostics(2), NewChannelDiagnostics(2)
	m := MultiDiagnostics{a, nil, b}

	ev := DiagnosticEvent{Kind: ActiveGamepadRemoved, Gamepad: 4}
	m.Emit(ev)

	assert.Equal(t, []DiagnosticEvent{ev}, drainDiagnostics(a))
	assert.Equal(t, []DiagnosticEvent{ev}, drainDiagnostics(b))
}

func TestLogDiagnostics(t *testing.T) {
	var out, errOut bytes.Buffer
	d := LogDiagnostics{Logger: NewLogger(&out, &errOut, "flycam", false)}

	d.Emit(DiagnosticEvent{Kind: ActiveGamepadSet, Gamepad: 2, Name: "Xbox Controller"})
	d.Emit(DiagnosticEvent{Kind: ActiveGamepadRemoved, Gamepad: 2})

	assert.Contains(t, out.String(), `[flycam] INFO: diagnostic event=active_gamepad_set gamepad_id=2 gamepad_name="Xbox Controller"`)
	assert.Contains(t, out.String(), "[flycam] INFO: diagnostic event=active_gamepad_removed gamepad_id=2\n")
	assert.Empty(t, errOut.String())

	// A zero LogDiagnostics is a no-op.
	LogDiagnostics{}.Emit(DiagnosticEvent{Kind: ActiveGamepadSet})
}

func TestDefaultLoggerLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLogger(&out, &errOut, "", false)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Warnf("careful")
	l.Errorf("broken")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "INFO: shown 2")
	assert.Contains(t, errOut.String(), "WARN: careful")
	assert.Contains(t, errOut.String(), "ERROR: broken")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("visible")
	assert.Contains(t, out.String(), "DEBUG: visible")
}
