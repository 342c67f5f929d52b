// Package scripted drives a flycam.Input from a tengo script, one run per
// frame. The script sees the globals frame (int) and dt (float seconds) and
// may assign any of:
//
//	keys       = ["W", "LShift"]             // keys held this frame
//	motion     = [[4, -2], [1, 0]]           // mouse motion events
//	connect    = [{id: 0, name: "pad"}]      // gamepads plugged in
//	disconnect = [0]                         // gamepads unplugged
//	pad        = 0                           // gamepad that axes/buttons apply to
//	axes       = {LeftStickY: 1.0}           // axis values, others read 0
//	buttons    = {RightTrigger2: 0.5}        // button values, others read 0
//
// Assign with "=", not ":=", since the globals are predeclared.
package scripted

import (
	"context"
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/gekko3d/flycam"
	"github.com/go-gl/mathgl/mgl32"
)

type Source struct {
	compiled  *tengo.Compiled
	frame     int
	connected map[flycam.GamepadId]bool
}

func Load(path string) (*Source, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scripted: load %s: %w", path, err)
	}
	s, err := Compile(src)
	if err != nil {
		return nil, fmt.Errorf("scripted: %s: %w", path, err)
	}
	return s, nil
}

func Compile(src []byte) (*Source, error) {
	script := tengo.NewScript(src)
	for name, value := range resetGlobals() {
		if err := script.Add(name, value); err != nil {
			return nil, fmt.Errorf("scripted: add %s: %w", name, err)
		}
	}
	_ = script.Add("frame", 0)
	_ = script.Add("dt", 0.0)
	_ = script.Add("pad", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scripted: compile: %w", err)
	}
	return &Source{compiled: compiled, connected: make(map[flycam.GamepadId]bool)}, nil
}

func resetGlobals() map[string]any {
	return map[string]any{
		"keys":       []any{},
		"motion":     []any{},
		"connect":    []any{},
		"disconnect": []any{},
		"axes":       map[string]any{},
		"buttons":    map[string]any{},
	}
}

// Frame is the number of frames polled so far.
func (s *Source) Frame() int {
	return s.frame
}

// Poll runs the script for the next frame and writes its output into in.
func (s *Source) Poll(ctx context.Context, in *flycam.Input, dt float32) error {
	frame := s.frame
	for name, value := range resetGlobals() {
		if err := s.compiled.Set(name, value); err != nil {
			return fmt.Errorf("scripted: frame %d: %w", frame, err)
		}
	}
	if err := s.compiled.Set("frame", frame); err != nil {
		return fmt.Errorf("scripted: frame %d: %w", frame, err)
	}
	if err := s.compiled.Set("dt", float64(dt)); err != nil {
		return fmt.Errorf("scripted: frame %d: %w", frame, err)
	}
	if err := s.compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("scripted: frame %d: %w", frame, err)
	}
	s.frame++

	if err := s.applyKeys(in); err != nil {
		return fmt.Errorf("scripted: frame %d: %w", frame, err)
	}
	if err := s.applyMotion(in); err != nil {
		return fmt.Errorf("scripted: frame %d: %w", frame, err)
	}
	if err := s.applyConnections(in); err != nil {
		return fmt.Errorf("scripted: frame %d: %w", frame, err)
	}
	if err := s.applyGamepad(in); err != nil {
		return fmt.Errorf("scripted: frame %d: %w", frame, err)
	}
	return nil
}

func (s *Source) applyKeys(in *flycam.Input) error {
	pressed := make(map[flycam.Key]bool)
	for _, v := range s.compiled.Get("keys").Array() {
		name, ok := v.(string)
		if !ok {
			return fmt.Errorf("keys: expected string, got %T", v)
		}
		key, err := flycam.ParseKey(name)
		if err != nil {
			return err
		}
		pressed[key] = true
	}
	for _, key := range flycam.AllKeys() {
		in.SetKey(key, pressed[key])
	}
	return nil
}

func (s *Source) applyMotion(in *flycam.Input) error {
	for _, v := range s.compiled.Get("motion").Array() {
		pair, ok := v.([]any)
		if !ok || len(pair) != 2 {
			return fmt.Errorf("motion: expected [dx, dy], got %v", v)
		}
		dx, okX := toFloat(pair[0])
		dy, okY := toFloat(pair[1])
		if !okX || !okY {
			return fmt.Errorf("motion: expected numbers, got %v", v)
		}
		in.MouseMotion.Push(mgl32.Vec2{dx, dy})
	}
	return nil
}

func (s *Source) applyConnections(in *flycam.Input) error {
	for _, v := range s.compiled.Get("connect").Array() {
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("connect: expected {id, name}, got %v", v)
		}
		idv, ok := toFloat(m["id"])
		if !ok {
			return fmt.Errorf("connect: missing numeric id in %v", v)
		}
		name, _ := m["name"].(string)
		id := flycam.GamepadId(idv)
		s.connected[id] = true
		in.GamepadEvents.Push(flycam.GamepadEvent{Gamepad: id, Kind: flycam.GamepadConnected, Name: name})
	}
	for _, v := range s.compiled.Get("disconnect").Array() {
		idv, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("disconnect: expected id, got %v", v)
		}
		id := flycam.GamepadId(idv)
		delete(s.connected, id)
		in.RemoveGamepad(id)
		in.GamepadEvents.Push(flycam.GamepadEvent{Gamepad: id, Kind: flycam.GamepadDisconnected})
	}
	return nil
}

// applyGamepad reports every control of every connected pad, zero unless
// the script sets it for the current pad.
func (s *Source) applyGamepad(in *flycam.Input) error {
	for id := range s.connected {
		state := in.Gamepad(id)
		for _, axis := range flycam.AllGamepadAxes() {
			state.SetAxis(axis, 0)
		}
		for _, button := range flycam.AllGamepadButtons() {
			state.SetButton(button, 0)
		}
	}

	pad := flycam.GamepadId(s.compiled.Get("pad").Int())
	if !s.connected[pad] {
		return nil
	}
	state := in.Gamepad(pad)
	for name, v := range s.compiled.Get("axes").Map() {
		axis, err := flycam.ParseGamepadAxis(name)
		if err != nil {
			return err
		}
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("axes: %s: expected number, got %T", name, v)
		}
		state.SetAxis(axis, f)
	}
	for name, v := range s.compiled.Get("buttons").Map() {
		button, err := flycam.ParseGamepadButton(name)
		if err != nil {
			return err
		}
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("buttons: %s: expected number, got %T", name, v)
		}
		state.SetButton(button, f)
	}
	return nil
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case int64:
		return float32(n), true
	case float64:
		return float32(n), true
	case int:
		return float32(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
