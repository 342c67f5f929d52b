// Package telemetry publishes camera poses and gamepad diagnostics to remote
// viewers over MQTT and websockets. Publishing never blocks the frame loop.
package telemetry

import (
	"encoding/json"
	"time"

	"github.com/gekko3d/flycam"
)

type PoseMessage struct {
	Camera   flycam.CameraId `json:"camera"`
	Position [3]float32      `json:"position"`
	Forward  [3]float32      `json:"forward"`
	Up       [3]float32      `json:"up"`
	Time     time.Time       `json:"time"`
}

func NewPoseMessage(id flycam.CameraId, cam *flycam.DebugCamera, at time.Time) PoseMessage {
	return PoseMessage{
		Camera:   id,
		Position: cam.Position,
		Forward:  cam.Forward,
		Up:       cam.Up,
		Time:     at.UTC(),
	}
}

type DiagnosticMessage struct {
	Event       flycam.DiagnosticKind `json:"event"`
	GamepadId   flycam.GamepadId      `json:"gamepad_id"`
	GamepadName string                `json:"gamepad_name,omitempty"`
}

func NewDiagnosticMessage(ev flycam.DiagnosticEvent) DiagnosticMessage {
	return DiagnosticMessage{Event: ev.Kind, GamepadId: ev.Gamepad, GamepadName: ev.Name}
}

// PoseSink receives poses once per published frame.
type PoseSink interface {
	PublishPose(msg PoseMessage)
}

type Fanout []PoseSink

func (f Fanout) PublishPose(msg PoseMessage) {
	for _, s := range f {
		if s != nil {
			s.PublishPose(msg)
		}
	}
}

// PublishRig sends every attached camera of rig to sink.
func PublishRig(sink PoseSink, rig *flycam.Rig, at time.Time) {
	for _, id := range rig.Ids() {
		cam, ok := rig.Camera(id)
		if !ok {
			continue
		}
		sink.PublishPose(NewPoseMessage(id, cam, at))
	}
}

func encode(v any) ([]byte, error) {
	return json.Marshal(v)
}
