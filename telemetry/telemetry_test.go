package telemetry

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gekko3d/flycam"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoseMessageJSON(t *testing.T) {
	cam := flycam.DefaultDebugCamera()
	cam.Position = mgl32.Vec3{1, 2, 3}
	at := time.Date(2024, 5, 1, 12, 0, 0, 500, time.UTC)

	data, err := encode(NewPoseMessage("cam-1", &cam, at))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"camera": "cam-1",
		"position": [1, 2, 3],
		"forward": [1, 0, 0],
		"up": [0, 1, 0],
		"time": "2024-05-01T12:00:00.0000005Z"
	}`, string(data))
}

func TestDiagnosticMessageJSON(t *testing.T) {
	data, err := encode(NewDiagnosticMessage(flycam.DiagnosticEvent{Kind: flycam.ActiveGamepadSet, Gamepad: 3, Name: "pad"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"active_gamepad_set","gamepad_id":3,"gamepad_name":"pad"}`, string(data))

	data, err = encode(NewDiagnosticMessage(flycam.DiagnosticEvent{Kind: flycam.ActiveGamepadRemoved, Gamepad: 3}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"active_gamepad_removed","gamepad_id":3}`, string(data))
}

// fakeToken completes immediately with err.
type fakeToken struct {
	err  error
	done chan struct{}
}

func newFakeToken(err error) *fakeToken {
	t := &fakeToken{err: err, done: make(chan struct{})}
	close(t.done)
	return t
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic    string
	retained bool
	payload  []byte
}

type fakeClient struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, published{topic: topic, retained: retained, payload: payload.([]byte)})
	return newFakeToken(c.err)
}

type recordingLogger struct {
	flycam.Logger
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, format)
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}

func TestMQTTPublisher(t *testing.T) {
	client := &fakeClient{}
	p := newMQTTPublisher(DefaultMQTTOptions(), client, flycam.NewNopLogger())

	cam := flycam.DefaultDebugCamera()
	p.PublishPose(NewPoseMessage("a", &cam, time.Unix(0, 0)))
	p.Emit(flycam.DiagnosticEvent{Kind: flycam.ActiveGamepadSet, Gamepad: 1})

	require.Len(t, client.msgs, 2)
	assert.Equal(t, "flycam/pose", client.msgs[0].topic)
	assert.True(t, client.msgs[0].retained)
	assert.Equal(t, "flycam/diagnostics", client.msgs[1].topic)
	assert.False(t, client.msgs[1].retained)

	var pose PoseMessage
	require.NoError(t, json.Unmarshal(client.msgs[0].payload, &pose))
	assert.Equal(t, flycam.CameraId("a"), pose.Camera)
}

func TestMQTTPublisherSkipsEmptyTopic(t *testing.T) {
	client := &fakeClient{}
	opts := DefaultMQTTOptions()
	opts.DiagnosticsTopic = ""
	p := newMQTTPublisher(opts, client, flycam.NewNopLogger())

	p.Emit(flycam.DiagnosticEvent{Kind: flycam.ActiveGamepadRemoved})
	assert.Empty(t, client.msgs)
}

func TestMQTTPublisherLogsFailures(t *testing.T) {
	client := &fakeClient{err: errors.New("broker gone")}
	logger := &recordingLogger{Logger: flycam.NewNopLogger()}
	p := newMQTTPublisher(DefaultMQTTOptions(), client, logger)

	cam := flycam.DefaultDebugCamera()
	p.PublishPose(NewPoseMessage("a", &cam, time.Unix(0, 0)))

	assert.Eventually(t, func() bool { return logger.count() == 1 }, time.Second, 5*time.Millisecond)
}

type poseRecorder struct {
	msgs []PoseMessage
}

func (r *poseRecorder) PublishPose(msg PoseMessage) {
	r.msgs = append(r.msgs, msg)
}

func TestPublishRigFansOut(t *testing.T) {
	rig := flycam.NewRig()
	a, b := flycam.DefaultDebugCamera(), flycam.DefaultDebugCamera()
	_, err := rig.Attach(&a)
	require.NoError(t, err)
	_, err = rig.Attach(&b)
	require.NoError(t, err)

	r1, r2 := &poseRecorder{}, &poseRecorder{}
	PublishRig(Fanout{r1, nil, r2}, rig, time.Unix(0, 0))

	require.Len(t, r1.msgs, 2)
	assert.Equal(t, r1.msgs, r2.msgs)
	assert.Equal(t, rig.Ids()[0], r1.msgs[0].Camera)
}

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	c1 := dialHub(t, srv)
	defer c1.Close()
	c2 := dialHub(t, srv)
	defer c2.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 5*time.Millisecond)

	cam := flycam.DefaultDebugCamera()
	hub.PublishPose(NewPoseMessage("cam", &cam, time.Unix(0, 0)))

	for _, c := range []*websocket.Conn{c1, c2} {
		require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg PoseMessage
		require.NoError(t, c.ReadJSON(&msg))
		assert.Equal(t, flycam.CameraId("cam"), msg.Camera)
		assert.Equal(t, [3]float32{1, 0, 0}, msg.Forward)
	}
}

func TestHubDropsClosedClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	c := dialHub(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, c.Close())
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 5*time.Millisecond)

	hub.Close()
	c2 := dialHub(t, srv)
	defer c2.Close()
	require.NoError(t, c2.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := c2.ReadMessage()
	assert.Error(t, err, "closed hub refuses clients")
}
