// Package demo is an interactive ebiten window that flies a debug camera
// over a ground grid.
package demo

import (
	"errors"
	"fmt"
	"image/color"
	"net/http"
	"time"

	"github.com/gekko3d/flycam"
	"github.com/gekko3d/flycam/input/ebiteninput"
	"github.com/gekko3d/flycam/telemetry"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
	"gopkg.in/yaml.v3"
)

type Options struct {
	ConfigPath string
	MQTTBroker string
	// WebsocketAddr serves the live pose stream at /ws when set.
	WebsocketAddr string
	// PublishEvery is the number of frames between telemetry publishes.
	PublishEvery int
	Debug        bool
}

type Game struct {
	logger flycam.Logger
	ctrl   *flycam.Controller
	rig    *flycam.Rig
	camId  flycam.CameraId
	input  *flycam.Input
	source *ebiteninput.Source
	time   *flycam.Time

	watcher   *flycam.ConfigWatcher
	telemetry telemetry.Fanout
	closers   []func()

	clipboardOK  bool
	publishEvery int
	frame        int
	face         text.Face
}

func Run(opts Options) error {
	g, err := NewGame(opts)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowTitle("flycam")
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("demo: %w", err)
	}
	return nil
}

func NewGame(opts Options) (*Game, error) {
	logger := flycam.NewDefaultLogger("flycam-demo", opts.Debug)

	cfg := flycam.DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = flycam.LoadConfig(opts.ConfigPath); err != nil {
			return nil, err
		}
	}

	g := &Game{
		logger:       logger,
		rig:          flycam.NewRig(),
		input:        flycam.NewInput(),
		source:       ebiteninput.New(),
		time:         flycam.NewTime(time.Now()),
		publishEvery: opts.PublishEvery,
		face:         text.NewGoXFace(basicfont.Face7x13),
	}
	if g.publishEvery <= 0 {
		g.publishEvery = 6
	}

	diagnostics := flycam.MultiDiagnostics{flycam.LogDiagnostics{Logger: logger}}

	if opts.MQTTBroker != "" {
		mopts := telemetry.DefaultMQTTOptions()
		mopts.Broker = opts.MQTTBroker
		pub, err := telemetry.DialMQTT(mopts, logger)
		if err != nil {
			return nil, err
		}
		g.telemetry = append(g.telemetry, pub)
		diagnostics = append(diagnostics, pub)
		g.closers = append(g.closers, pub.Close)
	}

	if opts.WebsocketAddr != "" {
		hub := telemetry.NewHub(logger)
		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		srv := &http.Server{Addr: opts.WebsocketAddr, Handler: mux}
		go func() {
			logger.Infof("pose stream listening on ws://%s/ws", opts.WebsocketAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("pose stream: %v", err)
			}
		}()
		g.telemetry = append(g.telemetry, hub)
		g.closers = append(g.closers, hub.Close, func() { _ = srv.Close() })
	}

	g.ctrl = flycam.NewController(cfg,
		flycam.WithLogger(logger),
		flycam.WithDiagnostics(diagnostics),
		flycam.WithCursorGrabber(g.source),
	)

	cam := cfg.NewCamera()
	cam.Position = mgl32.Vec3{-5, 2, 0}
	id, err := g.rig.Attach(&cam)
	if err != nil {
		return nil, err
	}
	g.camId = id

	if opts.ConfigPath != "" {
		w, err := flycam.WatchConfig(opts.ConfigPath, logger)
		if err != nil {
			logger.Warnf("config hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		logger.Warnf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	for i := len(g.closers) - 1; i >= 0; i-- {
		g.closers[i]()
	}
}

func (g *Game) Update() error {
	if g.watcher != nil {
		if cfg, ok := g.watcher.Poll(); ok {
			g.ctrl.SetConfig(cfg)
		}
	}

	g.time.Advance(time.Second / time.Duration(ebiten.TPS()))
	g.source.Poll(g.input)
	g.rig.Update(g.ctrl, g.input, g.time)

	if g.input.KeyJustPressed(flycam.KeyC) {
		g.copyPose()
	}

	g.frame++
	if len(g.telemetry) > 0 && g.frame%g.publishEvery == 0 {
		telemetry.PublishRig(g.telemetry, g.rig, g.time.Time)
	}
	return nil
}

func (g *Game) copyPose() {
	if !g.clipboardOK {
		return
	}
	cam, ok := g.rig.Camera(g.camId)
	if !ok {
		return
	}
	data, err := PoseYAML(cam)
	if err != nil {
		g.logger.Errorf("copy pose: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.logger.Infof("pose copied to clipboard")
}

type poseDoc struct {
	Position [3]float32 `yaml:"position,flow"`
	Forward  [3]float32 `yaml:"forward,flow"`
	Up       [3]float32 `yaml:"up,flow"`
}

// PoseYAML renders a camera pose for pasting into a config or a scene file.
func PoseYAML(cam *flycam.DebugCamera) ([]byte, error) {
	return yaml.Marshal(poseDoc{Position: cam.Position, Forward: cam.Forward, Up: cam.Up})
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	tr, ok := g.rig.Transform(g.camId)
	if !ok {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	proj := mgl32.Perspective(mgl32.DegToRad(70), float32(w)/float32(h), 0.1, 500)
	viewProj := proj.Mul4(tr.View())

	for _, seg := range gridSegments(20, 1) {
		g.drawSegment(screen, viewProj, seg[0], seg[1], colornames.Slategray, w, h)
	}
	g.drawSegment(screen, viewProj, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{3, 0, 0}, colornames.Red, w, h)
	g.drawSegment(screen, viewProj, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 3, 0}, colornames.Lime, w, h)
	g.drawSegment(screen, viewProj, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 3}, colornames.Deepskyblue, w, h)

	cam, _ := g.rig.Camera(g.camId)
	lines := []string{
		fmt.Sprintf("pos %6.2f %6.2f %6.2f", cam.Position[0], cam.Position[1], cam.Position[2]),
		fmt.Sprintf("fwd %6.3f %6.3f %6.3f", cam.Forward[0], cam.Forward[1], cam.Forward[2]),
		fmt.Sprintf("up  %6.3f %6.3f %6.3f", cam.Up[0], cam.Up[1], cam.Up[2]),
		fmt.Sprintf("gamepad: %s  cursor captured: %t", g.ctrl.ActiveGamepad(), g.ctrl.CursorCaptured()),
		"WASD move, LShift/Space up/down, Q/E roll, mouse look, Esc release cursor, C copy pose",
	}
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, float64(8+i*16))
		op.ColorScale.ScaleWithColor(colornames.White)
		text.Draw(screen, line, g.face, op)
	}
}

func (g *Game) drawSegment(screen *ebiten.Image, viewProj mgl32.Mat4, a, b mgl32.Vec3, clr color.Color, w, h int) {
	pa, okA := ProjectPoint(viewProj, a, w, h)
	pb, okB := ProjectPoint(viewProj, b, w, h)
	if !okA || !okB {
		return
	}
	vector.StrokeLine(screen, pa.X(), pa.Y(), pb.X(), pb.Y(), 1, clr, true)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// ProjectPoint maps a world point to screen pixels. Points behind the near
// plane are rejected rather than clipped.
func ProjectPoint(viewProj mgl32.Mat4, p mgl32.Vec3, w, h int) (mgl32.Vec2, bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 0.1 {
		return mgl32.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x := (ndc.X() + 1) / 2 * float32(w)
	y := (1 - ndc.Y()) / 2 * float32(h)
	return mgl32.Vec2{x, y}, true
}

// gridSegments returns the lines of a square grid on the y=0 plane.
func gridSegments(half int, step float32) [][2]mgl32.Vec3 {
	var segs [][2]mgl32.Vec3
	extent := float32(half) * step
	for i := -half; i <= half; i++ {
		o := float32(i) * step
		segs = append(segs,
			[2]mgl32.Vec3{{o, 0, -extent}, {o, 0, extent}},
			[2]mgl32.Vec3{{-extent, 0, o}, {extent, 0, o}},
		)
	}
	return segs
}
