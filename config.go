package flycam

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// CameraDefaults seeds cameras created from configuration.
type CameraDefaults struct {
	SpeedTranslate float32 `yaml:"speed_translate"`
	SpeedRotate    float32 `yaml:"speed_rotate"`
}

// Config is everything the controller reads each frame. It can be replaced
// between frames with Controller.SetConfig.
type Config struct {
	Active   DebugCameraActive `yaml:"active"`
	Keyboard KeyboardBindings  `yaml:"keyboard"`
	Gamepad  GamepadBindings   `yaml:"gamepad"`
	Camera   CameraDefaults    `yaml:"camera"`
}

func DefaultConfig() Config {
	return Config{
		Active:   DefaultDebugCameraActive(),
		Keyboard: DefaultKeyboardBindings(),
		Gamepad:  DefaultGamepadBindings(),
		Camera: CameraDefaults{
			SpeedTranslate: 100,
			SpeedRotate:    math.Pi / 4,
		},
	}
}

// NewCamera returns the default camera with speeds taken from the config.
func (c Config) NewCamera() DebugCamera {
	cam := DefaultDebugCamera()
	cam.SpeedTranslate = c.Camera.SpeedTranslate
	cam.SpeedRotate = c.Camera.SpeedRotate
	return cam
}

func (c Config) Validate() error {
	if !validSpeed(c.Camera.SpeedTranslate) || !validSpeed(c.Camera.SpeedRotate) {
		return fmt.Errorf("%w: translate=%v rotate=%v", ErrInvalidSpeed, c.Camera.SpeedTranslate, c.Camera.SpeedRotate)
	}
	return nil
}

// ParseConfig overlays YAML onto DefaultConfig, so omitted fields keep their
// defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("flycam: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("flycam: load config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("flycam: load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("flycam: marshal config: %w", err)
	}
	return data, nil
}
