package flycam

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrDegenerateBasis = errors.New("flycam: forward and up must be non-zero and non-colinear")
	ErrInvalidSpeed    = errors.New("flycam: camera speeds must be finite and non-negative")
)

// colinearEpsilon bounds |forward x up| relative to |forward||up|.
const colinearEpsilon = 1e-6

// DebugCamera is the per-entity flycam state. Forward and Up are kept unit
// length and perpendicular by Integrate; callers may overwrite any field
// between frames, as long as Forward and Up stay non-colinear.
type DebugCamera struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
	Up       mgl32.Vec3

	// Units per second at full input.
	SpeedTranslate float32
	// Radians per second at full input.
	SpeedRotate float32
}

func DefaultDebugCamera() DebugCamera {
	return DebugCamera{
		Position:       mgl32.Vec3{0, 0, 0},
		Forward:        mgl32.Vec3{1, 0, 0},
		Up:             mgl32.Vec3{0, 1, 0},
		SpeedTranslate: 100,
		SpeedRotate:    math.Pi / 4,
	}
}

// NewDebugCamera builds a validated camera.
func NewDebugCamera(position, forward, up mgl32.Vec3, speedTranslate, speedRotate float32) (*DebugCamera, error) {
	cam := &DebugCamera{
		Position:       position,
		Forward:        forward,
		Up:             up,
		SpeedTranslate: speedTranslate,
		SpeedRotate:    speedRotate,
	}
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	return cam, nil
}

// Validate checks the construction-time contract that the per-frame update
// relies on. It is not called by Integrate.
func (c *DebugCamera) Validate() error {
	if err := validateBasis(c.Forward, c.Up); err != nil {
		return err
	}
	if !validSpeed(c.SpeedTranslate) || !validSpeed(c.SpeedRotate) {
		return fmt.Errorf("%w: translate=%v rotate=%v", ErrInvalidSpeed, c.SpeedTranslate, c.SpeedRotate)
	}
	return nil
}

func validateBasis(forward, up mgl32.Vec3) error {
	fl, ul := forward.Len(), up.Len()
	if fl == 0 || ul == 0 || isNaNVec(forward) || isNaNVec(up) {
		return fmt.Errorf("%w: forward=%v up=%v", ErrDegenerateBasis, forward, up)
	}
	if forward.Cross(up).Len() <= colinearEpsilon*fl*ul {
		return fmt.Errorf("%w: forward=%v up=%v", ErrDegenerateBasis, forward, up)
	}
	return nil
}

func validSpeed(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}

func isNaNVec(v mgl32.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return true
		}
	}
	return false
}
