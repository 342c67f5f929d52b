package flycam

import "github.com/go-gl/mathgl/mgl32"

// Integrate applies one frame of intent to cam.
//
// The basis is orthonormalized first and translation is mapped through that
// corrected basis. Rotation is then applied as yaw about up, pitch about the
// yawed right, and roll about the pitched forward; each step leaves its own
// axis fixed, so forward and up stay close to orthonormal. They are not
// renormalized after rotating: whatever drift the rotations leave is removed
// by the orthonormalization at the start of the next call.
func Integrate(cam *DebugCamera, intent Intent) {
	fwd, up, right := Orthonormalize(cam.Forward, cam.Up)
	cam.Forward = fwd
	cam.Up = up

	basis := mgl32.Mat3FromCols(fwd, up, right)
	cam.Position = cam.Position.Add(basis.Mul3x1(intent.Translate).Mul(cam.SpeedTranslate))

	yaw := mgl32.QuatRotate(intent.Rotate.X()*cam.SpeedRotate, cam.Up)
	cam.Forward = yaw.Rotate(cam.Forward)
	right = yaw.Rotate(right)

	pitch := mgl32.QuatRotate(intent.Rotate.Y()*cam.SpeedRotate, right)
	cam.Forward = pitch.Rotate(cam.Forward)
	cam.Up = pitch.Rotate(cam.Up)

	roll := mgl32.QuatRotate(intent.Rotate.Z()*cam.SpeedRotate, cam.Forward)
	cam.Up = roll.Rotate(cam.Up)
}
