package flycam

import "github.com/go-gl/mathgl/mgl32"

// CameraTransform is the renderer-facing look-at pose.
type CameraTransform struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
}

func ProjectPose(cam *DebugCamera) CameraTransform {
	return CameraTransform{
		Eye:    cam.Position,
		Target: cam.Position.Add(cam.Forward),
		Up:     cam.Up,
	}
}

func (t CameraTransform) View() mgl32.Mat4 {
	return mgl32.LookAtV(t.Eye, t.Target, t.Up)
}

// Rotation is the look-at rotation as computed by mgl32.QuatLookAtV.
func (t CameraTransform) Rotation() mgl32.Quat {
	return mgl32.QuatLookAtV(t.Eye, t.Target, t.Up)
}

func (t CameraTransform) Forward() mgl32.Vec3 {
	return t.Target.Sub(t.Eye).Normalize()
}
