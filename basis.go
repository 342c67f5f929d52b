package flycam

import "github.com/go-gl/mathgl/mgl32"

// Orthonormalize turns a possibly skewed (forward, up) pair into a
// right-handed orthonormal triple with right = forward x up. Forward is
// authoritative: up is re-derived against it, then forward is re-derived
// against the new up and right to remove residual skew.
//
// Precondition: forward and up are non-zero and not colinear. There is no
// sane fallback vector, so violating it yields NaNs rather than a guess.
func Orthonormalize(forward, up mgl32.Vec3) (fwd, upOut, right mgl32.Vec3) {
	right = forward.Cross(up)
	upOut = right.Cross(forward)
	fwd = upOut.Cross(right)

	upOut = upOut.Normalize()
	fwd = fwd.Normalize()
	right = fwd.Cross(upOut)
	return fwd, upOut, right
}
