package flycam

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vecNear compares componentwise with an absolute tolerance.
func vecNear(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > eps || d < -eps {
			return false
		}
	}
	return true
}

func randomVec(r *rand.Rand) mgl32.Vec3 {
	return mgl32.Vec3{
		r.Float32()*2 - 1,
		r.Float32()*2 - 1,
		r.Float32()*2 - 1,
	}
}

// randomBasisPairs returns forward/up pairs that are clearly non-colinear.
func randomBasisPairs(n int) [][2]mgl32.Vec3 {
	r := rand.New(rand.NewSource(42))
	pairs := make([][2]mgl32.Vec3, 0, n)
	for len(pairs) < n {
		f, u := randomVec(r), randomVec(r)
		if f.Len() < 0.1 || u.Len() < 0.1 || f.Cross(u).Len() < 0.05*f.Len()*u.Len() {
			continue
		}
		pairs = append(pairs, [2]mgl32.Vec3{f, u})
	}
	return pairs
}

func TestOrthonormalizeProducesOrthonormalBasis(t *testing.T) {
	for _, p := range randomBasisPairs(500) {
		fwd, up, right := Orthonormalize(p[0], p[1])

		assert.InDelta(t, 1, fwd.Len(), 1e-5, "forward length for %v", p)
		assert.InDelta(t, 1, up.Len(), 1e-5, "up length for %v", p)
		assert.InDelta(t, 1, right.Len(), 1e-5, "right length for %v", p)
		assert.InDelta(t, 0, fwd.Dot(up), 1e-5, "forward.up for %v", p)
		assert.InDelta(t, 0, fwd.Dot(right), 1e-5, "forward.right for %v", p)
		assert.InDelta(t, 0, up.Dot(right), 1e-5, "up.right for %v", p)

		// right-handed: right = forward x up
		assert.True(t, vecNear(right, fwd.Cross(up), 1e-5))
	}
}

func TestOrthonormalizeKeepsForwardDirection(t *testing.T) {
	fwd, up, _ := Orthonormalize(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{1, 1, 0})

	assert.True(t, vecNear(fwd, mgl32.Vec3{1, 0, 0}, 1e-6), "forward %v", fwd)
	assert.True(t, vecNear(up, mgl32.Vec3{0, 1, 0}, 1e-6), "up %v", up)
}

func TestOrthonormalizeIdempotent(t *testing.T) {
	for _, p := range randomBasisPairs(200) {
		f1, u1, r1 := Orthonormalize(p[0], p[1])
		f2, u2, r2 := Orthonormalize(f1, u1)

		require.True(t, vecNear(f2, f1, 1e-6), "forward %v vs %v", f1, f2)
		require.True(t, vecNear(u2, u1, 1e-6), "up %v vs %v", u1, u2)
		require.True(t, vecNear(r2, r1, 1e-6), "right %v vs %v", r1, r2)
	}
}
