package arm

import (
	"math"

	"github.com/setanarut/vec"
)

// Normalize returns v scaled to unit length. Vectors whose squared length is
// below 1e-8 are returned unchanged.
func Normalize(v vec.Vec2) vec.Vec2 {
	magSq := v.Dot(v)
	if magSq < normalizeEpsilon {
		return v
	}
	return v.Scale(1 / math.Sqrt(magSq))
}

// Rotate rotates v counter-clockwise by angle radians.
func Rotate(v vec.Vec2, angle float64) vec.Vec2 {
	return rotateComplex(v, vec.ForAngle(angle))
}

// AngleOf returns the direction of v in (-π, π].
func AngleOf(v vec.Vec2) float64 {
	return ClipAngle(math.Atan2(v.Y, v.X))
}

// ClipAngle wraps a into (-π, π]. Non-finite input maps to 0 so that a bad
// value never reaches a joint.
func ClipAngle(a float64) float64 {
	if !isFinite(a) {
		return 0
	}
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
