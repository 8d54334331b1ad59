package arm

import (
	"math"

	"github.com/setanarut/vec"
)

// TrackStep returns the signed rotation of bone's joint that best turns the
// point at parameter t along tip towards target, clipped to ±budget.
//
// It is a single greedy correction, not a closed-form solve. Degenerate
// geometry (target or tracked point on the joint) and non-finite values
// yield 0.
func TrackStep(bone *Bone, target vec.Vec2, tip *Bone, budget, t float64) float64 {
	if !(budget > 0) {
		return 0
	}
	pivot := bone.Start()
	toTip := tip.PointAt(t).Sub(pivot)
	toTarget := target.Sub(pivot)
	if toTip.Dot(toTip) < normalizeEpsilon || toTarget.Dot(toTarget) < normalizeEpsilon {
		return 0
	}

	delta := ClipAngle(math.Atan2(toTarget.Y, toTarget.X) - math.Atan2(toTip.Y, toTip.X))
	if !isFinite(delta) {
		return 0
	}
	return clamp(delta, -budget, budget)
}
