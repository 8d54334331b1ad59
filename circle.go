package arm

import (
	"fmt"

	"github.com/setanarut/vec"
)

type Circle struct {
	Center vec.Vec2
	Radius float64
}

// NewCircle returns a circle shape. The radius must be positive.
func NewCircle(center vec.Vec2, radius float64) (*Circle, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("circle radius %v: %w", radius, ErrInvalidShape)
	}
	return &Circle{Center: center, Radius: radius}, nil
}

func (circle *Circle) Bounds() BB {
	return NewBBForCircle(circle.Center, circle.Radius)
}

// SegmentCollision pushes the point of a-b closest to the center out to the
// circle's edge. When that point sits on the center the push follows the
// segment's left normal.
func (circle *Circle) SegmentCollision(a, b vec.Vec2) *Collision {
	closest := a.Lerp(b, closestT(circle.Center, a, b))
	delta := closest.Sub(circle.Center)
	d := delta.Mag()
	r := circle.Radius
	if d >= r {
		return nil
	}

	if d < magicEpsilon {
		n := Normalize(perp(b.Sub(a)))
		if n.Dot(n) < normalizeEpsilon {
			n = vec.Vec2{X: 0, Y: 1}
		}
		return &Collision{Origin: closest, Offset: n.Scale(r)}
	}
	return &Collision{Origin: closest, Offset: delta.Scale((r - d) / d)}
}

// PointCollision pushes a circular probe out of the circle.
func (circle *Circle) PointCollision(center vec.Vec2, radius float64) *Collision {
	delta := center.Sub(circle.Center)
	d := delta.Mag()
	rsum := circle.Radius + radius
	if d >= rsum {
		return nil
	}

	var n vec.Vec2
	if d > magicEpsilon {
		n = delta.Scale(1 / d)
	} else {
		n = vec.Vec2{X: 0, Y: 1}
	}
	return &Collision{
		Origin: center.Sub(n.Scale(radius)),
		Offset: n.Scale(rsum - d),
	}
}
