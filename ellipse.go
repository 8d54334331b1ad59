package arm

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// Ellipse keeps the free end of a segment inside it. It never constrains a
// segment's start, and points already inside are left alone.
//
// The closest boundary point is found with a fixed number of Newton steps
// on the parametric angle, so the pull is an approximation that favours a
// bounded cost over exact convergence.
type Ellipse struct {
	Center   vec.Vec2
	Axes     vec.Vec2 // semi-axes along the local X and Y
	Rotation float64

	toWorld Matrix
	toLocal Matrix
}

// NewEllipse returns an ellipse with positive semi-axes.
func NewEllipse(center, axes vec.Vec2, rotation float64) (*Ellipse, error) {
	if !(axes.X > 0 && axes.Y > 0) {
		return nil, fmt.Errorf("ellipse axes %v: %w", axes, ErrInvalidShape)
	}
	e := &Ellipse{Center: center, Axes: axes, Rotation: rotation}
	e.toWorld = NewMatrixRigid(center, rotation)
	e.toLocal = NewMatrixRigidInverse(e.toWorld)
	return e, nil
}

func (e *Ellipse) Bounds() BB {
	return InfiniteBB
}

// NormalizedNorm returns the length of p in the frame where the ellipse is
// the unit circle. Values above 1 are outside.
func (e *Ellipse) NormalizedNorm(p vec.Vec2) float64 {
	l := e.toLocal.Apply(p)
	return math.Hypot(l.X/e.Axes.X, l.Y/e.Axes.Y)
}

// SegmentCollision pulls b back onto the boundary when it has left the
// ellipse.
func (e *Ellipse) SegmentCollision(_, b vec.Vec2) *Collision {
	if e.NormalizedNorm(b) <= 1 {
		return nil
	}
	closest := e.ClosestPoint(b)
	return &Collision{Origin: b, Offset: closest.Sub(b)}
}

// ClosestPoint approximates the boundary point nearest to p.
func (e *Ellipse) ClosestPoint(p vec.Vec2) vec.Vec2 {
	l := e.toLocal.Apply(p)
	rx, ry := e.Axes.X, e.Axes.Y
	k := ry*ry - rx*rx

	theta := math.Atan2(l.Y, l.X)
	for range EllipseIterations {
		sin, cos := math.Sincos(theta)
		f := k*sin*cos + l.X*rx*sin - l.Y*ry*cos
		df := k*(cos*cos-sin*sin) + l.X*rx*cos + l.Y*ry*sin
		if math.Abs(df) < magicEpsilon {
			break
		}
		theta -= f / df
	}

	sin, cos := math.Sincos(theta)
	return e.toWorld.Apply(vec.Vec2{X: rx * cos, Y: ry * sin})
}
