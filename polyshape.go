package arm

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// SplittingPlane is a polygon edge: its first vertex and outward normal.
type SplittingPlane struct {
	V0, N vec.Vec2
}

// PolyShape is a convex polygon.
type PolyShape struct {
	Planes []SplittingPlane
	bb     BB
}

// NewPolyShape builds a convex polygon from at least three points in either
// winding. Normals are oriented so the interior lies on their negative side.
func NewPolyShape(points []vec.Vec2) (*PolyShape, error) {
	count := len(points)
	if count < 3 {
		return nil, fmt.Errorf("polygon with %d points: %w", count, ErrInvalidShape)
	}

	centroid := vec.Vec2{}
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Scale(1 / float64(count))

	planes := make([]SplittingPlane, count)
	for i := range count {
		v0 := points[i]
		v1 := points[(i+1)%count]
		edge := v1.Sub(v0)
		if edge.Dot(edge) < normalizeEpsilon {
			return nil, fmt.Errorf("polygon edge %d is degenerate: %w", i, ErrInvalidShape)
		}
		n := Normalize(reversePerp(edge))
		if centroid.Sub(v0).Dot(n) > 0 {
			n = n.Neg()
		}
		planes[i] = SplittingPlane{V0: v0, N: n}
	}

	return &PolyShape{Planes: planes, bb: NewBBForPoints(points...)}, nil
}

func (ps *PolyShape) Count() int {
	return len(ps.Planes)
}

func (ps *PolyShape) Vert(i int) vec.Vec2 {
	return ps.Planes[i].V0
}

func (ps *PolyShape) Bounds() BB {
	return ps.bb
}

// Contains reports whether p lies strictly inside every edge.
func (ps *PolyShape) Contains(p vec.Vec2) bool {
	for _, plane := range ps.Planes {
		if p.Sub(plane.V0).Dot(plane.N) >= 0 {
			return false
		}
	}
	return true
}

// SegmentCollision returns the smallest of the endpoint fixes and the side
// fix for a segment crossing the polygon.
func (ps *PolyShape) SegmentCollision(a, b vec.Vec2) *Collision {
	var best *Collision
	consider := func(c *Collision) {
		if c != nil && (best == nil || c.Offset.Dot(c.Offset) < best.Offset.Dot(best.Offset)) {
			best = c
		}
	}

	consider(ps.pointFix(a))
	consider(ps.pointFix(b))
	if ps.overlapsSegment(a, b) {
		consider(ps.sideFix(a, b))
	}
	return best
}

// pointFix pushes a point strictly inside the polygon out through the
// nearest edge.
func (ps *PolyShape) pointFix(p vec.Vec2) *Collision {
	minDepth := infinity
	var n vec.Vec2
	for _, plane := range ps.Planes {
		d := p.Sub(plane.V0).Dot(plane.N)
		if d >= 0 {
			return nil
		}
		if -d < minDepth {
			minDepth = -d
			n = plane.N
		}
	}
	return &Collision{Origin: p, Offset: n.Scale(minDepth)}
}

// overlapsSegment is a separating axis test over the polygon normals and
// the segment normal. Touching counts as separated.
func (ps *PolyShape) overlapsSegment(a, b vec.Vec2) bool {
	for _, plane := range ps.Planes {
		if math.Min(a.Sub(plane.V0).Dot(plane.N), b.Sub(plane.V0).Dot(plane.N)) >= 0 {
			return false
		}
	}

	axis := b.Sub(a)
	if axis.Dot(axis) < normalizeEpsilon {
		return false
	}
	side := perp(axis)
	var pos, neg bool
	for _, plane := range ps.Planes {
		d := plane.V0.Sub(a).Dot(side)
		pos = pos || d > 0
		neg = neg || d < 0
	}
	return pos && neg
}

// sideFix looks at the vertices projecting onto the open interior of a-b,
// finds the deepest one on each side of the segment and moves the segment
// past the shallower side. A side without vertices is ignored.
func (ps *PolyShape) sideFix(a, b vec.Vec2) *Collision {
	delta := b.Sub(a)
	length := delta.Mag()
	if length < magicEpsilon {
		return nil
	}
	u := delta.Scale(1 / length)
	s := perp(u)

	var posDepth, negDepth float64
	var posAt, negAt float64
	for _, plane := range ps.Planes {
		rel := plane.V0.Sub(a)
		along := rel.Dot(u)
		if along <= 0 || along >= length {
			continue
		}
		d := rel.Dot(s)
		if d > posDepth {
			posDepth, posAt = d, along
		} else if -d > negDepth {
			negDepth, negAt = -d, along
		}
	}

	switch {
	case posDepth > 0 && (negDepth == 0 || posDepth <= negDepth):
		return &Collision{Origin: a.Add(u.Scale(posAt)), Offset: s.Scale(posDepth)}
	case negDepth > 0:
		return &Collision{Origin: a.Add(u.Scale(negAt)), Offset: s.Scale(-negDepth)}
	default:
		return nil
	}
}
