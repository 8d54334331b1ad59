package arm

import (
	"fmt"

	"github.com/setanarut/vec"
)

// HalfPlane forbids everything behind the line through Point. Normal points
// into the allowed side.
type HalfPlane struct {
	Point  vec.Vec2
	Normal vec.Vec2
}

// NewHalfPlane normalizes normal and rejects zero normals.
func NewHalfPlane(point, normal vec.Vec2) (*HalfPlane, error) {
	if normal.Dot(normal) < normalizeEpsilon {
		return nil, fmt.Errorf("half-plane normal %v: %w", normal, ErrInvalidShape)
	}
	return &HalfPlane{Point: point, Normal: Normalize(normal)}, nil
}

func (hp *HalfPlane) Bounds() BB {
	return InfiniteBB
}

// Distance returns the signed distance of p from the boundary, negative
// inside the forbidden side.
func (hp *HalfPlane) Distance(p vec.Vec2) float64 {
	return p.Sub(hp.Point).Dot(hp.Normal)
}

// SegmentCollision tests the endpoint that reaches deeper into the forbidden
// side.
func (hp *HalfPlane) SegmentCollision(a, b vec.Vec2) *Collision {
	p := a
	if b.Sub(a).Dot(hp.Normal) < 0 {
		p = b
	}
	d := hp.Distance(p)
	if d >= 0 {
		return nil
	}
	return &Collision{Origin: p, Offset: hp.Normal.Scale(-d)}
}

func (hp *HalfPlane) PointCollision(center vec.Vec2, radius float64) *Collision {
	d := hp.Distance(center) - radius
	if d >= 0 {
		return nil
	}
	return &Collision{
		Origin: center.Sub(hp.Normal.Scale(radius)),
		Offset: hp.Normal.Scale(-d),
	}
}
