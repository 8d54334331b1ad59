package arm

import (
	"fmt"

	"github.com/setanarut/vec"
)

// IShape is the geometry behind a collider.
type IShape interface {
	// SegmentCollision returns how the segment a-b must move to stop
	// penetrating the shape, or nil.
	SegmentCollision(a, b vec.Vec2) *Collision
	// Bounds returns the region outside of which no segment can collide.
	Bounds() BB
}

// PointShape is implemented by shapes that can also push a circular probe
// (a held object) out of themselves.
type PointShape interface {
	PointCollision(center vec.Vec2, radius float64) *Collision
}

// Collider is a shape tagged with the segments it applies to.
//
// Colliders are rebuilt every tick by their owners and carry no state of
// their own.
type Collider struct {
	Class IShape
	Layer Layer
	// Soft colliders are position constraints rather than obstacles. They do
	// not block rotations and are only resolved by the settle pass.
	Soft bool
	// UserData links the collider back to the game object that produced it.
	UserData any
}

// NewCollider wraps shape in a rigid collider on the given layer.
func NewCollider(shape IShape, layer Layer) *Collider {
	return &Collider{Class: shape, Layer: layer}
}

func (c *Collider) String() string {
	return fmt.Sprintf("%T(%v)", c.Class, c.Layer)
}

// SegmentCollision queries the shape after a bounds check. Non-finite
// results are discarded.
func (c *Collider) SegmentCollision(a, b vec.Vec2) *Collision {
	if !c.Class.Bounds().IntersectsSegment(a, b) {
		return nil
	}
	col := c.Class.SegmentCollision(a, b)
	if col == nil || !col.finite() {
		return nil
	}
	return col
}

// PointCollision queries shapes implementing PointShape. Others report nil.
func (c *Collider) PointCollision(center vec.Vec2, radius float64) *Collision {
	ps, ok := c.Class.(PointShape)
	if !ok {
		return nil
	}
	if !c.Class.Bounds().Grow(radius).ContainsVect(center) {
		return nil
	}
	col := ps.PointCollision(center, radius)
	if col == nil || !col.finite() {
		return nil
	}
	return col
}

// SplitColliders partitions colliders by layer.
func SplitColliders(colliders []*Collider) (anySegment, endOnly []*Collider) {
	for _, c := range colliders {
		if c == nil || c.Class == nil {
			continue
		}
		switch c.Layer {
		case LayerEndOnly:
			endOnly = append(endOnly, c)
		default:
			anySegment = append(anySegment, c)
		}
	}
	return anySegment, endOnly
}
