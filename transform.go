package arm

import (
	"github.com/setanarut/vec"
)

// Transform is a node in a hierarchy of rigid frames.
//
// Position and rotation are local to Parent. A Transform without a parent
// lives directly in world space. The local rotation is always stored wrapped
// into (-π, π].
type Transform struct {
	Position vec.Vec2
	Parent   *Transform
	rotation float64
}

// NewTransform returns a transform at the local position pos, rotated by
// rotation and attached to parent. parent may be nil.
func NewTransform(pos vec.Vec2, rotation float64, parent *Transform) *Transform {
	t := &Transform{Position: pos, Parent: parent}
	t.SetRotation(rotation)
	return t
}

// Rotation returns the local rotation.
func (t *Transform) Rotation() float64 {
	return t.rotation
}

// SetRotation sets the local rotation.
func (t *Transform) SetRotation(rotation float64) {
	t.rotation = ClipAngle(rotation)
}

// Rotate adds delta to the local rotation.
func (t *Transform) Rotate(delta float64) {
	t.SetRotation(t.rotation + delta)
}

// WorldRotation returns the sum of local rotations up to the root, wrapped.
func (t *Transform) WorldRotation() float64 {
	r := 0.0
	for n := t; n != nil; n = n.Parent {
		r += n.rotation
	}
	return ClipAngle(r)
}

// WorldPosition returns the local position rotated by the parent's world
// rotation and translated by the parent's world position.
func (t *Transform) WorldPosition() vec.Vec2 {
	if t.Parent == nil {
		return t.Position
	}
	return t.Parent.WorldPosition().Add(Rotate(t.Position, t.Parent.WorldRotation()))
}
