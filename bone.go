package arm

import (
	"fmt"

	"github.com/setanarut/vec"
)

// Bone is one rigid link of a chain.
//
// A bone's Transform sits at its end point. Its start is the parent's
// world position, so the rotation that swings a bone is stored on the
// parent transform: JointAngle and SetJointAngle read and write the
// parent's local rotation, not the bone's own.
type Bone struct {
	Transform *Transform
	// MaxSpeed is the configured maximum angular speed of the joint at the
	// bone's start, before inertia weighting.
	MaxSpeed float64

	offset vec.Vec2
	parent *Bone
	index  int
}

func newRootBone(pos vec.Vec2) *Bone {
	return &Bone{
		Transform: NewTransform(pos, 0, nil),
		index:     -1,
	}
}

func newBone(parent *Bone, offset vec.Vec2, maxSpeed float64, index int) *Bone {
	return &Bone{
		Transform: NewTransform(offset, 0, parent.Transform),
		MaxSpeed:  maxSpeed,
		offset:    offset,
		parent:    parent,
		index:     index,
	}
}

func (b *Bone) String() string {
	return fmt.Sprintf("Bone %d %v -> %v", b.index, b.Start(), b.End())
}

// Parent returns the previous bone, nil for the root.
func (b *Bone) Parent() *Bone {
	return b.parent
}

// IsRoot reports whether b is the chain root.
func (b *Bone) IsRoot() bool {
	return b.parent == nil
}

// Index returns the segment index, -1 for the root.
func (b *Bone) Index() int {
	return b.index
}

// Offset returns the construction offset of the bone.
func (b *Bone) Offset() vec.Vec2 {
	return b.offset
}

// Start returns the world position of the joint at the bone's base.
func (b *Bone) Start() vec.Vec2 {
	if b.parent == nil {
		return b.Transform.WorldPosition()
	}
	return b.parent.Transform.WorldPosition()
}

// End returns the world position of the bone's free end.
func (b *Bone) End() vec.Vec2 {
	return b.Transform.WorldPosition()
}

// Length returns the construction length. It is never derived from the
// current start and end.
func (b *Bone) Length() float64 {
	return b.offset.Mag()
}

// Direction returns the world direction of the bone in (-π, π].
func (b *Bone) Direction() float64 {
	return AngleOf(b.End().Sub(b.Start()))
}

// PointAt returns the point at parameter t along the bone, 0 at the start
// and 1 at the end.
func (b *Bone) PointAt(t float64) vec.Vec2 {
	return b.Start().Lerp(b.End(), t)
}

// Project returns the parameter in [0, 1] of the point on the bone closest
// to p.
func (b *Bone) Project(p vec.Vec2) float64 {
	return closestT(p, b.Start(), b.End())
}

// JointAngle returns the local rotation of the joint at the bone's start.
// The root has no joint and reports 0.
func (b *Bone) JointAngle() float64 {
	if b.parent == nil {
		return 0
	}
	return b.parent.Transform.Rotation()
}

// SetJointAngle writes angle through to the parent's local rotation. It is
// a no-op on the root.
func (b *Bone) SetJointAngle(angle float64) {
	if b.parent == nil {
		return
	}
	b.parent.Transform.SetRotation(angle)
}

// RotateJoint adds delta to the joint angle.
func (b *Bone) RotateJoint(delta float64) {
	b.SetJointAngle(b.JointAngle() + delta)
}
