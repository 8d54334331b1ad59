package arm

import (
	"fmt"

	"github.com/setanarut/vec"
)

// SegmentDef describes one segment when building a chain.
type SegmentDef struct {
	// Offset is the segment vector in its parent's frame. Its length is the
	// segment length and its direction the initial joint pose.
	Offset   vec.Vec2
	MaxSpeed float64
}

// Chain is an ordered path of bones hanging off a root.
//
// The chain owns its bones; each bone keeps only a back reference to its
// parent. Topology and lengths are fixed for the chain's lifetime.
type Chain struct {
	root     *Bone
	segments []*Bone
}

// NewChain builds a chain rooted at root with one bone per definition.
func NewChain(root vec.Vec2, defs ...SegmentDef) (*Chain, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyChain
	}
	c := &Chain{
		root:     newRootBone(root),
		segments: make([]*Bone, 0, len(defs)),
	}
	parent := c.root
	for i, d := range defs {
		if d.Offset.Dot(d.Offset) < normalizeEpsilon {
			return nil, fmt.Errorf("segment %d has zero length: %w", i, ErrInvalidShape)
		}
		b := newBone(parent, d.Offset, d.MaxSpeed, i)
		c.segments = append(c.segments, b)
		parent = b
	}
	return c, nil
}

// NewStraightChain builds a straight chain pointing along direction, with
// every joint at zero and the same speed limit on every segment.
func NewStraightChain(root vec.Vec2, direction float64, lengths []float64, maxSpeed float64) (*Chain, error) {
	defs := make([]SegmentDef, len(lengths))
	for i, l := range lengths {
		defs[i] = SegmentDef{Offset: vec.Vec2{X: l}, MaxSpeed: maxSpeed}
	}
	c, err := NewChain(root, defs...)
	if err != nil {
		return nil, err
	}
	c.root.Transform.SetRotation(direction)
	return c, nil
}

// Root returns the root bone. It has no parent and zero length.
func (c *Chain) Root() *Bone {
	return c.root
}

// Segments returns the segment bones from root to tip.
func (c *Chain) Segments() []*Bone {
	return c.segments
}

// Segment returns the i-th segment.
func (c *Chain) Segment(i int) *Bone {
	return c.segments[i]
}

// Tip returns the last segment.
func (c *Chain) Tip() *Bone {
	return c.segments[len(c.segments)-1]
}

// Len returns the number of segments.
func (c *Chain) Len() int {
	return len(c.segments)
}

// Reach returns the summed segment length.
func (c *Chain) Reach() float64 {
	r := 0.0
	for _, b := range c.segments {
		r += b.Length()
	}
	return r
}

// SetRoot moves the chain's anchor.
func (c *Chain) SetRoot(p vec.Vec2) {
	c.root.Transform.Position = p
}

// Angles returns a snapshot of every joint angle, root joint first.
func (c *Chain) Angles() []float64 {
	angles := make([]float64, len(c.segments))
	for i, b := range c.segments {
		angles[i] = b.JointAngle()
	}
	return angles
}

// SetAngles restores joint angles taken with Angles.
func (c *Chain) SetAngles(angles []float64) {
	for i, a := range angles {
		if i >= len(c.segments) {
			return
		}
		c.segments[i].SetJointAngle(a)
	}
}

// Ends returns the world end point of every segment.
func (c *Chain) Ends() []vec.Vec2 {
	ends := make([]vec.Vec2, len(c.segments))
	for i, b := range c.segments {
		ends[i] = b.End()
	}
	return ends
}
