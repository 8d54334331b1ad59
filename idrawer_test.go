package arm_test

import (
	"testing"

	"github.com/setanarut/arm"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	flags    uint
	circles  int
	segments [][2]vec.Vec2
	fat      []float64
	polygons [][]vec.Vec2
	dots     []vec.Vec2
}

func (r *recorder) DrawCircle(pos vec.Vec2, angle, radius float64, outline, fill arm.FColor, data any) {
	r.circles++
}

func (r *recorder) DrawSegment(a, b vec.Vec2, fill arm.FColor, data any) {
	r.segments = append(r.segments, [2]vec.Vec2{a, b})
}

func (r *recorder) DrawFatSegment(a, b vec.Vec2, radius float64, outline, fill arm.FColor, data any) {
	r.fat = append(r.fat, radius)
}

func (r *recorder) DrawPolygon(count int, verts []vec.Vec2, radius float64, outline, fill arm.FColor, data any) {
	r.polygons = append(r.polygons, verts[:count])
}

func (r *recorder) DrawDot(size float64, pos vec.Vec2, fill arm.FColor, data any) {
	r.dots = append(r.dots, pos)
}

func (r *recorder) Flags() uint {
	return r.flags
}

func (r *recorder) OutlineColor() arm.FColor {
	return arm.FColor{A: 1}
}

func (r *recorder) ColliderColor(c *arm.Collider, data any) arm.FColor {
	return arm.FColor{G: 1, A: 1}
}

func (r *recorder) ContactColor() arm.FColor {
	return arm.FColor{R: 1, A: 1}
}

func (r *recorder) Data() any {
	return nil
}

func TestDrawChain(t *testing.T) {
	chain, err := arm.NewStraightChain(vec.Vec2{X: 3}, 0, []float64{100, 50}, 1)
	require.NoError(t, err)

	r := &recorder{flags: arm.DrawBones}
	arm.DrawChain(chain, map[int]arm.BoneStyle{0: {Width: 10}}, r)

	assert.Equal(t, []float64{5}, r.fat)
	require.Len(t, r.segments, 1)
	assertVec(t, vec.Vec2{X: 103}, r.segments[0][0], 1e-12)
	assertVec(t, vec.Vec2{X: 153}, r.segments[0][1], 1e-12)
	assert.Equal(t, []vec.Vec2{{X: 3}}, r.dots)

	off := &recorder{}
	arm.DrawChain(chain, nil, off)
	assert.Empty(t, off.segments)
	assert.Empty(t, off.dots)
}

func TestDrawCollider(t *testing.T) {
	circle, err := arm.NewCircle(vec.Vec2{}, 5)
	require.NoError(t, err)
	half, err := arm.NewHalfPlane(vec.Vec2{}, vec.Vec2{Y: 1})
	require.NoError(t, err)
	poly, err := arm.NewPolyShape([]vec.Vec2{{}, {X: 10}, {X: 10, Y: 10}})
	require.NoError(t, err)
	ellipse, err := arm.NewEllipse(vec.Vec2{X: 1}, vec.Vec2{X: 20, Y: 10}, 0)
	require.NoError(t, err)

	r := &recorder{flags: arm.DrawColliders}
	arm.DrawScene(nil, nil, []*arm.Collider{
		arm.NewCollider(circle, arm.LayerAnySegment),
		arm.NewCollider(half, arm.LayerAnySegment),
		arm.NewCollider(poly, arm.LayerAnySegment),
		arm.NewCollider(ellipse, arm.LayerEndOnly),
	}, r)

	assert.Equal(t, 1, r.circles)
	require.Len(t, r.segments, 1)
	assert.InDelta(t, 0, r.segments[0][0].Y, 1e-12)
	assert.InDelta(t, 0, r.segments[0][1].Y, 1e-12)

	require.Len(t, r.polygons, 2)
	assert.Len(t, r.polygons[0], 3)
	assert.Len(t, r.polygons[1], 32)
	assertVec(t, vec.Vec2{X: 21}, r.polygons[1][0], 1e-9)
	for _, v := range r.polygons[1] {
		assert.InDelta(t, 1, ellipse.NormalizedNorm(v), 1e-9)
	}

	assert.Panics(t, func() {
		arm.DrawCollider(&arm.Collider{Class: unknownShape{}}, r)
	})
}

func TestDrawContact(t *testing.T) {
	c := &arm.Collision{Origin: vec.Vec2{X: 1, Y: 1}, Offset: vec.Vec2{Y: 2}}

	r := &recorder{flags: arm.DrawContacts}
	arm.DrawContact(c, r)
	assert.Equal(t, []vec.Vec2{{X: 1, Y: 1}}, r.dots)
	assert.Equal(t, [][2]vec.Vec2{{{X: 1, Y: 1}, {X: 1, Y: 3}}}, r.segments)

	off := &recorder{flags: arm.DrawBones}
	arm.DrawContact(c, off)
	assert.Empty(t, off.dots)
}

type unknownShape struct{}

func (unknownShape) SegmentCollision(a, b vec.Vec2) *arm.Collision {
	return nil
}

func (unknownShape) Bounds() arm.BB {
	return arm.InfiniteBB
}
