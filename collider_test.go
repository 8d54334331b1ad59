package arm_test

import (
	"math"
	"testing"

	"github.com/setanarut/arm"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleSegmentCollision(t *testing.T) {
	circle, err := arm.NewCircle(vec.Vec2{}, 30)
	require.NoError(t, err)

	a, b := vec.Vec2{X: -50, Y: 10}, vec.Vec2{X: 50, Y: 10}
	col := circle.SegmentCollision(a, b)
	require.NotNil(t, col)
	assertVec(t, vec.Vec2{X: 0, Y: 10}, col.Origin, 1e-9)
	assert.InDelta(t, 20, col.Depth(), 1e-9)
	assertVec(t, vec.Vec2{X: 0, Y: 20}, col.Offset, 1e-9)

	// Applying the push once clears the circle.
	moved := arm.NewCollider(circle, arm.LayerAnySegment).SegmentCollision(a.Add(col.Offset), b.Add(col.Offset))
	assert.Nil(t, moved)
}

func TestCircleSegmentCollisionDegenerate(t *testing.T) {
	circle, err := arm.NewCircle(vec.Vec2{}, 30)
	require.NoError(t, err)

	col := circle.SegmentCollision(vec.Vec2{X: -50}, vec.Vec2{X: 50})
	require.NotNil(t, col)
	assert.InDelta(t, 30, col.Depth(), 1e-9)
	assertVec(t, vec.Vec2{X: 0, Y: 30}, col.Offset, 1e-9)

	// A zero length segment sitting on the center still gets a direction.
	col = circle.SegmentCollision(vec.Vec2{}, vec.Vec2{})
	require.NotNil(t, col)
	assert.InDelta(t, 30, col.Depth(), 1e-9)
}

func TestCircleMiss(t *testing.T) {
	circle, err := arm.NewCircle(vec.Vec2{X: 100}, 30)
	require.NoError(t, err)
	c := arm.NewCollider(circle, arm.LayerAnySegment)

	assert.Nil(t, c.SegmentCollision(vec.Vec2{}, vec.Vec2{Y: 100}))
	assert.Nil(t, c.SegmentCollision(vec.Vec2{X: 100, Y: 30}, vec.Vec2{X: 200, Y: 30}))

	_, err = arm.NewCircle(vec.Vec2{}, 0)
	assert.ErrorIs(t, err, arm.ErrInvalidShape)
}

func TestCirclePointCollision(t *testing.T) {
	circle, err := arm.NewCircle(vec.Vec2{}, 10)
	require.NoError(t, err)
	c := arm.NewCollider(circle, arm.LayerEndOnly)

	col := c.PointCollision(vec.Vec2{X: 12}, 5)
	require.NotNil(t, col)
	assertVec(t, vec.Vec2{X: 3}, col.Offset, 1e-9)
	assertVec(t, vec.Vec2{X: 7}, col.Origin, 1e-9)

	assert.Nil(t, c.PointCollision(vec.Vec2{X: 16}, 5))
}

func TestHalfPlaneCollision(t *testing.T) {
	hp, err := arm.NewHalfPlane(vec.Vec2{}, vec.Vec2{Y: 2})
	require.NoError(t, err)

	col := hp.SegmentCollision(vec.Vec2{Y: 10}, vec.Vec2{Y: -5})
	require.NotNil(t, col)
	assertVec(t, vec.Vec2{Y: -5}, col.Origin, 1e-12)
	assertVec(t, vec.Vec2{Y: 5}, col.Offset, 1e-12)

	// The deeper endpoint is picked whichever way the segment runs.
	col = hp.SegmentCollision(vec.Vec2{Y: -5}, vec.Vec2{Y: 10})
	require.NotNil(t, col)
	assertVec(t, vec.Vec2{Y: 5}, col.Offset, 1e-12)

	assert.Nil(t, hp.SegmentCollision(vec.Vec2{Y: 1}, vec.Vec2{X: 10, Y: 3}))

	col = hp.PointCollision(vec.Vec2{Y: 2}, 5)
	require.NotNil(t, col)
	assertVec(t, vec.Vec2{Y: 3}, col.Offset, 1e-12)

	_, err = arm.NewHalfPlane(vec.Vec2{}, vec.Vec2{})
	assert.ErrorIs(t, err, arm.ErrInvalidShape)
}

func square(t *testing.T) *arm.PolyShape {
	t.Helper()
	ps, err := arm.NewPolyShape([]vec.Vec2{
		{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10},
	})
	require.NoError(t, err)
	return ps
}

func TestPolyShapeNormalsPointOut(t *testing.T) {
	for name, points := range map[string][]vec.Vec2{
		"ccw": {{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10}},
		"cw":  {{X: -10, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: -10}, {X: -10, Y: -10}},
	} {
		ps, err := arm.NewPolyShape(points)
		require.NoError(t, err, name)
		for i, plane := range ps.Planes {
			assert.Less(t, plane.V0.Scale(-1).Dot(plane.N), 0.0, "%s plane %d", name, i)
		}
		assert.True(t, ps.Contains(vec.Vec2{X: 1, Y: 2}), name)
		assert.False(t, ps.Contains(vec.Vec2{X: 10, Y: 2}), name)
	}
}

func TestPolyShapeSideFix(t *testing.T) {
	col := square(t).SegmentCollision(vec.Vec2{X: -5, Y: -50}, vec.Vec2{X: -5, Y: 50})
	require.NotNil(t, col)
	assertVec(t, vec.Vec2{X: -5}, col.Offset, 1e-9)
	assert.InDelta(t, -5, col.Origin.X, 1e-9)
}

func TestPolyShapeEndpointFix(t *testing.T) {
	col := square(t).SegmentCollision(vec.Vec2{X: 0, Y: 7}, vec.Vec2{X: 0, Y: 50})
	require.NotNil(t, col)
	assertVec(t, vec.Vec2{X: 0, Y: 7}, col.Origin, 1e-12)
	assertVec(t, vec.Vec2{X: 0, Y: 3}, col.Offset, 1e-9)
}

func TestPolyShapeOutside(t *testing.T) {
	ps := square(t)
	c := arm.NewCollider(ps, arm.LayerAnySegment)
	segments := [][2]vec.Vec2{
		{{X: 20, Y: -50}, {X: 20, Y: 50}},
		{{X: -50, Y: 11}, {X: 50, Y: 11}},
		{{X: 25, Y: 0}, {X: 0, Y: 25}},
		{{X: 10, Y: -50}, {X: 10, Y: 50}},
	}
	for _, s := range segments {
		assert.Nil(t, ps.SegmentCollision(s[0], s[1]), "%v", s)
		assert.Nil(t, c.SegmentCollision(s[0], s[1]), "%v", s)
	}

	_, err := arm.NewPolyShape([]vec.Vec2{{}, {X: 1}})
	assert.ErrorIs(t, err, arm.ErrInvalidShape)
}

func TestEllipseLeavesInsidePointsAlone(t *testing.T) {
	e, err := arm.NewEllipse(vec.Vec2{}, vec.Vec2{X: 100, Y: 50}, 0)
	require.NoError(t, err)

	assert.Nil(t, e.SegmentCollision(vec.Vec2{X: 500}, vec.Vec2{X: 50}))
	assert.Nil(t, e.SegmentCollision(vec.Vec2{}, vec.Vec2{Y: 50}))
	assert.LessOrEqual(t, e.NormalizedNorm(vec.Vec2{X: 60, Y: 30}), 1.0)
}

func TestEllipsePullsEndBack(t *testing.T) {
	e, err := arm.NewEllipse(vec.Vec2{}, vec.Vec2{X: 100, Y: 50}, 0)
	require.NoError(t, err)

	col := e.SegmentCollision(vec.Vec2{}, vec.Vec2{X: 200})
	require.NotNil(t, col)
	assertVec(t, vec.Vec2{X: 200}, col.Origin, 1e-12)
	assertVec(t, vec.Vec2{X: -100}, col.Offset, 1e-6)

	col = e.SegmentCollision(vec.Vec2{}, vec.Vec2{Y: 100})
	require.NotNil(t, col)
	assertVec(t, vec.Vec2{Y: -50}, col.Offset, 1e-6)
}

func TestEllipseRotated(t *testing.T) {
	e, err := arm.NewEllipse(vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 100, Y: 50}, math.Pi/2)
	require.NoError(t, err)

	col := e.SegmentCollision(vec.Vec2{}, vec.Vec2{X: 10, Y: 210})
	require.NotNil(t, col)
	assertVec(t, vec.Vec2{X: 10, Y: 110}, col.Origin.Add(col.Offset), 1e-6)

	p := e.ClosestPoint(vec.Vec2{X: 100, Y: 60})
	assert.InDelta(t, 1, e.NormalizedNorm(p), 1e-3)

	_, err = arm.NewEllipse(vec.Vec2{}, vec.Vec2{X: 1}, 0)
	assert.ErrorIs(t, err, arm.ErrInvalidShape)
}

func TestSplitColliders(t *testing.T) {
	circle, err := arm.NewCircle(vec.Vec2{}, 1)
	require.NoError(t, err)
	anySeg, endOnly := arm.SplitColliders([]*arm.Collider{
		arm.NewCollider(circle, arm.LayerAnySegment),
		arm.NewCollider(circle, arm.LayerEndOnly),
		arm.NewCollider(circle, arm.LayerAnySegment),
		nil,
	})
	assert.Len(t, anySeg, 2)
	assert.Len(t, endOnly, 1)
}
