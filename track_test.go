package arm_test

import (
	"math"
	"testing"

	"github.com/setanarut/arm"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackStepClipsToBudget(t *testing.T) {
	chain, err := arm.NewStraightChain(vec.Vec2{}, 0, []float64{100, 50}, 1)
	require.NoError(t, err)
	root, tip := chain.Segment(0), chain.Tip()

	assert.InDelta(t, 0.1, arm.TrackStep(root, vec.Vec2{Y: 100}, tip, 0.1, 1), 1e-12)
	assert.InDelta(t, -0.1, arm.TrackStep(root, vec.Vec2{Y: -100}, tip, 0.1, 1), 1e-12)
	assert.InDelta(t, math.Pi/2, arm.TrackStep(root, vec.Vec2{Y: 100}, tip, 10, 1), 1e-12)
	assert.InDelta(t, math.Pi, arm.TrackStep(root, vec.Vec2{X: -100}, tip, 10, 1), 1e-12)
}

func TestTrackStepUsesPivotOfBone(t *testing.T) {
	chain, err := arm.NewStraightChain(vec.Vec2{}, 0, []float64{100, 50}, 1)
	require.NoError(t, err)
	elbow := chain.Tip()

	// From the elbow at (100, 0) the target sits straight up.
	assert.InDelta(t, math.Pi/2, arm.TrackStep(elbow, vec.Vec2{X: 100, Y: 80}, elbow, 10, 1), 1e-12)
	// Tracking the middle of the tip from the root.
	got := arm.TrackStep(chain.Segment(0), vec.Vec2{X: 125, Y: 125}, elbow, 10, 0.5)
	assert.InDelta(t, math.Pi/4, got, 1e-12)
}

func TestTrackStepDegenerate(t *testing.T) {
	chain, err := arm.NewStraightChain(vec.Vec2{}, 0, []float64{100, 50}, 1)
	require.NoError(t, err)
	root, tip := chain.Segment(0), chain.Tip()

	tests := map[string]struct {
		target  vec.Vec2
		tracked *arm.Bone
		budget  float64
		t       float64
	}{
		"zero budget":       {vec.Vec2{Y: 100}, tip, 0, 1},
		"negative budget":   {vec.Vec2{Y: 100}, tip, -1, 1},
		"nan budget":        {vec.Vec2{Y: 100}, tip, math.NaN(), 1},
		"target on pivot":   {vec.Vec2{}, tip, 1, 1},
		"tracked on pivot":  {vec.Vec2{Y: 100}, root, 1, 0},
		"nan target":        {vec.Vec2{X: math.NaN(), Y: 1}, tip, 1, 1},
		"already on target": {vec.Vec2{X: 300}, tip, 1, 1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 0.0, arm.TrackStep(root, tc.target, tc.tracked, tc.budget, tc.t))
		})
	}
}
