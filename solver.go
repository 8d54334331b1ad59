package arm

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/setanarut/vec"
	"go.uber.org/zap"
)

const (
	DefaultSparkSpeed  = 250.0
	DefaultSparkChance = 0.5
)

// Solver moves a chain towards a target once per tick while keeping it out
// of rigid colliders.
//
// Besides the chain's joint angles, the state carried between ticks is a
// smoothed end-point speed per segment, used to decide when a contact is
// hard enough to throw a spark, and the collider trees.
type Solver struct {
	// SparkSpeed is the smoothed segment speed above which a contact always
	// throws a spark.
	SparkSpeed float64
	// SparkChance is the per-second probability of a spark for slower
	// contacts.
	SparkChance float64

	rng      *rand.Rand
	logger   *zap.Logger
	velocity []float64

	// Per-layer broadphase, kept across ticks and synced to the colliders
	// passed to each step.
	anySegment *ColliderTree
	endOnly    *ColliderTree
}

type SolverOption func(*Solver)

// WithSeed makes spark selection deterministic.
func WithSeed(seed int64) SolverOption {
	return func(s *Solver) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSparks sets the spark speed threshold and per-second chance.
func WithSparks(speed, chance float64) SolverOption {
	return func(s *Solver) {
		s.SparkSpeed = speed
		s.SparkChance = chance
	}
}

// WithSolverLogger sets the logger used for debug output.
func WithSolverLogger(logger *zap.Logger) SolverOption {
	return func(s *Solver) {
		s.logger = logger
	}
}

func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{
		SparkSpeed:  DefaultSparkSpeed,
		SparkChance: DefaultSparkChance,
		rng:         rand.New(rand.NewSource(1)),
		logger:      zap.NewNop(),
		anySegment:  NewColliderTree(),
		endOnly:     NewColliderTree(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Velocities returns the smoothed end-point speed of every segment.
func (s *Solver) Velocities() []float64 {
	return s.velocity
}

// Reset forgets the smoothed velocities.
func (s *Solver) Reset() {
	s.velocity = nil
}

// Step runs one tick of dt seconds.
func (s *Solver) Step(chain *Chain, target vec.Vec2, colliders []*Collider, dt float64) StepResult {
	return s.StepProbe(chain, target, colliders, dt, 0)
}

// StepProbe is Step with a circular probe of the given radius carried at
// the tip, checked against colliders implementing PointShape.
func (s *Solver) StepProbe(chain *Chain, target vec.Vec2, colliders []*Collider, dt, probe float64) StepResult {
	segments := chain.Segments()
	if len(s.velocity) != len(segments) {
		s.velocity = make([]float64, len(segments))
	}
	if !(dt > 0) || !isFinite(dt) || !isFinite(target.X) || !isFinite(target.Y) {
		s.logger.Warn("solver step skipped", zap.Float64("dt", dt))
		return StepResult{}
	}

	anySegment, endOnly := SplitColliders(colliders)
	s.anySegment.Sync(anySegment)
	s.endOnly.Sync(endOnly)
	q := query{
		chain:      chain,
		anySegment: s.anySegment,
		endOnly:    s.endOnly,
		probe:      probe,
	}

	startEnds := chain.Ends()
	firsts := make([]*Collision, len(segments))
	var result StepResult
	record := func(k int, c *Collision) {
		if firsts[k] == nil {
			firsts[k] = c
		}
		if result.FirstCollision == nil {
			result.FirstCollision = &Contact{Segment: k, Collision: *c}
		}
	}

	for range Passes {
		weights := EffectiveInertia(chain)
		for j, bone := range segments {
			budget := bone.MaxSpeed / weights[j] / Passes * dt
			delta := TrackStep(bone, target, chain.Tip(), budget, 1)
			if delta == 0 {
				continue
			}
			s.rotate(q, j, delta, record)
		}
		s.settle(q, dt)
	}

	for k, b := range segments {
		speed := b.End().Sub(startEnds[k]).Mag() / dt
		s.velocity[k] = 0.9*s.velocity[k] + 0.1*speed

		c := firsts[k]
		if c == nil {
			continue
		}
		if s.velocity[k] > s.SparkSpeed || s.rng.Float64() < s.SparkChance*dt {
			result.Sparks = append(result.Sparks, Spark{
				ID:      uuid.New(),
				Point:   c.Origin,
				Segment: k,
				Speed:   s.velocity[k],
			})
			s.velocity[k] = 0
		}
	}
	return result
}

// rotate applies delta to joint j. While any segment from j to the tip hits
// a rigid collider the applied rotation is halved; once the retries are
// spent the joint goes back to where it was.
func (s *Solver) rotate(q query, j int, delta float64, record func(int, *Collision)) {
	bone := q.chain.Segment(j)
	orig := bone.JointAngle()
	applied := delta
	bone.SetJointAngle(orig + applied)

	for retry := 0; ; retry++ {
		k, col := q.firstRigid(j)
		if col == nil {
			return
		}
		record(k, col)
		if retry == Retries {
			bone.SetJointAngle(orig)
			s.logger.Debug("rotation reverted",
				zap.Int("segment", j),
				zap.Int("blocked", k),
				zap.Float64("delta", delta))
			return
		}
		applied /= 2
		bone.SetJointAngle(orig + applied)
	}
}

// settle nudges every penetrating segment out through its ancestors. The
// contact point, projected onto the segment, is steered along the push-out
// with a small fixed budget, applied immediately.
func (s *Solver) settle(q query, dt float64) {
	budget := math.Pi * dt / Passes
	segments := q.chain.Segments()
	for k, bone := range segments {
		for range Passes {
			col := q.at(k, true)
			if col == nil {
				break
			}
			t := bone.Project(col.Origin)
			goal := bone.PointAt(t).Add(col.Offset)
			for _, ancestor := range segments[:k+1] {
				ancestor.RotateJoint(TrackStep(ancestor, goal, bone, budget, t))
			}
		}
	}
}

// query holds the per-tick collider partition.
type query struct {
	chain      *Chain
	anySegment *ColliderTree
	endOnly    *ColliderTree
	probe      float64
}

// firstRigid returns the first segment from j to the tip touching a rigid
// collider.
func (q query) firstRigid(j int) (int, *Collision) {
	for k := j; k < q.chain.Len(); k++ {
		if col := q.at(k, false); col != nil {
			return k, col
		}
	}
	return -1, nil
}

// at checks segment k. The tip also sees end-only colliders and, with a
// probe, point collisions at its end.
func (q query) at(k int, soft bool) *Collision {
	bone := q.chain.Segment(k)
	a, b := bone.Start(), bone.End()
	tip := k == q.chain.Len()-1

	if col := q.check(q.anySegment, a, b, tip, soft); col != nil {
		return col
	}
	if tip {
		return q.check(q.endOnly, a, b, tip, soft)
	}
	return nil
}

// check tests the segment against every collider before trying the probe.
func (q query) check(tree *ColliderTree, a, b vec.Vec2, tip, soft bool) (hit *Collision) {
	tree.SegmentQuery(a, b, func(c *Collider) bool {
		if c.Soft && !soft {
			return true
		}
		hit = c.SegmentCollision(a, b)
		return hit == nil
	})
	if hit != nil || !tip || q.probe <= 0 {
		return hit
	}
	tree.Query(NewBBForCircle(b, q.probe), func(c *Collider) bool {
		if c.Soft && !soft {
			return true
		}
		hit = c.PointCollision(b, q.probe)
		return hit == nil
	})
	return hit
}
