package arm

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/setanarut/vec"
)

const (
	infinity         float64 = math.MaxFloat64
	magicEpsilon     float64 = 1e-6
	normalizeEpsilon float64 = 1e-8
)

// Solver iteration budgets. They were tuned for a fixed 20 ms tick;
// changing them changes how the arm moves, not only how fast it is solved.
const (
	// Passes is the number of outer sweeps over the chain per tick.
	Passes = 4
	// Retries is the number of times a colliding rotation is halved before
	// it is reverted.
	Retries = 4
	// EllipseIterations is the number of Newton steps used to project a point
	// onto an ellipse boundary.
	EllipseIterations = 5
)

// inertiaSamples are the parametric positions sampled along each bone when
// estimating its rotational moment.
var inertiaSamples = [...]float64{0.1, 0.3, 0.5, 0.7, 0.9}

var (
	ErrEmptyChain    = errors.New("arm: chain has no segments")
	ErrInvalidShape  = errors.New("arm: invalid collider shape")
	ErrInvalidConfig = errors.New("arm: invalid config")
)

// Layer selects which segments of a chain a collider applies to.
type Layer uint8

const (
	// LayerAnySegment colliders are checked against every segment.
	LayerAnySegment Layer = iota
	// LayerEndOnly colliders are checked against the tip segment only.
	LayerEndOnly
)

func (l Layer) String() string {
	switch l {
	case LayerAnySegment:
		return "any"
	case LayerEndOnly:
		return "end"
	default:
		return "unknown"
	}
}

// Collision is a contact point and the minimal translation that resolves
// the penetration at that point. Offset always points out of the forbidden
// region.
type Collision struct {
	Origin vec.Vec2
	Offset vec.Vec2
}

// Depth returns the penetration depth.
func (c *Collision) Depth() float64 {
	return c.Offset.Mag()
}

func (c *Collision) finite() bool {
	return isFinite(c.Origin.X) && isFinite(c.Origin.Y) &&
		isFinite(c.Offset.X) && isFinite(c.Offset.Y)
}

// Contact is a collision attributed to a chain segment.
type Contact struct {
	// Segment index in Chain.Segments().
	Segment   int
	Collision Collision
}

// Spark is the visual event emitted for a hard contact.
type Spark struct {
	ID      uuid.UUID
	Point   vec.Vec2
	Segment int
	Speed   float64
}

// StepResult is the outcome of one solver tick.
type StepResult struct {
	// FirstCollision is the first rigid collision met during the tick, nil
	// when the chain moved freely.
	FirstCollision *Contact
	Sparks         []Spark
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clamp(f, min, max float64) float64 {
	if f > min {
		return math.Min(f, max)
	} else {
		return math.Min(min, max)
	}
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}

// closestT returns the clamped parameter of the point on a-b closest to p.
// Zero length segments report 0.
func closestT(p, a, b vec.Vec2) float64 {
	delta := b.Sub(a)
	lenSq := delta.Dot(delta)
	if lenSq < normalizeEpsilon {
		return 0
	}
	return clamp01(p.Sub(a).Dot(delta) / lenSq)
}

// rotateComplex uses complex number multiplication to rotate this by other.
//
// Scaling will occur if other is not a unit vector.
func rotateComplex(this, other vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: this.X*other.X - this.Y*other.Y, Y: this.X*other.Y + this.Y*other.X}
}

// perp returns a perpendicular vector. (90 degree rotation)
func perp(a vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -a.Y, Y: a.X}
}

// reversePerp returns a perpendicular vector. (-90 degree rotation)
func reversePerp(a vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: a.Y, Y: -a.X}
}
