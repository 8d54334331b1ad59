package arm

import (
	"github.com/setanarut/vec"
)

// Controller decides where an arm reaches each tick. ok is false when there
// is nothing to track.
type Controller interface {
	Target(arm *Arm) (target vec.Vec2, ok bool)
}

// PointerController follows an externally driven point, such as the mouse.
type PointerController struct {
	Point  vec.Vec2
	Active bool
}

func (pc *PointerController) Target(_ *Arm) (vec.Vec2, bool) {
	return pc.Point, pc.Active
}

// MoveTo updates and activates the pointer.
func (pc *PointerController) MoveTo(p vec.Vec2) {
	pc.Point = p
	pc.Active = true
}

// WaypointController visits a fixed list of points in order, moving on once
// the tip comes within Tolerance of the current one.
type WaypointController struct {
	Points    []vec.Vec2
	Tolerance float64
	Loop      bool
	current   int
}

func NewWaypointController(tolerance float64, loop bool, points ...vec.Vec2) *WaypointController {
	return &WaypointController{Points: points, Tolerance: tolerance, Loop: loop}
}

// Current returns the index of the waypoint being tracked.
func (wc *WaypointController) Current() int {
	return wc.current
}

func (wc *WaypointController) Target(arm *Arm) (vec.Vec2, bool) {
	if wc.current >= len(wc.Points) {
		return vec.Vec2{}, false
	}
	p := wc.Points[wc.current]
	if arm.Chain.Tip().End().Sub(p).Mag() <= wc.Tolerance {
		wc.current++
		if wc.current == len(wc.Points) && wc.Loop {
			wc.current = 0
		}
		if wc.current >= len(wc.Points) {
			return p, true
		}
		p = wc.Points[wc.current]
	}
	return p, true
}

// Holdable is an object an arm can carry at its tip.
type Holdable interface {
	// Radius of the object, used as a probe against colliders.
	Radius() float64
	// AdjustTarget may remap the arm's target while the object is held.
	AdjustTarget(target vec.Vec2) vec.Vec2
	// MoveTo places the object after the arm has moved.
	MoveTo(p vec.Vec2)
}

// Ball is a plain round object.
type Ball struct {
	Position vec.Vec2
	R        float64
}

func (b *Ball) Radius() float64 {
	return b.R
}

func (b *Ball) AdjustTarget(target vec.Vec2) vec.Vec2 {
	return target
}

func (b *Ball) MoveTo(p vec.Vec2) {
	b.Position = p
}

// ReachClamp wraps a Holdable and pulls targets back within Reach of
// Anchor.
type ReachClamp struct {
	Holdable
	Anchor vec.Vec2
	Reach  float64
}

func (rc *ReachClamp) AdjustTarget(target vec.Vec2) vec.Vec2 {
	target = rc.Holdable.AdjustTarget(target)
	d := target.Sub(rc.Anchor)
	if d.Mag() <= rc.Reach {
		return target
	}
	return rc.Anchor.Add(Normalize(d).Scale(rc.Reach))
}
