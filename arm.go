package arm

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Arm ties a chain to a controller, an optional held object and a solver.
type Arm struct {
	ID         uuid.UUID
	Chain      *Chain
	Solver     *Solver
	Controller Controller

	held    Holdable
	logger  *zap.Logger
	onSpark func(*Arm, Spark)
}

type ArmOption func(*Arm)

func WithController(c Controller) ArmOption {
	return func(a *Arm) {
		a.Controller = c
	}
}

func WithSolver(s *Solver) ArmOption {
	return func(a *Arm) {
		a.Solver = s
	}
}

func WithLogger(logger *zap.Logger) ArmOption {
	return func(a *Arm) {
		a.logger = logger
	}
}

// WithSparkHandler registers a callback for every spark the arm throws.
func WithSparkHandler(fn func(*Arm, Spark)) ArmOption {
	return func(a *Arm) {
		a.onSpark = fn
	}
}

func NewArm(chain *Chain, opts ...ArmOption) *Arm {
	a := &Arm{
		ID:     uuid.New(),
		Chain:  chain,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Solver == nil {
		a.Solver = NewSolver(WithSolverLogger(a.logger))
	}
	a.logger = a.logger.With(zap.Stringer("arm", a.ID))
	return a
}

// Held returns the carried object, nil when the arm is empty.
func (a *Arm) Held() Holdable {
	return a.held
}

// Grab attaches h to the tip.
func (a *Arm) Grab(h Holdable) {
	a.held = h
	h.MoveTo(a.Chain.Tip().End())
	a.logger.Info("grabbed object", zap.Float64("radius", h.Radius()))
}

// Release drops the carried object and returns it.
func (a *Arm) Release() Holdable {
	h := a.held
	a.held = nil
	if h != nil {
		a.logger.Info("released object")
	}
	return h
}

// Tick advances the arm by dt seconds against the given colliders.
func (a *Arm) Tick(colliders []*Collider, dt float64) StepResult {
	if a.Controller == nil {
		return StepResult{}
	}
	target, ok := a.Controller.Target(a)
	if !ok {
		return StepResult{}
	}

	probe := 0.0
	if a.held != nil {
		target = a.held.AdjustTarget(target)
		probe = a.held.Radius()
	}

	result := a.Solver.StepProbe(a.Chain, target, colliders, dt, probe)

	if a.held != nil {
		a.held.MoveTo(a.Chain.Tip().End())
	}
	for _, sp := range result.Sparks {
		a.logger.Debug("spark",
			zap.Stringer("id", sp.ID),
			zap.Int("segment", sp.Segment),
			zap.Float64("speed", sp.Speed))
		if a.onSpark != nil {
			a.onSpark(a, sp)
		}
	}
	return result
}
