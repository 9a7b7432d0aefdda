package trial

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/frical/internal/world"
)

// Configuration errors, rejected before any world is built.
var (
	ErrInvalidStepCount = errors.New("trial: step count must be at least 1")
	ErrInvalidDt        = errors.New("trial: dt must be positive")
)

// Runner reduces a friction guess to a single scalar observable: the
// final x position after a fixed impulse and a fixed number of steps.
// Every run builds a brand-new world, so no solver state can leak
// between guesses.
type Runner struct {
	steps   int
	impulse mgl64.Vec2
	dt      float64
}

func NewRunner(steps int, impulse mgl64.Vec2) (*Runner, error) {
	return NewRunnerDt(steps, impulse, world.DefaultDt)
}

func NewRunnerDt(steps int, impulse mgl64.Vec2, dt float64) (*Runner, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidStepCount, steps)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("%w, got %f", ErrInvalidDt, dt)
	}
	return &Runner{steps: steps, impulse: impulse, dt: dt}, nil
}

func (r *Runner) Steps() int          { return r.steps }
func (r *Runner) Impulse() mgl64.Vec2 { return r.impulse }
func (r *Runner) Dt() float64         { return r.dt }

// Run performs one isolated trial and returns the final x position.
// The vertical coordinate is not part of the observable. No guess is
// rejected here; keeping guesses inside [0, 1] is the caller's job.
func (r *Runner) Run(frictionGuess float64) float64 {
	w := r.build(frictionGuess)
	for i := 0; i < r.steps; i++ {
		w.Step(r.dt)
	}
	pos, ok := w.ObjectState()
	if !ok {
		// Unreachable: build always adds the body.
		panic("trial: world lost its body mid-trial")
	}
	return pos.X()
}

// Trajectory runs one trial and records the x position after every
// step, for plotting.
func (r *Runner) Trajectory(frictionGuess float64) []float64 {
	w := r.build(frictionGuess)
	xs := make([]float64, r.steps)
	for i := 0; i < r.steps; i++ {
		w.Step(r.dt)
		pos, ok := w.ObjectState()
		if !ok {
			panic("trial: world lost its body mid-trial")
		}
		xs[i] = pos.X()
	}
	return xs
}

func (r *Runner) build(frictionGuess float64) *world.World {
	w := world.New(frictionGuess)
	w.AddDynamicBody(
		mgl64.Vec2{world.DefaultBodyX, world.DefaultBodyY},
		mgl64.Vec2{world.DefaultBodySize, world.DefaultBodySize},
		world.DefaultBodyMass,
	)
	w.ApplyImpulse(r.impulse)
	return w
}
