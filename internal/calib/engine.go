package calib

import (
	"context"
	"fmt"
	"math"
)

// Friction search bounds. The coefficient is physically meaningless
// outside this interval, and the bisection assumes the oracle is
// monotonically non-increasing across it.
const (
	SearchLow  = 0.0
	SearchHigh = 1.0
)

// Oracle is the black-box friction -> displacement function the engine
// inverts. *trial.Runner satisfies it.
type Oracle interface {
	Run(friction float64) float64
}

// Trial is one append-only record of the calibration history.
type Trial struct {
	Iteration int     `json:"iteration"`
	Guess     float64 `json:"guess"`
	Error     float64 `json:"error"`
}

// Observer receives each history record as it is produced.
type Observer func(Trial)

// Engine finds the friction value whose trial outcome matches a target
// x position, by bisecting [SearchLow, SearchHigh].
type Engine struct {
	oracle        Oracle
	maxIterations int
	tolerance     float64
	observers     []Observer
	history       []Trial
	converged     bool
}

func NewEngine(oracle Oracle, maxIterations int, tolerance float64) (*Engine, error) {
	if oracle == nil {
		return nil, ErrNilOracle
	}
	if maxIterations < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidIterations, maxIterations)
	}
	if tolerance <= 0 {
		return nil, fmt.Errorf("%w, got %f", ErrInvalidTolerance, tolerance)
	}
	return &Engine{
		oracle:        oracle,
		maxIterations: maxIterations,
		tolerance:     tolerance,
	}, nil
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// History returns the records of the most recent Calibrate call, in
// iteration order.
func (e *Engine) History() []Trial { return e.history }

// Converged reports whether the most recent Calibrate call met its
// tolerance within the iteration budget.
func (e *Engine) Converged() bool { return e.converged }

// Calibrate bisects the friction interval until a trial lands within
// tolerance of targetX or the iteration budget runs out. An exhausted
// budget is not an error: the last guess comes back best-effort, with
// the full history available for inspection. The history is reset on
// entry and never accumulates across calls.
//
// Each midpoint guess runs one isolated trial. When the trial overshoots
// the target the guess dissipated too little energy, so friction was too
// low and the lower bound moves up. Ties on the exact comparison fall to
// the too-high branch, narrowing toward lower friction. A NaN observable
// propagates into the error value rather than being masked.
func (e *Engine) Calibrate(ctx context.Context, targetX float64) (float64, error) {
	e.history = make([]Trial, 0, e.maxIterations)
	e.converged = false

	low, high := SearchLow, SearchHigh
	best := math.NaN()

	for i := 1; i <= e.maxIterations; i++ {
		select {
		case <-ctx.Done():
			return best, ctx.Err()
		default:
		}

		guess := (low + high) / 2
		observed := e.oracle.Run(guess)
		residual := math.Abs(observed - targetX)

		rec := Trial{Iteration: i, Guess: guess, Error: residual}
		e.history = append(e.history, rec)
		for _, o := range e.observers {
			o(rec)
		}
		best = guess

		if residual <= e.tolerance {
			e.converged = true
			return best, nil
		}

		if observed > targetX {
			low = guess
		} else {
			high = guess
		}
	}

	return best, nil
}
