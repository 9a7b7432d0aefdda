package trial

import (
	"context"
	"sync"
)

// SweepPoint is one sample of the friction -> displacement curve.
type SweepPoint struct {
	Friction float64 `json:"friction"`
	FinalX   float64 `json:"final_x"`
}

// Grid returns samples+1 evenly spaced frictions covering [0, 1].
func Grid(samples int) []float64 {
	if samples < 1 {
		samples = 1
	}
	fs := make([]float64, samples+1)
	for i := range fs {
		fs[i] = float64(i) / float64(samples)
	}
	return fs
}

// Sweep runs one independent trial per friction sample, concurrently.
// Trials share nothing, so the only coordination is the wait. Results
// come back in input order.
func (r *Runner) Sweep(ctx context.Context, frictions []float64) ([]SweepPoint, error) {
	points := make([]SweepPoint, len(frictions))

	var wg sync.WaitGroup
	for i, f := range frictions {
		wg.Add(1)
		go func(idx int, friction float64) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			default:
			}

			points[idx] = SweepPoint{Friction: friction, FinalX: r.Run(friction)}
		}(i, f)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return points, nil
}
