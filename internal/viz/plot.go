package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/frical/internal/calib"
	"github.com/san-kum/frical/internal/trial"
)

const (
	plotHeight = 10
	plotWidth  = 70
)

// ConvergenceChart renders positional error against iteration number.
func ConvergenceChart(history []calib.Trial) string {
	if len(history) == 0 {
		return ""
	}
	errs := make([]float64, len(history))
	for i, t := range history {
		errs[i] = t.Error
	}
	return asciigraph.Plot(errs,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("positional error vs iteration"),
	)
}

// TrajectoryChart renders the x position of a single trial over its steps.
func TrajectoryChart(xs []float64, friction float64) string {
	if len(xs) == 0 {
		return ""
	}
	return asciigraph.Plot(xs,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("x position vs step (friction %.2f)", friction)),
	)
}

// SweepChart renders the friction -> displacement curve from a sweep.
func SweepChart(points []trial.SweepPoint) string {
	if len(points) == 0 {
		return ""
	}
	xs := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.FinalX
	}
	return asciigraph.Plot(xs,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("final x vs friction sample"),
	)
}
