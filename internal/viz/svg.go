package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/frical/internal/calib"
)

// ConvergenceSVG renders the calibration history as an SVG line chart,
// iteration on the horizontal axis and positional error on the
// vertical. Returns "" when there are fewer than two records to draw.
func ConvergenceSVG(history []calib.Trial, width, height int) string {
	if len(history) < 2 {
		return ""
	}

	maxErr := history[0].Error
	for _, t := range history {
		if t.Error > maxErr {
			maxErr = t.Error
		}
	}
	if maxErr == 0 {
		maxErr = 1
	}

	const margin = 20.0
	w := float64(width)
	h := float64(height)
	spanX := w - 2*margin
	spanY := h - 2*margin

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	coords := make([]string, len(history))
	for i, t := range history {
		x := margin + spanX*float64(i)/float64(len(history)-1)
		y := margin + spanY*(1-t.Error/maxErr)
		coords[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}

	sb.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="#00ff00" stroke-width="2"/>
`, strings.Join(coords, " ")))

	for _, c := range coords {
		xy := strings.Split(c, ",")
		sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="3" fill="#00ff00"/>
`, xy[0], xy[1]))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
