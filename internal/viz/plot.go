package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/planetary/internal/engine"
)

// PlotHistory renders one body's coordinate against the step index.
// Axis is "x" or "y".
func PlotHistory(history [][]engine.Vec2, body int, axis, label string, height int) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("viz: empty history")
	}
	if body < 0 || body >= len(history[0]) {
		return "", fmt.Errorf("viz: body index %d out of range [0, %d)", body, len(history[0]))
	}

	series := make([]float64, len(history))
	for i, snap := range history {
		switch axis {
		case "x":
			series[i] = snap[body].X
		case "y":
			series[i] = snap[body].Y
		default:
			return "", fmt.Errorf("viz: axis must be \"x\" or \"y\", got %q", axis)
		}
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("%s · %s over %d steps", label, axis, len(history)-1)),
	)
	return graph, nil
}
