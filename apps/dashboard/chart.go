package dashboard

import (
	"math"
	"strings"

	"land-regen/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// ChartPoints returns the points handed to the chart, one per ndvi value.
// Values are passed through untouched.
func ChartPoints(result *models.NDVIResult) []models.SeriesEntry {
	return result.Entries()
}

// renderChart plots NDVI against date on a fixed [0, 1] axis. Only the
// plotted copies are clamped so out-of-range values sit on the axis edge.
func renderChart(points []models.SeriesEntry, height int) string {
	if len(points) == 0 {
		return ""
	}

	plotted := make([]float64, len(points))
	for i, p := range points {
		plotted[i] = math.Min(1, math.Max(0, p.Value))
	}
	if len(plotted) == 1 {
		plotted = append(plotted, plotted[0])
	}

	graph := asciigraph.Plot(plotted,
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.Caption("NDVI"),
	)

	return graph + "\n" + dateAxis(points, graphWidth(graph))
}

func graphWidth(graph string) int {
	width := 0
	for _, line := range strings.Split(graph, "\n") {
		if w := lipgloss.Width(line); w > width {
			width = w
		}
	}
	return width
}

// dateAxis labels the first and last date under the plot
func dateAxis(points []models.SeriesEntry, width int) string {
	first := points[0].Date
	last := points[len(points)-1].Date
	if len(points) == 1 || first == last {
		return dimStyle.Render(first)
	}

	gap := width - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	return dimStyle.Render(first + strings.Repeat(" ", gap) + last)
}
