package img2ink

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// TraceGraph renders the auto-tune trace as a PNG line chart of cost
// and coverage per iteration, with the preset's coverage target drawn
// as a reference line. Useful when checking why a tune settled where
// it did.
func TraceGraph(trace []TunePoint, target float64, w io.Writer) error {
	if len(trace) == 0 {
		return fmt.Errorf("img2ink: empty tune trace")
	}

	xvalues := make([]float64, len(trace))
	costs := make([]float64, len(trace))
	coverages := make([]float64, len(trace))
	targets := make([]float64, len(trace))
	for i, pt := range trace {
		xvalues[i] = float64(pt.Iteration)
		costs[i] = pt.Cost
		coverages[i] = pt.Coverage
		targets[i] = target
	}

	graph := chart.Chart{
		XAxis: chart.XAxis{Name: "Iteration"},
		YAxis: chart.YAxis{Name: "Cost"},
		YAxisSecondary: chart.YAxis{
			Name: "Coverage",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "cost",
				XValues: xvalues,
				YValues: costs,
			},
			chart.ContinuousSeries{
				Name:    "coverage",
				YAxis:   chart.YAxisSecondary,
				XValues: xvalues,
				YValues: coverages,
			},
			chart.ContinuousSeries{
				Name:    "target",
				YAxis:   chart.YAxisSecondary,
				XValues: xvalues,
				YValues: targets,
				Style: chart.Style{
					StrokeDashArray: []float64{4, 4},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
