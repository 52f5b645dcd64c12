package analysis

import "math"

// Legend labels of the three plotted series.
const (
	LabelE1  = "E1"
	LabelE2  = "E2"
	LabelNac = "nac"
)

// MinColumns is the number of fields a dataset row needs: x, E1, E2 and the raw nac value.
const MinColumns = 4

// Series is one named line over the shared x values.
type Series struct {
	Label string
	X     []float64
	Y     []float64
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.X) }

// XY returns the i'th point; it satisfies plotter.XYer.
func (s Series) XY(i int) (float64, float64) { return s.X[i], s.Y[i] }

// ChartData holds everything drawn on one chart.
type ChartData struct {
	Title  string
	Series []Series
}

// NonFinite counts the points with a NaN or infinite coordinate. The
// renderer leaves these out of the drawn line.
func (s Series) NonFinite() int {
	n := 0
	for i := range s.X {
		if !isFinite(s.X[i]) || !isFinite(s.Y[i]) {
			n++
		}
	}
	return n
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
