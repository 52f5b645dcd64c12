package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/user/nacplot/internal/analysis"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Default output size of a rendered chart.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

var plotColors = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}, // Blue
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 255}, // Orange
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255}, // Green
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255}, // Red
}

// NewLinePlot builds a line chart with one line per series, titled with the
// dataset name. Non-finite points are left out of the drawn line.
func NewLinePlot(data *analysis.ChartData) (*plot.Plot, error) {
	if data == nil || len(data.Series) == 0 {
		return nil, fmt.Errorf("no series to plot")
	}

	p := plot.New()
	p.Title.Text = data.Title
	p.X.Label.Text = "x"
	p.Add(plotter.NewGrid())

	for i, s := range data.Series {
		pts := make(plotter.XYs, 0, s.Len())
		for j := 0; j < s.Len(); j++ {
			x, y := s.XY(j)
			if !isFinite(x) || !isFinite(y) {
				continue
			}
			pts = append(pts, plotter.XY{X: x, Y: y})
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create line for %s: %w", s.Label, err)
		}
		line.Color = plotColors[i%len(plotColors)]
		line.LineStyle.Width = vg.Points(1.5)

		p.Add(line)
		p.Legend.Add(s.Label, line)
	}

	p.Legend.Top = true
	p.Legend.XOffs = -vg.Points(10)

	return p, nil
}

// RenderPNG draws the chart and returns the encoded PNG.
func RenderPNG(data *analysis.ChartData, width, height vg.Length) ([]byte, error) {
	p, err := NewLinePlot(data)
	if err != nil {
		return nil, err
	}

	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
