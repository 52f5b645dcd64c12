package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/user/nacplot/internal/parser"
)

// GridPoints is the number of x samples tabulated per model.
const GridPoints = 100

// Sample is one tabulated grid point: the two adiabatic energies and the
// coupling between them.
type Sample struct {
	X   float64
	E1  float64
	E2  float64
	NAC float64
}

// Tabulate samples m on GridPoints evenly spaced points over [Left, Right).
// Eigenvector signs are kept continuous from one point to the next before the
// coupling is evaluated.
func Tabulate(m NumericalModel) ([]Sample, error) {
	d := m.Domain()
	if d.States != 2 {
		return nil, fmt.Errorf("%s: tabulation needs 2 states, model has %d", m.Name(), d.States)
	}

	h := mat.NewSymDense(d.States, nil)
	dh := mat.NewSymDense(d.States, nil)
	var prev []*mat.VecDense

	step := (d.Right - d.Left) / GridPoints
	samples := make([]Sample, 0, GridPoints)
	for k := 0; k < GridPoints; k++ {
		x := step*float64(k) + d.Left

		m.Hamiltonian(h, x)
		e, v, err := Diagonalize(h)
		if err != nil {
			return nil, fmt.Errorf("%s at x=%g: %w", m.Name(), x, err)
		}
		if prev != nil {
			for j := range v {
				CorrectSign(prev[j], v[j])
			}
		}
		prev = v

		m.DHamiltonian(dh, x)
		nac := NACMatrix(dh, v, e)
		samples = append(samples, Sample{X: x, E1: e[0], E2: e[1], NAC: nac.At(0, 1)})
	}
	return samples, nil
}

// WriteTable writes samples as "x E1 E2 nac" lines in %.5e format.
func WriteTable(w io.Writer, samples []Sample) error {
	bw := bufio.NewWriter(w)
	for _, s := range samples {
		if _, err := fmt.Fprintf(bw, "%.5e %.5e %.5e %.5e\n", s.X, s.E1, s.E2, s.NAC); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Generate tabulates the model behind every registry entry and writes it to
// the entry's path under prefix, creating the directory when needed.
func Generate(prefix string, registry parser.Registry, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, entry := range registry {
		m, err := ByName(entry.Name)
		if err != nil {
			return err
		}
		samples, err := Tabulate(m)
		if err != nil {
			return err
		}

		path := entry.Path(prefix)
		if err := writeFile(path, samples); err != nil {
			return fmt.Errorf("failed to write %s: %w", entry.Name, err)
		}
		d := m.Domain()
		logger.Info("Wrote dataset",
			zap.String("name", entry.Name),
			zap.String("path", path),
			zap.Int("points", len(samples)),
			zap.Float64("left", d.Left),
			zap.Float64("right", d.Right))
	}
	return nil
}

func writeFile(path string, samples []Sample) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTable(file, samples); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
