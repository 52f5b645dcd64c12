package analysis

import (
	"errors"
	"fmt"

	"github.com/user/nacplot/internal/parser"
)

var (
	// ErrTooFewColumns is returned when a dataset has fewer than MinColumns fields per row.
	ErrTooFewColumns = errors.New("too few columns")
	// ErrZeroScale is returned for a registry entry whose scale factor is zero.
	ErrZeroScale = errors.New("scale factor is zero")
)

// DeriveSeries turns a loaded table into the three chart series: column 1 as
// E1, column 2 as E2 and column 3 divided by the entry's scale factor as nac,
// all against column 0. Columns past the fourth are ignored.
func DeriveSeries(entry parser.Entry, table *parser.Table) (*ChartData, error) {
	if table == nil {
		return nil, fmt.Errorf("%s: no table to derive series from", entry.Name)
	}
	if table.Cols() < MinColumns {
		return nil, fmt.Errorf("%s: %w: need %d, have %d", entry.Name, ErrTooFewColumns, MinColumns, table.Cols())
	}
	if entry.Scale == 0 {
		return nil, fmt.Errorf("%s: %w", entry.Name, ErrZeroScale)
	}

	cols := table.Columns()
	x := cols[0]

	nac := make([]float64, len(cols[3]))
	for i, v := range cols[3] {
		nac[i] = v / entry.Scale
	}

	return &ChartData{
		Title: entry.Name,
		Series: []Series{
			{Label: LabelE1, X: x, Y: cols[1]},
			{Label: LabelE2, X: x, Y: cols[2]},
			{Label: LabelNac, X: x, Y: nac},
		},
	}, nil
}
