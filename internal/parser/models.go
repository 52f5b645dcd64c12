package parser

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	// Prefix is the directory every dataset file is read from.
	Prefix = "build/test/"
	// Ext is appended to a dataset name to form its file name.
	Ext = ".txt"
)

// Entry is one row of the dataset registry: the file to read and the
// divisor applied to its fourth column.
type Entry struct {
	Name  string
	Scale float64
}

// Path builds the input file path for the entry, e.g. "build/test/SAC.txt".
func (e Entry) Path(prefix string) string {
	return prefix + e.Name + Ext
}

// Registry is the ordered list of datasets driving a run.
type Registry []Entry

// DefaultRegistry lists the six datasets in display order.
var DefaultRegistry = Registry{
	{Name: "SAC", Scale: 50},
	{Name: "DAC", Scale: 12},
	{Name: "ECR", Scale: 1},
	{Name: "DBG", Scale: 1},
	{Name: "DAG", Scale: 1},
	{Name: "DRN", Scale: 50},
}

// Names returns the dataset names in registry order.
func (r Registry) Names() []string {
	names := make([]string, len(r))
	for i, e := range r {
		names[i] = e.Name
	}
	return names
}

// ErrFileNotFound is returned by LoadTable when the dataset file does not exist.
var ErrFileNotFound = errors.New("dataset file not found")

// ParseError reports a malformed dataset file. Line and Field are 1-based;
// Field is 0 when the problem concerns the whole line or file.
type ParseError struct {
	Path  string
	Line  int
	Field int
	Msg   string
	Err   error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Field > 0 {
		loc = fmt.Sprintf("%s field %d", loc, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", loc, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Table is a loaded numeric matrix, one matrix row per data line of the file.
type Table struct {
	Name string
	data *mat.Dense
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	r, _ := t.data.Dims()
	return r
}

// Cols returns the number of fields per row.
func (t *Table) Cols() int {
	_, c := t.data.Dims()
	return c
}

// Columns transposes the table and returns each original column as its own
// contiguous slice. The slices share one backing array owned by the caller.
func (t *Table) Columns() [][]float64 {
	transposed := mat.DenseCopyOf(t.data.T())
	cols := make([][]float64, t.Cols())
	for j := range cols {
		cols[j] = transposed.RawRowView(j)
	}
	return cols
}
