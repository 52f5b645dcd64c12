package parser

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEntryPath(t *testing.T) {
	e := Entry{Name: "SAC", Scale: 50}
	assert.Equal(t, "build/test/SAC.txt", e.Path(Prefix))
	assert.Equal(t, "/tmp/dataSAC.txt", e.Path("/tmp/data"))
}

func TestDefaultRegistry(t *testing.T) {
	assert.Equal(t, []string{"SAC", "DAC", "ECR", "DBG", "DAG", "DRN"}, DefaultRegistry.Names())

	scales := make([]float64, len(DefaultRegistry))
	for i, e := range DefaultRegistry {
		scales[i] = e.Scale
	}
	assert.Equal(t, []float64{50, 12, 1, 1, 1, 50}, scales)
}

func TestReadTable(t *testing.T) {
	input := "# E header\n0 10 20 500\n\n1\t11  21 510 # trailing\n  2 1.2e1 -22 NaN\n"
	table, err := ReadTable(strings.NewReader(input), "SAC.txt")
	require.NoError(t, err)

	assert.Equal(t, 3, table.Rows())
	assert.Equal(t, 4, table.Cols())
	cols := table.Columns()
	assert.Equal(t, 510.0, cols[3][1])
	assert.Equal(t, 12.0, cols[1][2])
	assert.True(t, math.IsNaN(cols[3][2]))
}

func TestTableColumns(t *testing.T) {
	table, err := ReadTable(strings.NewReader("1 2 3 4 5\n6 7 8 9 10\n"), "x")
	require.NoError(t, err)

	cols := table.Columns()
	require.Len(t, cols, 5)
	assert.Equal(t, []float64{1, 6}, cols[0])
	assert.Equal(t, []float64{4, 9}, cols[3])
	assert.Equal(t, []float64{5, 10}, cols[4])
}

func TestReadTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		field int
	}{
		{name: "non-numeric field", input: "1 2 3 4\n5 six 7 8\n", line: 2, field: 2},
		{name: "ragged row", input: "1 2 3 4\n5 6 7\n", line: 2},
		{name: "empty file", input: ""},
		{name: "only comments", input: "# nothing\n\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(tc.input), "bad.txt")
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "want *ParseError, got %T", err)
			assert.Equal(t, "bad.txt", perr.Path)
			assert.Equal(t, tc.line, perr.Line)
			assert.Equal(t, tc.field, perr.Field)
		})
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ECR.txt", "1 2 3 4\n")

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, path, table.Name)
	assert.Equal(t, 1, table.Rows())
}

func TestLoadTableMissing(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "DAC.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
