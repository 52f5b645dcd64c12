package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/plot/vg"

	"github.com/user/nacplot/internal/analysis"
	"github.com/user/nacplot/internal/parser"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingDisplay remembers what it was asked to show.
type recordingDisplay struct {
	titles []string
	open   bool
	closes int
	// cancel, when set, is called after the chart at cancelAt is shown.
	cancel   context.CancelFunc
	cancelAt int
}

func (d *recordingDisplay) Show(_ context.Context, c *Chart) error {
	if d.open {
		panic("chart shown while previous one still open")
	}
	d.open = true
	d.titles = append(d.titles, c.Title())
	if d.cancel != nil && len(d.titles)-1 == d.cancelAt {
		d.cancel()
	}
	return nil
}

func (d *recordingDisplay) Close() error {
	if d.open {
		d.closes++
	}
	d.open = false
	return nil
}

func writeDatasets(t *testing.T, rows map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range rows {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+parser.Ext), []byte(content), 0o644))
	}
	return dir + string(filepath.Separator)
}

func allDatasets(content string) map[string]string {
	m := make(map[string]string)
	for _, name := range parser.DefaultRegistry.Names() {
		m[name] = content
	}
	return m
}

func seriesByLabel(t *testing.T, data *analysis.ChartData, label string) analysis.Series {
	t.Helper()
	for _, s := range data.Series {
		if s.Label == label {
			return s
		}
	}
	require.FailNow(t, "missing series", label)
	return analysis.Series{}
}

func newTestSession(t *testing.T, prefix string) *Session {
	return New(WithPrefix(prefix), WithLogger(zaptest.NewLogger(t)), WithSize(2*vg.Inch, 2*vg.Inch))
}

func TestRunShowsEveryDataset(t *testing.T) {
	prefix := writeDatasets(t, allDatasets("0 1 2 3\n1 2 3 4\n2 3 4 5\n"))
	d := &recordingDisplay{}

	shown, err := newTestSession(t, prefix).Run(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, 6, shown)
	assert.Equal(t, []string{"SAC", "DAC", "ECR", "DBG", "DAG", "DRN"}, d.titles)
	assert.Equal(t, 6, d.closes)
	assert.False(t, d.open)
}

func TestLoadScalesNac(t *testing.T) {
	prefix := writeDatasets(t, map[string]string{"SAC": "0 10 20 500\n", "ECR": "1 2 3 4\n"})
	s := newTestSession(t, prefix)

	chart, err := s.Load(parser.Entry{Name: "SAC", Scale: 50})
	require.NoError(t, err)
	assert.Equal(t, []float64{10}, seriesByLabel(t, chart.Data, analysis.LabelNac).Y)
	assert.NotEmpty(t, chart.PNG)
	assert.Equal(t, 6, chart.Total)

	chart, err = s.Load(parser.Entry{Name: "ECR", Scale: 1})
	require.NoError(t, err)
	for label, want := range map[string]float64{analysis.LabelE1: 2, analysis.LabelE2: 3, analysis.LabelNac: 4} {
		series := seriesByLabel(t, chart.Data, label)
		assert.Equal(t, []float64{1}, series.X)
		assert.Equal(t, []float64{want}, series.Y, label)
	}
}

func TestRunAbortsOnMissingFile(t *testing.T) {
	files := allDatasets("1 2 3 4\n")
	delete(files, "ECR")
	prefix := writeDatasets(t, files)
	d := &recordingDisplay{}

	shown, err := newTestSession(t, prefix).Run(context.Background(), d)
	require.Error(t, err)

	assert.Equal(t, 2, shown)
	assert.Equal(t, []string{"SAC", "DAC"}, d.titles)
	assert.ErrorIs(t, err, parser.ErrFileNotFound)

	var derr *DatasetError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ECR", derr.Name)
	assert.Equal(t, prefix+"ECR.txt", derr.Path)
}

func TestRunAbortsOnParseError(t *testing.T) {
	files := allDatasets("1 2 3 4\n")
	files["SAC"] = "1 2 3 x\n"
	prefix := writeDatasets(t, files)
	d := &recordingDisplay{}

	shown, err := newTestSession(t, prefix).Run(context.Background(), d)
	require.Error(t, err)
	assert.Zero(t, shown)
	assert.Empty(t, d.titles)

	var perr *parser.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestRunStopsOnCancel(t *testing.T) {
	prefix := writeDatasets(t, allDatasets("1 2 3 4\n"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := &recordingDisplay{cancel: cancel, cancelAt: 0}

	shown, err := newTestSession(t, prefix).Run(ctx, d)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, shown)
	assert.Equal(t, []string{"SAC"}, d.titles)
}

func TestLoadWarnsOnNonFinitePoints(t *testing.T) {
	prefix := writeDatasets(t, map[string]string{"DRN": "0 1 2 nan\n1 2 3 inf\n2 3 4 5\n"})
	core, logs := observer.New(zap.WarnLevel)
	s := New(WithPrefix(prefix), WithLogger(zap.New(core)), WithSize(2*vg.Inch, 2*vg.Inch))

	chart, err := s.Load(parser.Entry{Name: "DRN", Scale: 50})
	require.NoError(t, err)
	assert.Len(t, seriesByLabel(t, chart.Data, analysis.LabelNac).Y, 3)

	warnings := logs.FilterMessage("Non-finite points left out of chart").All()
	require.Len(t, warnings, 1)
	fields := warnings[0].ContextMap()
	assert.Equal(t, "nac", fields["series"])
	assert.EqualValues(t, 2, fields["points"])
}

func TestNewDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, parser.Prefix, s.prefix)
	assert.Equal(t, parser.DefaultRegistry, s.registry)
}
