// Package session walks the dataset registry in order, loading each file,
// deriving its series and handing the rendered chart to a Display.
package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/user/nacplot/internal/analysis"
	"github.com/user/nacplot/internal/parser"
	"github.com/user/nacplot/internal/report"
)

// Chart is one rendered dataset ready for display.
type Chart struct {
	Index int // 0-based position in the registry
	Total int
	Data  *analysis.ChartData
	PNG   []byte
}

// Title returns the dataset name the chart is titled with.
func (c *Chart) Title() string { return c.Data.Title }

// Display shows charts one at a time.
type Display interface {
	// Show presents the chart and blocks until it is dismissed or ctx ends.
	Show(ctx context.Context, chart *Chart) error
	// Close discards the chart currently shown, if any.
	Close() error
}

// DatasetError ties a failure to the dataset that caused it.
type DatasetError struct {
	Name string
	Path string
	Err  error
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("dataset %s (%s): %v", e.Name, e.Path, e.Err)
}

func (e *DatasetError) Unwrap() error { return e.Err }

// Session holds the fixed inputs of a run.
type Session struct {
	prefix   string
	registry parser.Registry
	logger   *zap.Logger
	width    vg.Length
	height   vg.Length
}

// Option adjusts a Session.
type Option func(*Session)

// WithPrefix sets the path prefix dataset names are joined to.
func WithPrefix(prefix string) Option {
	return func(s *Session) { s.prefix = prefix }
}

// WithRegistry replaces the dataset registry.
func WithRegistry(r parser.Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithSize sets the rendered chart size.
func WithSize(width, height vg.Length) Option {
	return func(s *Session) {
		s.width = width
		s.height = height
	}
}

// New returns a Session over parser.DefaultRegistry reading from parser.Prefix.
func New(opts ...Option) *Session {
	s := &Session{
		prefix:   parser.Prefix,
		registry: parser.DefaultRegistry,
		logger:   zap.NewNop(),
		width:    report.DefaultWidth,
		height:   report.DefaultHeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads, transforms and renders a single dataset.
func (s *Session) Load(entry parser.Entry) (*Chart, error) {
	path := entry.Path(s.prefix)

	table, err := parser.LoadTable(path)
	if err != nil {
		return nil, &DatasetError{Name: entry.Name, Path: path, Err: err}
	}
	data, err := analysis.DeriveSeries(entry, table)
	if err != nil {
		return nil, &DatasetError{Name: entry.Name, Path: path, Err: err}
	}
	img, err := report.RenderPNG(data, s.width, s.height)
	if err != nil {
		return nil, &DatasetError{Name: entry.Name, Path: path, Err: err}
	}

	for _, series := range data.Series {
		if n := series.NonFinite(); n > 0 {
			s.logger.Warn("Non-finite points left out of chart",
				zap.String("name", entry.Name),
				zap.String("series", series.Label),
				zap.Int("points", n))
		}
	}

	s.logger.Info("Loaded dataset",
		zap.String("name", entry.Name),
		zap.String("path", path),
		zap.Int("rows", table.Rows()),
		zap.Float64("scale", entry.Scale))

	return &Chart{Data: data, PNG: img, Total: len(s.registry)}, nil
}

// Run shows every dataset in registry order, closing the previous chart
// before loading the next. The first failure stops the run; datasets after it
// are not read. It returns the number of charts shown.
func (s *Session) Run(ctx context.Context, display Display) (int, error) {
	s.logger.Info("Starting run", zap.Strings("datasets", s.registry.Names()), zap.String("prefix", s.prefix))

	shown := 0
	for i, entry := range s.registry {
		if err := ctx.Err(); err != nil {
			return shown, err
		}
		if err := display.Close(); err != nil {
			return shown, fmt.Errorf("failed to close previous chart: %w", err)
		}

		chart, err := s.Load(entry)
		if err != nil {
			s.logger.Error("Dataset failed, aborting run", zap.String("name", entry.Name), zap.Error(err))
			return shown, err
		}
		chart.Index = i

		if err := display.Show(ctx, chart); err != nil {
			return shown, fmt.Errorf("failed to show %s: %w", entry.Name, err)
		}
		shown++
	}

	if err := display.Close(); err != nil {
		return shown, fmt.Errorf("failed to close last chart: %w", err)
	}
	s.logger.Info("Run complete", zap.Int("charts", shown))
	return shown, nil
}
