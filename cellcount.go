// Package cellcount estimates cell counts from optical density readings by
// linear interpolation over a reference table, and renders the result as an
// HTML page, SVG chart, terminal report or JSON payload.
package cellcount

import (
	"context"

	"github.com/goliatone/go-cellcount/pkg/calibration"
	"github.com/goliatone/go-cellcount/pkg/dataset"
	"github.com/goliatone/go-cellcount/pkg/orchestrator"
	"github.com/goliatone/go-cellcount/pkg/render"
	theme "github.com/goliatone/go-theme"
)

// ReferencePoint aliases calibration.ReferencePoint.
type ReferencePoint = calibration.ReferencePoint

// Table aliases calibration.Table.
type Table = calibration.Table

// RenderOptions describes per-request endpoints and delays renderers use.
type RenderOptions = render.RenderOptions

// NewTable validates points and returns an immutable table.
func NewTable(points []ReferencePoint) (*Table, error) {
	return calibration.NewTable(points)
}

// Estimate interpolates the cell count for query; ok is false outside the
// table range.
func Estimate(query float64, t *Table) (float64, bool) {
	return calibration.Estimate(query, t)
}

// NearestIndex returns the index of the reference point closest to query.
func NearestIndex(query float64, t *Table) int {
	return calibration.NearestIndex(query, t)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// LoadDataset fetches and parses the dataset at location, a file path or
// http(s) URL.
func LoadDataset(ctx context.Context, location string, options ...dataset.LoaderOption) (*dataset.Dataset, error) {
	src, err := dataset.ParseSource(location)
	if err != nil {
		return nil, err
	}
	return NewLoader(options...).Load(ctx, src)
}

// GenerateHTML loads the dataset at location and renders the page for raw
// using the named renderer. It is the simplest entry point for callers that
// just want output.
func GenerateHTML(ctx context.Context, location, raw, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	src, err := dataset.ParseSource(location)
	if err != nil {
		return nil, err
	}
	gen := orchestrator.New(append([]orchestrator.Option{
		orchestrator.WithLoader(NewLoader(dataset.WithHTTP(0))),
		orchestrator.WithSource(src),
	}, options...)...)
	return gen.Generate(ctx, orchestrator.Request{
		Input:    raw,
		Renderer: rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme and variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider builds a go-theme selector from provider so renderers
// receive resolved tokens and CSS variables.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}
