package model

import (
	"math"

	"github.com/goliatone/go-cellcount/pkg/calibration"
	"github.com/goliatone/go-cellcount/pkg/dataset"
)

// BuilderOption configures the builder behaviour.
type BuilderOption func(*Builder)

// WithCountFormatter overrides how cell counts and estimates are formatted.
func WithCountFormatter(fn func(float64) string) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.formatCount = fn
		}
	}
}

// WithoutRows omits the reference rows from built pages, for callers that only
// need the estimate.
func WithoutRows() BuilderOption {
	return func(b *Builder) {
		b.skipRows = true
	}
}

// Builder turns raw input into Pages against a fixed table.
type Builder struct {
	table       *calibration.Table
	info        DatasetInfo
	formatCount func(float64) string
	skipRows    bool
}

// NewBuilder binds a Builder to ds. The dataset's table is never modified.
func NewBuilder(ds *dataset.Dataset, options ...BuilderOption) *Builder {
	b := &Builder{formatCount: FormatCount}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}

	if ds != nil {
		b.table = ds.Table()
		b.info = DatasetInfo{
			Name:        ds.Name,
			Version:     ds.Version,
			Description: ds.Description,
			Source:      ds.Source,
			XUnit:       ds.Units.OpticalDensity,
			YUnit:       ds.Units.CellCount,
		}
	}
	if b.table.Len() > 0 {
		b.info.MinLabel = FormatOpticalDensity(b.table.Min().X)
		b.info.MaxLabel = FormatOpticalDensity(b.table.Max().X)
	}
	return b
}

// Table exposes the bound table.
func (b *Builder) Table() *calibration.Table {
	return b.table
}

// Build parses raw and evaluates it against the table.
func (b *Builder) Build(raw string) Page {
	return b.BuildQuery(raw, calibration.ParseQuery(raw))
}

// BuildQuery evaluates an already parsed query, keeping raw as the echoed
// input.
func (b *Builder) BuildQuery(raw string, query float64) Page {
	page := Page{
		Input:   raw,
		Dataset: b.info,
	}
	if !math.IsNaN(query) && !math.IsInf(query, 0) {
		q := query
		page.Query = &q
	}

	page.NearestIndex = calibration.NearestIndex(query, b.table)
	if estimate, ok := calibration.Estimate(query, b.table); ok {
		page.Estimate = &estimate
		page.EstimateLabel = b.formatCount(estimate)
		page.Highlight = true
	}

	if !b.skipRows {
		page.Rows = b.rows(page)
	}
	return page
}

func (b *Builder) rows(page Page) []Row {
	rows := make([]Row, 0, b.table.Len())
	for i := 0; i < b.table.Len(); i++ {
		p := b.table.At(i)
		rows = append(rows, Row{
			Index:               i,
			OpticalDensity:      p.X,
			CellCount:           p.Y,
			OpticalDensityLabel: FormatOpticalDensity(p.X),
			CellCountLabel:      b.formatCount(p.Y),
			AxisLabel:           FormatAxis(p.X),
			Nearest:             page.Highlight && i == page.NearestIndex,
		})
	}
	return rows
}
