// Package chart draws the reference curve for a page model as SVG using
// go-chart. The x axis is categorical (one slot per reference row, labelled
// with its optical density); the highlighted row gets a vertical plot line
// annotated with the formatted estimate.
package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/goliatone/go-cellcount/pkg/model"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 400

	XAxisTitle = "Optical Density"
	YAxisTitle = "Cell Count"
)

// Options controls chart geometry and colours. Colours are hex strings with
// or without a leading '#'.
type Options struct {
	Width          int
	Height         int
	LineColor      string
	HighlightColor string
	// FormatCount labels y ticks; defaults to model.FormatCount.
	FormatCount func(float64) string
}

// Option mutates Options.
type Option func(*Options)

// WithSize overrides the chart dimensions in pixels.
func WithSize(width, height int) Option {
	return func(o *Options) {
		if width > 0 {
			o.Width = width
		}
		if height > 0 {
			o.Height = height
		}
	}
}

// WithColors overrides the series and plot line colours.
func WithColors(line, highlight string) Option {
	return func(o *Options) {
		if strings.TrimSpace(line) != "" {
			o.LineColor = line
		}
		if strings.TrimSpace(highlight) != "" {
			o.HighlightColor = highlight
		}
	}
}

// NewOptions applies options over the defaults.
func NewOptions(options ...Option) Options {
	opts := Options{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		LineColor:      "#2caffe",
		HighlightColor: "#ff0000",
		FormatCount:    model.FormatCount,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	return opts
}

// Build assembles the go-chart definition for page. It is split from Render
// so callers can inspect the series.
func Build(page model.Page, opts Options) (gochart.Chart, error) {
	if len(page.Rows) < 2 {
		return gochart.Chart{}, errors.New("chart: page needs at least two rows")
	}
	if opts.FormatCount == nil {
		opts.FormatCount = model.FormatCount
	}

	xs := make([]float64, len(page.Rows))
	ys := make([]float64, len(page.Rows))
	ticks := make([]gochart.Tick, len(page.Rows))
	minY, maxY := page.Rows[0].CellCount, page.Rows[0].CellCount
	for i, row := range page.Rows {
		xs[i] = float64(i)
		ys[i] = row.CellCount
		ticks[i] = gochart.Tick{Value: float64(i), Label: row.AxisLabel}
		if row.CellCount < minY {
			minY = row.CellCount
		}
		if row.CellCount > maxY {
			maxY = row.CellCount
		}
	}

	yAxis := gochart.YAxis{
		Name: YAxisTitle,
		ValueFormatter: func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return opts.FormatCount(f)
			}
			return fmt.Sprintf("%v", v)
		},
	}
	if minY == maxY {
		// go-chart rejects a zero-height range.
		yAxis.Range = &gochart.ContinuousRange{Min: minY - 1, Max: maxY + 1}
	}

	series := []gochart.Series{
		gochart.ContinuousSeries{
			Name:    "reference",
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: color(opts.LineColor),
				StrokeWidth: 2,
				DotColor:    color(opts.LineColor),
				DotWidth:    3,
			},
		},
	}

	if row, ok := page.NearestRow(); ok {
		x := float64(row.Index)
		highlight := color(opts.HighlightColor)
		series = append(series,
			gochart.ContinuousSeries{
				Name:    "estimate",
				XValues: []float64{x, x},
				YValues: []float64{minY, maxY},
				Style: gochart.Style{
					StrokeColor: highlight,
					StrokeWidth: 2,
				},
			},
			gochart.AnnotationSeries{
				Annotations: []gochart.Value2{
					{XValue: x, YValue: maxY, Label: page.EstimateLabel},
				},
			},
		)
	}

	return gochart.Chart{
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 24, Left: 16, Right: 24, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:  XAxisTitle,
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(len(page.Rows)) - 0.5},
		},
		YAxis:  yAxis,
		Series: series,
	}, nil
}

// Render writes page's chart to w as SVG.
func Render(w io.Writer, page model.Page, options ...Option) error {
	graph, err := Build(page, NewOptions(options...))
	if err != nil {
		return err
	}
	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("chart: render svg: %w", err)
	}
	return nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
}
