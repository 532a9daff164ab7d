// Package text renders a page as a terminal report: the committed reading,
// its estimate and the reference table with the nearest row marked.
package text

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	prettytable "github.com/jedib0t/go-pretty/v6/table"

	"github.com/goliatone/go-cellcount/pkg/model"
	"github.com/goliatone/go-cellcount/pkg/render"
)

// Style selects the table layout.
type Style string

const (
	StyleBox      Style = "box"
	StyleMarkdown Style = "markdown"
)

// NoEstimate is printed in place of an undefined estimate.
const NoEstimate = "-"

type Option func(*Renderer)

// WithStyle selects the table layout.
func WithStyle(style Style) Option {
	return func(r *Renderer) {
		if style != "" {
			r.style = style
		}
	}
}

// WithoutTable prints the estimate line only.
func WithoutTable() Option {
	return func(r *Renderer) {
		r.omitTable = true
	}
}

type Renderer struct {
	style     Style
	omitTable bool
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{style: StyleBox}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page model.Page, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(EstimateLine(page))
	b.WriteByte('\n')

	if r.omitTable || len(page.Rows) == 0 {
		return []byte(b.String()), nil
	}

	b.WriteString(r.table(page))
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// EstimateLine renders "<input> = <estimate>" with units when known. Out of
// range readings also print the accepted range.
func EstimateLine(page model.Page) string {
	input := strings.TrimSpace(page.Input)
	if input == "" {
		input = `""`
	}
	if !page.InRange() {
		return fmt.Sprintf("%s = %s (range %s to %s)", input, NoEstimate, page.Dataset.MinLabel, page.Dataset.MaxLabel)
	}
	line := fmt.Sprintf("%s = %s", input, page.EstimateLabel)
	if unit := page.Dataset.YUnit; unit != "" {
		line += " " + unit
	}
	return line
}

func (r *Renderer) table(page model.Page) string {
	w := prettytable.NewWriter()
	w.AppendHeader(prettytable.Row{"#", "Optical Density", "Cell Count", ""})
	for _, row := range page.Rows {
		marker := ""
		if row.Nearest {
			marker = "<"
		}
		w.AppendRow(prettytable.Row{strconv.Itoa(row.Index), row.OpticalDensityLabel, row.CellCountLabel, marker})
	}

	switch r.style {
	case StyleMarkdown:
		return w.RenderMarkdown()
	default:
		w.SetStyle(prettytable.StyleLight)
		return w.Render()
	}
}
