package chart

import (
	"bytes"
	"context"

	"github.com/goliatone/go-cellcount/pkg/model"
	"github.com/goliatone/go-cellcount/pkg/render"
)

// Renderer exposes the chart through the render.Renderer contract. Theme
// tokens override the configured line and highlight colours.
type Renderer struct {
	options []Option
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer returns an SVG renderer using options as its base settings.
func NewRenderer(options ...Option) *Renderer {
	return &Renderer{options: options}
}

func (r *Renderer) Name() string {
	return "svg"
}

func (r *Renderer) ContentType() string {
	return "image/svg+xml"
}

func (r *Renderer) Render(ctx context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := append([]Option{}, r.options...)
	if opts.Theme != nil {
		options = append(options, WithColors(
			render.ThemeToken(opts.Theme, render.TokenLine, ""),
			render.ThemeToken(opts.Theme, render.TokenHighlight, ""),
		))
	}

	var buf bytes.Buffer
	if err := Render(&buf, page, options...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
