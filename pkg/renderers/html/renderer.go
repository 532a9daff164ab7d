// Package html renders the single-page estimator: the optical density input,
// the read-only estimate, the reference chart and the reference table. Pages
// work without JavaScript (a GET form posts the reading back); the embedded
// runtime adds debounced live updates.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/goliatone/go-cellcount/pkg/model"
	"github.com/goliatone/go-cellcount/pkg/render"
	rendertemplate "github.com/goliatone/go-cellcount/pkg/render/template"
	"github.com/goliatone/go-cellcount/pkg/render/template/gotemplate"
)

const pageTemplate = "templates/page.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	title            string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.title = title
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	title     string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), title: "Cell Count Estimator"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, title: cfg.title}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page model.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := options.WithDefaults()
	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"page":         page,
		"title":        r.title,
		"assets":       opts.AssetsPrefix,
		"estimate_url": opts.EstimateURL,
		"chart_url":    opts.ChartURL,
		"chart_src":    ChartSource(opts.ChartURL, page.Input),
		"debounce":     opts.Debounce,
		"theme_css":    render.CSSDeclarations(opts.Theme),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// ChartSource returns the chart endpoint for raw input.
func ChartSource(chartURL, raw string) string {
	if raw == "" {
		return chartURL
	}
	return chartURL + "?" + url.Values{"od": {raw}}.Encode()
}
