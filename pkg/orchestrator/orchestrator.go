package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	internalLoader "github.com/goliatone/go-cellcount/internal/dataset/loader"
	"github.com/goliatone/go-cellcount/pkg/chart"
	"github.com/goliatone/go-cellcount/pkg/dataset"
	"github.com/goliatone/go-cellcount/pkg/model"
	"github.com/goliatone/go-cellcount/pkg/render"
	"github.com/goliatone/go-cellcount/pkg/renderers/html"
	jsonrenderer "github.com/goliatone/go-cellcount/pkg/renderers/json"
	"github.com/goliatone/go-cellcount/pkg/renderers/text"
	theme "github.com/goliatone/go-theme"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom dataset loader.
func WithLoader(loader dataset.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithSource sets where the reference dataset is loaded from.
func WithSource(src dataset.Source) Option {
	return func(o *Orchestrator) {
		o.source = src
	}
}

// WithDataset supplies an already loaded dataset, bypassing the loader.
func WithDataset(ds *dataset.Dataset) Option {
	return func(o *Orchestrator) {
		o.dataset = ds
	}
}

// WithBuilderOptions forwards options to the page builder.
func WithBuilderOptions(options ...model.BuilderOption) Option {
	return func(o *Orchestrator) {
		o.builderOptions = append(o.builderOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithHTMLOptions configures the default HTML renderer. Ignored when a
// registry is injected.
func WithHTMLOptions(options ...html.Option) Option {
	return func(o *Orchestrator) {
		o.htmlOptions = append(o.htmlOptions, options...)
	}
}

// WithChartOptions configures the default SVG renderer. Ignored when a
// registry is injected.
func WithChartOptions(options ...chart.Option) Option {
	return func(o *Orchestrator) {
		o.chartOptions = append(o.chartOptions, options...)
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves theme and variant choices through selector
// before rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider builds a go-theme selector over provider with the given
// defaults, so renderers receive resolved tokens and CSS variables.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
	}
}

// WithObserver registers a callback invoked with every built page.
func WithObserver(fn func(model.Page)) Option {
	return func(o *Orchestrator) {
		o.observe = fn
	}
}

// Orchestrator coordinates the pipeline from a raw reading to rendered
// output. It applies sensible defaults (html renderer, embedded templates,
// built-in theme) while remaining open to dependency injection.
type Orchestrator struct {
	loader          dataset.Loader
	source          dataset.Source
	registry        *render.Registry
	htmlOptions     []html.Option
	chartOptions    []chart.Option
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	builderOptions  []model.BuilderOption
	observe         func(model.Page)
	initialiseErr   error

	mu      sync.Mutex
	dataset *dataset.Dataset
	builder *model.Builder
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one evaluation.
type Request struct {
	// Input is the raw reading as typed.
	Input string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant override the selector defaults for this
	// request.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request endpoints and delays. A nil Theme is
	// filled from the theme selector.
	RenderOptions render.RenderOptions
}

// Load resolves the dataset and builder. It is called implicitly by Page and
// Generate; calling it at startup surfaces dataset errors early.
func (o *Orchestrator) Load(ctx context.Context) error {
	_, err := o.ensureBuilder(ctx)
	return err
}

// Builder returns the page builder, loading the dataset when needed.
func (o *Orchestrator) Builder(ctx context.Context) (*model.Builder, error) {
	return o.ensureBuilder(ctx)
}

// Dataset returns the loaded dataset, or nil before Load succeeds.
func (o *Orchestrator) Dataset() *dataset.Dataset {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dataset
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Page builds the view state for raw.
func (o *Orchestrator) Page(ctx context.Context, raw string) (model.Page, error) {
	builder, err := o.ensureBuilder(ctx)
	if err != nil {
		return model.Page{}, err
	}
	page := builder.Build(raw)
	if o.observe != nil {
		o.observe(page)
	}
	return page, nil
}

// Generate builds the page for req.Input and renders it with the requested
// renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	page, err := o.Page(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		opts.Theme, err = o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
	}

	output, err := renderer.Render(ctx, page, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer returns the renderer Generate would use for name.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	return o.rendererFor(name)
}

func (o *Orchestrator) ensureBuilder(ctx context.Context) (*model.Builder, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.builder != nil {
		return o.builder, nil
	}
	if o.dataset == nil {
		if o.source == nil {
			return nil, errors.New("orchestrator: dataset source or dataset is required")
		}
		ds, err := o.loader.Load(ctx, o.source)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load dataset: %w", err)
		}
		o.dataset = ds
	}
	o.builder = model.NewBuilder(o.dataset, o.builderOptions...)
	return o.builder, nil
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := render.SelectTheme(o.themeSelector, name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return render.RendererTheme(selection), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(dataset.NewLoaderOptions())
	}
	if o.themeSelector == nil {
		themes, err := render.NewThemeRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default theme: %w", err)
		} else {
			o.themeSelector = theme.Selector{Registry: themes, DefaultTheme: render.DefaultThemeName}
		}
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New(o.htmlOptions...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		o.registry.MustRegister(chart.NewRenderer(o.chartOptions...))
		o.registry.MustRegister(text.New())
		o.registry.MustRegister(jsonrenderer.New())
		o.registry.MustRegister(jsonrenderer.New(jsonrenderer.WithTable()))
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
