package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-cellcount/pkg/model"
	"github.com/goliatone/go-cellcount/pkg/render/template"
)

const defaultExtension = ".tmpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	extension string
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the extension appended to bare template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// Engine satisfies template.TemplateRenderer using a pongo2 template set.
// Compiled templates are cached by path.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	compiled  map[string]*pongo2.Template
	extension string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. A template filesystem is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: defaultExtension}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.templates == nil {
		return nil, errors.New("gotemplate: template fs is required")
	}

	registerDefaultFilters()

	return &Engine{
		set:       pongo2.NewSet("cellcount", pongo2.NewFSLoader(cfg.templates)),
		compiled:  make(map[string]*pongo2.Template),
		extension: cfg.extension,
	}, nil
}

// Render executes name as inline content when it contains template tags and
// as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the template at name, appending the configured
// extension when missing. The result is also written to every out writer.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}
	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	rendered, err := e.execute(tmpl, data, out)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", path, err)
	}
	return rendered, nil
}

// RenderString compiles and executes content without caching it.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	rendered, err := e.execute(tmpl, data, out)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template string: %w", err)
	}
	return rendered, nil
}

// RegisterFilter registers a pongo2 filter. Filters are process-wide in
// pongo2, so registering an existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the globals visible to every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}
	values, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals.Update(values)
	return nil
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	values, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(values, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", err
	}

	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.compiled[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.compiled[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.compiled[path] = tmpl
	return tmpl, nil
}

// toContext flattens data into plain maps, slices and scalars through a JSON
// round trip so templates address fields by their json tags. Numbers arrive
// as float64.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	values := pongo2.Context{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func registerDefaultFilters() {
	filters := map[string]pongo2.FilterFunction{
		"trim":  filterTrim,
		"count": filterCount,
		"od":    filterOpticalDensity,
		"ms":    filterMilliseconds,
	}
	for name, fn := range filters {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterCount formats a number as a grouped cell count; non-numbers render
// empty so undefined estimates disappear.
func filterCount(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() || !in.IsNumber() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(model.FormatCount(in.Float())), nil
}

func filterOpticalDensity(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() || !in.IsNumber() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(model.FormatOpticalDensity(in.Float())), nil
}

// filterMilliseconds renders a time.Duration (nanoseconds after JSON
// conversion) as whole milliseconds.
func filterMilliseconds(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() || !in.IsNumber() {
		return pongo2.AsValue(0), nil
	}
	return pongo2.AsValue(int64(in.Float()) / 1e6), nil
}
