package render

import (
	"time"

	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data renderers can use to customise
// their output without touching the page model.
type RenderOptions struct {
	// Theme carries resolved tokens and CSS variables. Nil means renderer
	// defaults.
	Theme *theme.RendererConfig
	// Debounce is the quiet period the browser runtime waits after the last
	// keystroke before asking for a new estimate.
	Debounce time.Duration
	// ChartURL is the endpoint serving the SVG chart; the HTML renderer
	// appends the encoded input as the "od" query parameter.
	ChartURL string
	// EstimateURL is the JSON endpoint the browser runtime calls.
	EstimateURL string
	// AssetsPrefix is where the embedded stylesheet and runtime are mounted.
	AssetsPrefix string
}

// DefaultDebounce matches the input delay of the original page.
const DefaultDebounce = 200 * time.Millisecond

// WithDefaults fills zero fields with the standard endpoints and delay.
func (o RenderOptions) WithDefaults() RenderOptions {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.ChartURL == "" {
		o.ChartURL = "/chart.svg"
	}
	if o.EstimateURL == "" {
		o.EstimateURL = "/api/estimate"
	}
	if o.AssetsPrefix == "" {
		o.AssetsPrefix = "/assets"
	}
	return o
}
