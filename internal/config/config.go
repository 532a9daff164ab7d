// Package config loads the cellcount runtime configuration: defaults, an
// optional YAML file, then command line overrides, validated as a whole.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration.
type Config struct {
	// Addr is the HTTP listen address for "serve".
	Addr string `yaml:"addr" validate:"required"`
	// Dataset locates the reference table: a file path or http(s) URL.
	Dataset string `yaml:"dataset" validate:"required"`
	// Debounce is the quiet period before a typed reading is evaluated.
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
	// Grace bounds graceful shutdown.
	Grace   time.Duration `yaml:"grace" validate:"gte=0"`
	Theme   string        `yaml:"theme"`
	Variant string        `yaml:"variant"`
	// CacheTTL is how long rendered charts stay cached; zero disables caching.
	CacheTTL time.Duration `yaml:"cacheTTL" validate:"gte=0"`
	// Templates optionally overrides the embedded page templates.
	Templates   string `yaml:"templates" validate:"omitempty,dir"`
	ChartWidth  int    `yaml:"chartWidth" validate:"gte=200,lte=4096"`
	ChartHeight int    `yaml:"chartHeight" validate:"gte=120,lte=4096"`
}

// Default returns the built-in configuration. Dataset has no default.
func Default() Config {
	return Config{
		Addr:        ":8080",
		Debounce:    200 * time.Millisecond,
		Grace:       10 * time.Second,
		CacheTTL:    10 * time.Minute,
		ChartWidth:  1024,
		ChartHeight: 400,
	}
}

// Load reads path (when non-empty) over the defaults. Unknown keys are
// rejected. The result is not validated; call Validate after applying flags.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges a YAML document into cfg.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

var validate = validator.New()

// Validate checks the struct constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: validate: %w", err)
	}
	return nil
}

// Flags holds command line overrides bound to a pflag.FlagSet.
type Flags struct {
	set    *pflag.FlagSet
	values Config
}

// BindFlags registers the override flags on fs. Only flags the user sets are
// applied.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{set: fs}
	def := Default()
	fs.StringVar(&f.values.Addr, "addr", def.Addr, "HTTP listen address")
	fs.StringVar(&f.values.Dataset, "dataset", "", "reference dataset file or URL")
	fs.DurationVar(&f.values.Debounce, "debounce", def.Debounce, "quiet period before a reading is evaluated")
	fs.DurationVar(&f.values.Grace, "grace", def.Grace, "graceful shutdown period")
	fs.StringVar(&f.values.Theme, "theme", "", "theme name")
	fs.StringVar(&f.values.Variant, "variant", "", "theme variant")
	fs.DurationVar(&f.values.CacheTTL, "cache-ttl", def.CacheTTL, "chart cache TTL (0 disables)")
	fs.StringVar(&f.values.Templates, "templates", "", "directory overriding the embedded templates")
	fs.IntVar(&f.values.ChartWidth, "chart-width", def.ChartWidth, "chart width in pixels")
	fs.IntVar(&f.values.ChartHeight, "chart-height", def.ChartHeight, "chart height in pixels")
	return f
}

// Apply copies every flag the user changed onto cfg.
func (f *Flags) Apply(cfg *Config) {
	if f == nil || cfg == nil {
		return
	}
	changed := func(name string) bool {
		fl := f.set.Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("addr") {
		cfg.Addr = f.values.Addr
	}
	if changed("dataset") {
		cfg.Dataset = f.values.Dataset
	}
	if changed("debounce") {
		cfg.Debounce = f.values.Debounce
	}
	if changed("grace") {
		cfg.Grace = f.values.Grace
	}
	if changed("theme") {
		cfg.Theme = f.values.Theme
	}
	if changed("variant") {
		cfg.Variant = f.values.Variant
	}
	if changed("cache-ttl") {
		cfg.CacheTTL = f.values.CacheTTL
	}
	if changed("templates") {
		cfg.Templates = f.values.Templates
	}
	if changed("chart-width") {
		cfg.ChartWidth = f.values.ChartWidth
	}
	if changed("chart-height") {
		cfg.ChartHeight = f.values.ChartHeight
	}
}
