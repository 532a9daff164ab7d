// Package app assembles the cellcount command tree.
package app

import (
	"context"
	"flag"
	"fmt"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	cellcount "github.com/goliatone/go-cellcount"
	"github.com/goliatone/go-cellcount/internal/config"
	"github.com/goliatone/go-cellcount/pkg/chart"
	"github.com/goliatone/go-cellcount/pkg/dataset"
	"github.com/goliatone/go-cellcount/pkg/orchestrator"
	"github.com/goliatone/go-cellcount/pkg/render"
	"github.com/goliatone/go-cellcount/pkg/renderers/html"
)

// datasetTimeout caps remote dataset fetches.
const datasetTimeout = 30 * time.Second

type globalOptions struct {
	configPath string
	flags      *config.Flags
}

// NewCommand returns the root command. ctx is cancelled on interrupt.
func NewCommand(ctx context.Context) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "cellcount",
		Short: "Estimate cell counts from optical density readings",
		Long: "cellcount interpolates a cell count for an optical density reading " +
			"against a versioned reference table, over HTTP or in the terminal.",
		SilenceUsage: true,
	}
	cmd.SetContext(ctx)

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	opts.flags = config.BindFlags(persistent)

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	persistent.AddGoFlagSet(klogFlags)

	cmd.AddCommand(
		newServeCommand(opts),
		newEstimateCommand(opts),
		newTableCommand(opts),
		newPromptCommand(opts),
		newWatchCommand(opts),
	)
	return cmd
}

// resolve loads the config file, applies flag overrides and validates.
func (o *globalOptions) resolve() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	o.flags.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	klog.V(1).InfoS("Resolved configuration", "dataset", cfg.Dataset, "addr", cfg.Addr, "debounce", cfg.Debounce)
	return cfg, nil
}

// newOrchestrator wires the pipeline for cfg.
func newOrchestrator(cfg config.Config, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	src, err := dataset.ParseSource(cfg.Dataset)
	if err != nil {
		return nil, err
	}

	themes, err := render.NewThemeRegistry()
	if err != nil {
		return nil, err
	}
	themeName := cfg.Theme
	if themeName == "" {
		themeName = render.DefaultThemeName
	}
	// go-theme's selector falls back to the default theme for unknown names;
	// a configured name must exist.
	if _, err := themes.Theme(themeName); err != nil {
		return nil, fmt.Errorf("theme %q: %w", themeName, err)
	}
	selector := theme.Selector{Registry: themes, DefaultTheme: themeName, DefaultVariant: cfg.Variant}
	if _, err := render.SelectTheme(selector, "", ""); err != nil {
		return nil, err
	}

	base := []orchestrator.Option{
		orchestrator.WithLoader(cellcount.NewLoader(dataset.WithHTTP(datasetTimeout))),
		orchestrator.WithSource(src),
		orchestrator.WithThemeSelector(selector),
		orchestrator.WithHTMLOptions(html.WithTemplatesDir(cfg.Templates)),
		orchestrator.WithChartOptions(chart.WithSize(cfg.ChartWidth, cfg.ChartHeight)),
	}
	return orchestrator.New(append(base, options...)...), nil
}
