package app

import (
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/goliatone/go-cellcount/internal/metrics"
	"github.com/goliatone/go-cellcount/internal/openapi"
	"github.com/goliatone/go-cellcount/internal/server"
	"github.com/goliatone/go-cellcount/pkg/render"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the estimator page, chart and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}

			apiDoc, err := openapi.Load(ctx)
			if err != nil {
				return err
			}

			orch, err := newOrchestrator(cfg)
			if err != nil {
				return err
			}
			if err := orch.Load(ctx); err != nil {
				return err
			}
			ds := orch.Dataset()
			klog.InfoS("Loaded dataset", "source", ds.Source, "name", ds.Name, "version", ds.Version, "points", ds.Table().Len())

			srv, err := server.New(orch,
				server.WithAddr(cfg.Addr),
				server.WithGrace(cfg.Grace),
				server.WithCacheTTL(cfg.CacheTTL),
				server.WithMetrics(metrics.NewRecorder()),
				server.WithAPIDocument(apiDoc),
				server.WithRenderOptions(render.RenderOptions{Debounce: cfg.Debounce}),
			)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}
}
