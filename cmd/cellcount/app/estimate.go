package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cellcount/pkg/orchestrator"
	"github.com/goliatone/go-cellcount/pkg/renderers/text"
)

func newEstimateCommand(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "estimate <od>...",
		Short: "Print the estimated cell count for each reading",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			orch, err := newOrchestrator(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, raw := range args {
				switch output {
				case "json":
					payload, err := orch.Generate(ctx, orchestrator.Request{Input: raw, Renderer: "json"})
					if err != nil {
						return err
					}
					if _, err := out.Write(payload); err != nil {
						return err
					}
				case "text":
					page, err := orch.Page(ctx, raw)
					if err != nil {
						return err
					}
					if _, err := fmt.Fprintln(out, text.EstimateLine(page)); err != nil {
						return err
					}
				default:
					return fmt.Errorf("unknown output %q (want text or json)", output)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	return cmd
}
