package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cellcount/pkg/orchestrator"
	"github.com/goliatone/go-cellcount/pkg/render"
	"github.com/goliatone/go-cellcount/pkg/renderers/text"
)

func newTableCommand(opts *globalOptions) *cobra.Command {
	var (
		format string
		input  string
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the reference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			orch, err := newOrchestrator(cfg)
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "json":
				out, err = orch.Generate(ctx, orchestrator.Request{Renderer: "json-table"})
			case string(text.StyleBox), string(text.StyleMarkdown):
				page, perr := orch.Page(ctx, input)
				if perr != nil {
					return perr
				}
				out, err = text.New(text.WithStyle(text.Style(format))).Render(ctx, page, render.RenderOptions{})
			default:
				return fmt.Errorf("unknown format %q (want box, markdown or json)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(text.StyleBox), "box, markdown or json")
	cmd.Flags().StringVar(&input, "od", "", "mark the row nearest to this reading")
	return cmd
}
