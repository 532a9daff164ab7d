package app

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cellcount/pkg/renderers/tui"
)

func newPromptCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Enter readings interactively",
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
			builder, err := orch.Builder(ctx)
			if err != nil {
				return err
			}

			session, err := tui.New(builder, tui.WithOutput(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			if err := session.Run(ctx); err != nil && !errors.Is(err, tui.ErrAborted) {
				return err
			}
			return nil
		},
	}
}
