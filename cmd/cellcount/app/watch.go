package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/goliatone/go-cellcount/internal/debounce"
	"github.com/goliatone/go-cellcount/pkg/model"
	"github.com/goliatone/go-cellcount/pkg/renderers/text"
)

func newWatchCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Read readings line by line and print the estimate once input settles",
		Long: "watch reads readings from stdin, one per line. After the debounce " +
			"period passes without a new line the last reading is evaluated and printed.",
		Args: cobra.NoArgs,
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
			return watch(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), builder, cfg.Debounce)
		},
	}
}

// watch evaluates the last line committed after each quiet period. Remaining
// input is flushed at EOF.
func watch(ctx context.Context, in io.Reader, out io.Writer, builder *model.Builder, delay time.Duration) error {
	var mu sync.Mutex
	d := debounce.New(delay, func(raw string) {
		page := builder.Build(raw)
		mu.Lock()
		defer mu.Unlock()
		if _, err := fmt.Fprintln(out, text.EstimateLine(page)); err != nil {
			klog.ErrorS(err, "Write estimate failed")
		}
	})
	defer d.Stop()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				d.Flush()
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			d.Trigger(line)
		}
	}
}
