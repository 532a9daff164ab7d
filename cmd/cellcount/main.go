package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/goliatone/go-cellcount/cmd/cellcount/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := app.NewCommand(ctx)
	err := command.Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
