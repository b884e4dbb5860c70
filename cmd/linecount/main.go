package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/linecount/internal/cli"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Cancel on Ctrl-C so a long count stops between files
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, cli.BuildInfo{Version: version, BuildTime: buildTime}); err != nil {
		stop()
		os.Exit(1)
	}
}
