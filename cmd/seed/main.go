// Package main fills the local catalog database with demo categories and reviews.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	seedcmd "github.com/louisbranch/beveragebuddy/internal/cmd/seed"
	"github.com/louisbranch/beveragebuddy/internal/platform/config"
)

func main() {
	cfg, err := seedcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seedcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("seed: %v", err)
	}
}
