// Package main is the entry point for the cloudwait CLI.
//
// cloudwait issues instance, snapshot, scaling group and security group
// operations against AWS or Hetzner Cloud and waits until the provider
// reports the requested state.
//
// For detailed usage information, run:
//
//	cloudwait --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/cloudwait/cmd/cloudwait/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Interrupts cancel in-flight waits; they end as failed outcomes.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
