// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cloudwait/cmd/cloudwait/handlers"
)

// Root returns the root command for the cloudwait CLI.
//
// Global flags are bound once here and shared with every subcommand.
func Root() *cobra.Command {
	opts := &handlers.Options{}

	cmd := &cobra.Command{
		Use:           "cloudwait",
		Short:         "Run cloud operations and wait for them to complete",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	flags.StringVar(&opts.Provider, "provider", "", "Provider backend: aws or hcloud (default: aws)")
	flags.StringVar(&opts.Region, "region", "", "Provider region")
	flags.DurationVar(&opts.Interval, "interval", 0, "Poll interval for every operation kind")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "Time budget for every operation kind")
	flags.BoolVar(&opts.JSON, "json", false, "Output in JSON format")
	flags.StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	flags.CountVarP(&opts.Verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	flags.IntVar(&opts.Concurrency, "concurrency", 0, "Maximum parallel waits when several IDs are given (0: unlimited)")

	cmd.AddCommand(Instance(opts))
	cmd.AddCommand(Snapshot(opts))
	cmd.AddCommand(Group(opts))
	cmd.AddCommand(SecurityGroup(opts))
	cmd.AddCommand(Version())

	return cmd
}
