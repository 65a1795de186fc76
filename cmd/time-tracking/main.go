package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "time-tracking",
		Short: "Time tracking API for tasks and projects",
		Long: `time-tracking serves the time entry, timer and analytics API.

Configuration is read from the YAML file given with --config (or the
CONFIG_PATH environment variable). Without a file, every setting comes
from the environment and its defaults.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "Path to configuration file")

	root.AddCommand(
		newServeCommand(&configPath),
		newReconcileCommand(&configPath),
	)
	return root
}
