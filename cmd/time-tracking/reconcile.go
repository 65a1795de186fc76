package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReconcileCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Repair stored durations once and exit",
		Long: `Recompute the duration of every closed entry whose stored duration is
missing or that is still flagged as running, then exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			repaired, err := a.reconciler().Sweep(cmd.Context())
			if err != nil {
				return fmt.Errorf("reconcile sweep: %w", err)
			}

			a.log.Info("Reconcile sweep complete", zap.Int("repaired", repaired))
			fmt.Fprintf(cmd.OutOrStdout(), "Repaired %d time entries\n", repaired)
			return nil
		},
	}
}
