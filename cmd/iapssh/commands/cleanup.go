package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/iapssh/cmd/iapssh/handlers"
)

// Cleanup returns the cleanup command.
//
// It is meant for a CI post step that runs whether or not the main step
// succeeded.
func Cleanup() *cobra.Command {
	var stateFile string

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove key material left by a previous run",
		Long: `Cleanup removes the key directory recorded by "iapssh run" and then the
state file itself.

A missing state file means there is nothing to clean up. Failures are logged
and never fail the step.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cleanup(cmd.Context(), stateFile)
		},
	}

	cmd.Flags().StringVar(&stateFile, "state-file", "", "Path of the state file (default: $IAPSSH_STATE_FILE or RUNNER_TEMP/iapssh-state.yaml)")

	return cmd
}
