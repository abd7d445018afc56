// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/imamik/iapssh/cmd/iapssh/handlers"
)

// Root returns the root command for the iapssh CLI.
//
// The root command owns the logging flags. Its pre-run hook builds the logger
// and stores it in the command context for every subcommand.
func Root() *cobra.Command {
	var (
		verbosity int
		logFormat string
		flush     = func() {}
	)

	cmd := &cobra.Command{
		Use:   "iapssh",
		Short: "Run commands on Compute Engine instances over IAP-tunnelled SSH",
		// main prints the error once; usage would hide it in CI logs.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, f, err := handlers.NewLogger(verbosity, logFormat)
			if err != nil {
				return err
			}
			flush = f
			cmd.SetContext(logr.NewContext(cmd.Context(), log))
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			flush()
		},
	}

	cmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "Log verbosity; 1 enables debug logs")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: console or json")

	cmd.AddCommand(Run())
	cmd.AddCommand(Cleanup())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
