package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/taskflow/internal/cli"
	"github.com/example/taskflow/internal/version"
	"github.com/example/taskflow/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "taskflow",
		Short:   "taskflow - team task tracking from the terminal",
		Version: version.String(),
		Long: `taskflow is a CLI client for the team task tracker.
It tracks per-assignee progress, renders team progress bars, and lets
managers accept completed work.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Session commands
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.RegisterCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.WhoamiCmd())

	// Entity commands
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.TaskCmd())

	if err := rootCmd.Execute(); err != nil {
		if err != cli.ErrSilentFailure {
			fmt.Fprintln(os.Stderr, err)
		}
		wire.Exit(1)
	}
	wire.Exit(0)
}
