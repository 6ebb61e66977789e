package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/commesse/internal/cli"
	"github.com/example/commesse/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "commesse",
		Short:   "Commesse - production job tracking dashboard",
		Version: version.String(),
		Long: `Commesse tracks production jobs from quote to shipment for a small
workshop. It keeps a local snapshot in sync with a remote spreadsheet
and serves the dashboard API.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.SyncCmd())
	rootCmd.AddCommand(cli.JobCmd())
	rootCmd.AddCommand(cli.AskCmd())

	// Registry commands
	rootCmd.AddCommand(cli.OperatorCmd())
	rootCmd.AddCommand(cli.ClientCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
