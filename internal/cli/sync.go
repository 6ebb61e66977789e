package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/commesse/internal/wire"
)

// SyncCmd returns the sync command
func SyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize with the remote store",
		Long:  `Pull from and push to the configured remote spreadsheet store.`,
	}

	cmd.AddCommand(syncPullCmd())
	cmd.AddCommand(syncPushCmd())
	cmd.AddCommand(syncInitHeadersCmd())
	cmd.AddCommand(syncStatusCmd())

	return cmd
}

func syncPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch the remote snapshot and merge it locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := wire.SyncService().Refresh(ctx, false); err != nil {
				return fmt.Errorf("failed to pull: %w", err)
			}
			fmt.Println("✓ Pulled remote snapshot")
			return nil
		},
	}
}

func syncPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Write the local snapshot to the remote store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := wire.SyncService().Push(ctx); err != nil {
				return fmt.Errorf("failed to push: %w", err)
			}
			fmt.Println("✓ Pushed local snapshot")
			return nil
		},
	}
}

func syncInitHeadersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-headers",
		Short: "Write the four sheet header rows to the remote store",
		Long: `Write the header rows for the jobs, operators, clients and logs
sheets. Run once when pointing at a blank spreadsheet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := wire.SyncService().InitHeaders(ctx); err != nil {
				return fmt.Errorf("failed to write headers: %w", err)
			}
			fmt.Println("✓ Wrote sheet headers")
			return nil
		},
	}
}

func syncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the sync indicator state",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := wire.SyncService().Status()

			state := color.New(color.FgRed).Sprint("offline")
			if st.Connected {
				state = color.New(color.FgGreen).Sprint("connected")
			}
			fmt.Printf("Store:    %s\n", state)
			if st.Syncing {
				fmt.Println("Syncing:  in flight")
			}
			if st.Diverged {
				fmt.Println(color.New(color.FgYellow).Sprint("Diverged: local changes have outrun the last fetch"))
			}
			if st.LastError != "" {
				fmt.Printf("Last err: %s\n", st.LastError)
			}
			return nil
		},
	}
}
