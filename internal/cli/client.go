package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/wire"
)

// ClientCmd returns the client command
func ClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage the client registry",
	}

	cmd.AddCommand(clientListCmd())
	cmd.AddCommand(clientAddCmd())
	cmd.AddCommand(clientUpdateCmd())
	cmd.AddCommand(clientRemoveCmd())

	return cmd
}

func clientListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := wire.DirectoryService().Clients(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}

			fmt.Printf("\n%-12s %-24s %-24s %s\n", "ID", "NAME", "EMAIL", "PHONE")
			fmt.Println(strings.Repeat("─", 72))
			for _, c := range clients {
				fmt.Printf("%-12s %-24s %-24s %s\n", c.ID, c.Name, c.Email, c.Phone)
			}
			fmt.Println()
			return nil
		},
	}
}

func clientManageFlags(cmd *cobra.Command) {
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("phone", "", "phone number")
}

func clientAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a client (managers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			c, err := wire.DirectoryService().CreateClient(ctx, actor, models.Client{
				Name:  args[0],
				Email: email,
				Phone: phone,
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			fmt.Printf("✓ Created client %s: %s\n", c.ID, c.Name)
			return nil
		},
	}
	actorFlag(cmd)
	clientManageFlags(cmd)
	return cmd
}

func clientUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id] [name]",
		Short: "Edit a client (managers only)",
		Long: `Edit a client. A rename rewrites the client reference on every job
that carries the old name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			err = wire.DirectoryService().UpdateClient(ctx, actor, models.Client{
				ID:    args[0],
				Name:  args[1],
				Email: email,
				Phone: phone,
			})
			if err != nil {
				return fmt.Errorf("failed to update client: %w", err)
			}

			fmt.Printf("✓ Updated client %s\n", args[0])
			return nil
		},
	}
	actorFlag(cmd)
	clientManageFlags(cmd)
	return cmd
}

func clientRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a client (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			if err := wire.DirectoryService().DeleteClient(ctx, actor, args[0]); err != nil {
				return fmt.Errorf("failed to delete client: %w", err)
			}

			fmt.Printf("✓ Removed client %s\n", args[0])
			return nil
		},
	}
	actorFlag(cmd)
	return cmd
}
