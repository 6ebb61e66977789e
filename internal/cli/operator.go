package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/wire"
)

// OperatorCmd returns the operator command
func OperatorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Manage the operator registry",
	}

	cmd.AddCommand(operatorListCmd())
	cmd.AddCommand(operatorAddCmd())
	cmd.AddCommand(operatorUpdateCmd())
	cmd.AddCommand(operatorRemoveCmd())

	return cmd
}

func operatorListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List operators",
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := wire.DirectoryService().Operators(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list operators: %w", err)
			}

			fmt.Printf("\n%-4s %-20s %-12s %s\n", "ID", "NAME", "DEPARTMENT", "EMAIL")
			fmt.Println(strings.Repeat("─", 60))
			for _, op := range ops {
				fmt.Printf("%-4d %-20s %-12s %s\n", op.ID, op.Name, op.Department, op.Email)
			}
			fmt.Println()
			return nil
		},
	}
}

func operatorFromFlags(cmd *cobra.Command) models.Operator {
	name, _ := cmd.Flags().GetString("name")
	dept, _ := cmd.Flags().GetString("department")
	email, _ := cmd.Flags().GetString("email")
	colorHex, _ := cmd.Flags().GetString("color")
	showHours, _ := cmd.Flags().GetBool("show-hours")
	return models.Operator{
		Name:               name,
		Department:         models.Department(dept),
		Email:              email,
		PersonalColor:      colorHex,
		ShowEstimatedHours: showHours,
	}
}

func operatorManageFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "operator name")
	cmd.Flags().String("department", "", "department (Workshop/Sales/Technical/Admin)")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("color", "", "personal color hex")
	cmd.Flags().Bool("show-hours", false, "show estimated hours to this operator")
}

func operatorAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an operator (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			op := operatorFromFlags(cmd)
			op.ID, _ = cmd.Flags().GetInt("id")
			if err := wire.DirectoryService().CreateOperator(ctx, actor, op); err != nil {
				return fmt.Errorf("failed to create operator: %w", err)
			}

			fmt.Printf("✓ Created operator %s\n", op.Name)
			return nil
		},
	}
	actorFlag(cmd)
	operatorManageFlags(cmd)
	cmd.Flags().Int("id", 0, "operator ID (0 picks the next free one)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("department")
	return cmd
}

func operatorUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Edit an operator (admin only)",
		Long: `Edit an operator. A rename rewrites the assignment on every job
currently assigned to the old name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("operator ID must be a number: %w", err)
			}

			op := operatorFromFlags(cmd)
			op.ID = id
			if err := wire.DirectoryService().UpdateOperator(ctx, actor, op); err != nil {
				return fmt.Errorf("failed to update operator: %w", err)
			}

			fmt.Printf("✓ Updated operator %d\n", id)
			return nil
		},
	}
	actorFlag(cmd)
	operatorManageFlags(cmd)
	return cmd
}

func operatorRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove an operator (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("operator ID must be a number: %w", err)
			}

			if err := wire.DirectoryService().DeleteOperator(ctx, actor, id); err != nil {
				return fmt.Errorf("failed to delete operator: %w", err)
			}

			fmt.Printf("✓ Removed operator %d\n", id)
			return nil
		},
	}
	actorFlag(cmd)
	return cmd
}
