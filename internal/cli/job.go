package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	corejob "github.com/example/commesse/internal/core/job"
	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/primary"
	"github.com/example/commesse/internal/wire"
)

// JobCmd returns the job command
func JobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage production jobs",
		Long:  `Create, list, and manage production jobs through their lifecycle.`,
	}

	cmd.AddCommand(jobListCmd())
	cmd.AddCommand(jobShowCmd())
	cmd.AddCommand(jobNewCmd())
	cmd.AddCommand(jobUpdateCmd())
	cmd.AddCommand(jobTakeCmd())
	cmd.AddCommand(jobAssignCmd())
	cmd.AddCommand(jobMaterialArrivedCmd())
	cmd.AddCommand(jobResetCmd())
	cmd.AddCommand(jobDeleteCmd())
	cmd.AddCommand(jobLogsCmd())
	cmd.AddCommand(jobCalendarCmd())

	return cmd
}

// priorityPaint maps the derived job color to a terminal tint.
func priorityPaint(hex string) *color.Color {
	switch hex {
	case corejob.ColorRed:
		return color.New(color.FgRed)
	case corejob.ColorYellow:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgBlue)
	}
}

func printJobRow(j models.Job) {
	assignee := j.AssignedOperator
	if assignee == "" {
		assignee = "-"
	}
	locked := ""
	if j.Locked {
		locked = " [locked]"
	}
	paint := priorityPaint(j.Color)
	fmt.Printf("%-6s %-12s %-20s %-18s P%d %-12s%s\n",
		j.ID, j.Code, truncate(j.Client, 20), paint.Sprint(j.Status), j.Priority, assignee, locked)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func jobListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs visible to the acting operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			jobs, err := wire.JobService().ListJobs(ctx, actor)
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}
			if len(jobs) == 0 {
				fmt.Println("No jobs visible.")
				return nil
			}

			fmt.Printf("\n%-6s %-12s %-20s %-18s %s\n", "ID", "CODE", "CLIENT", "STATUS", "ASSIGNEE")
			fmt.Println(strings.Repeat("─", 78))
			for _, j := range jobs {
				printJobRow(j)
			}
			fmt.Println()
			return nil
		},
	}
	actorFlag(cmd)
	return cmd
}

func jobShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [job-id]",
		Short: "Show job details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			j, err := wire.JobService().GetJob(ctx, actor, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			fmt.Printf("\nJob:        %s (%s)\n", j.ID, j.Code)
			fmt.Printf("Client:     %s\n", j.Client)
			if j.Category != "" {
				fmt.Printf("Category:   %s\n", j.Category)
			}
			fmt.Printf("Status:     %s\n", priorityPaint(j.Color).Sprint(j.Status))
			fmt.Printf("Priority:   %d\n", j.Priority)
			fmt.Printf("Department: %s\n", j.Department)
			if j.AssignedOperator != "" {
				fmt.Printf("Assignee:   %s (since %s)\n", j.AssignedOperator, j.TakenInCharge)
			}
			if j.RequestedDelivery != "" {
				fmt.Printf("Requested:  %s\n", j.RequestedDelivery)
			}
			if j.ExpectedFinish != "" {
				fmt.Printf("Expected:   %s\n", j.ExpectedFinish)
			}
			if j.MissingMaterials != "" {
				fmt.Printf("Missing:    %s\n", j.MissingMaterials)
			}
			if j.TechnicalNotes != "" {
				fmt.Printf("Notes:      %s\n", j.TechnicalNotes)
			}
			if actor.ShowEstimatedHours && j.EstimatedHours > 0 {
				fmt.Printf("Estimated:  %dh\n", j.EstimatedHours)
			}
			fmt.Printf("Completion: %s\n", j.Completion)
			fmt.Println()
			return nil
		},
	}
	actorFlag(cmd)
	return cmd
}

func jobNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [code]",
		Short: "Create a new job (starts as a quote)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			client, _ := cmd.Flags().GetString("client")
			category, _ := cmd.Flags().GetString("category")
			priority, _ := cmd.Flags().GetInt("priority")
			delivery, _ := cmd.Flags().GetString("delivery")
			dept, _ := cmd.Flags().GetString("department")
			hours, _ := cmd.Flags().GetInt("hours")
			notes, _ := cmd.Flags().GetString("notes")

			job, err := wire.JobService().CreateJob(ctx, actor, primary.CreateJobRequest{
				Code:              args[0],
				Client:            client,
				Category:          category,
				Priority:          priority,
				RequestedDelivery: delivery,
				Department:        models.Department(dept),
				EstimatedHours:    hours,
				TechnicalNotes:    notes,
			})
			if err != nil {
				return fmt.Errorf("failed to create job: %w", err)
			}

			fmt.Printf("✓ Created job %s: %s for %s\n", job.ID, job.Code, job.Client)
			return nil
		},
	}
	actorFlag(cmd)
	cmd.Flags().String("client", "", "client name (required)")
	cmd.Flags().String("category", "", "job category")
	cmd.Flags().Int("priority", 1, "priority 1-5")
	cmd.Flags().String("delivery", "", "requested delivery date (YYYY-MM-DD)")
	cmd.Flags().String("department", "", "responsible department")
	cmd.Flags().Int("hours", 0, "estimated hours")
	cmd.Flags().String("notes", "", "technical notes")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

func jobUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [job-id]",
		Short: "Update job fields",
		Long: `Update job fields. Only the flags you pass are changed; the acting
operator's role decides which fields are accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			var upd corejob.Update
			if cmd.Flags().Changed("status") {
				v, _ := cmd.Flags().GetString("status")
				s := models.Status(v)
				upd.Status = &s
			}
			if cmd.Flags().Changed("priority") {
				v, _ := cmd.Flags().GetInt("priority")
				upd.Priority = &v
			}
			if cmd.Flags().Changed("notes") {
				v, _ := cmd.Flags().GetString("notes")
				upd.TechnicalNotes = &v
			}
			if cmd.Flags().Changed("missing") {
				v, _ := cmd.Flags().GetString("missing")
				upd.MissingMaterials = &v
			}
			if cmd.Flags().Changed("delivery") {
				v, _ := cmd.Flags().GetString("delivery")
				upd.RequestedDelivery = &v
			}
			if cmd.Flags().Changed("finish") {
				v, _ := cmd.Flags().GetString("finish")
				upd.ExpectedFinish = &v
			}
			if cmd.Flags().Changed("hours") {
				v, _ := cmd.Flags().GetInt("hours")
				upd.EstimatedHours = &v
			}
			if cmd.Flags().Changed("completion") {
				v, _ := cmd.Flags().GetString("completion")
				c := models.Completion(v)
				upd.Completion = &c
			}
			if cmd.Flags().Changed("locked") {
				v, _ := cmd.Flags().GetBool("locked")
				upd.Locked = &v
			}

			job, err := wire.JobService().UpdateJob(ctx, actor, args[0], upd)
			if err != nil {
				return fmt.Errorf("failed to update job: %w", err)
			}

			fmt.Printf("✓ Updated job %s (status %s)\n", job.ID, job.Status)
			return nil
		},
	}
	actorFlag(cmd)
	cmd.Flags().String("status", "", "production status")
	cmd.Flags().Int("priority", 0, "priority 1-5")
	cmd.Flags().String("notes", "", "technical notes")
	cmd.Flags().String("missing", "", "missing materials text")
	cmd.Flags().String("delivery", "", "requested delivery date (YYYY-MM-DD)")
	cmd.Flags().String("finish", "", "expected finish date (YYYY-MM-DD)")
	cmd.Flags().Int("hours", 0, "estimated hours")
	cmd.Flags().String("completion", "", "completion flag (Open/Completed)")
	cmd.Flags().Bool("locked", false, "lock warning flag")
	return cmd
}

func jobTakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "take [job-id]",
		Short: "Take charge of an unassigned job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			job, err := wire.JobService().TakeCharge(ctx, actor, args[0], primary.TakeChargeRequest{})
			if err != nil {
				return fmt.Errorf("failed to take charge: %w", err)
			}

			fmt.Printf("✓ %s took charge of %s (now %s)\n", actor.Name, job.ID, job.Status)
			return nil
		},
	}
	actorFlag(cmd)
	return cmd
}

func jobAssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign [job-id] [operator-name]",
		Short: "Assign a job to an operator (admin only)",
		Long: `Assign a job to any operator. Pass an empty name ("") to clear the
assignment. Admin only; operators take charge of their own jobs with
"job take".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			job, err := wire.JobService().Assign(ctx, actor, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to assign job: %w", err)
			}

			if job.AssignedOperator == "" {
				fmt.Printf("✓ Cleared assignment on %s\n", job.ID)
			} else {
				fmt.Printf("✓ Assigned %s to %s\n", job.ID, job.AssignedOperator)
			}
			return nil
		},
	}
	actorFlag(cmd)
	return cmd
}

func jobMaterialArrivedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "material-arrived [job-id]",
		Short: "Clear the missing-materials note on a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			job, err := wire.JobService().MaterialArrived(ctx, actor, args[0])
			if err != nil {
				return fmt.Errorf("failed to clear missing materials: %w", err)
			}

			fmt.Printf("✓ Materials arrived for %s\n", job.ID)
			return nil
		},
	}
	actorFlag(cmd)
	return cmd
}

func jobResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset [job-id]",
		Short: "Rewind a job to the quote state (admin only)",
		Long: `Rewind a job to the quote state: assignment, dates and missing
materials are cleared. Irreversible and off the record - no log entry
is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			confirmed, _ := cmd.Flags().GetBool("yes")
			if !confirmed {
				return fmt.Errorf("reset is irreversible; re-run with --yes to confirm")
			}

			job, err := wire.JobService().ResetJob(ctx, actor, args[0])
			if err != nil {
				return fmt.Errorf("failed to reset job: %w", err)
			}

			fmt.Printf("✓ Reset %s to %s\n", job.ID, job.Status)
			return nil
		},
	}
	actorFlag(cmd)
	cmd.Flags().Bool("yes", false, "confirm the irreversible reset")
	return cmd
}

func jobDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [job-id]",
		Short: "Delete a job (admin only)",
		Long:  `Delete a job permanently. Its phase-log history is retained.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			confirmed, _ := cmd.Flags().GetBool("yes")
			if !confirmed {
				return fmt.Errorf("delete is irreversible; re-run with --yes to confirm")
			}

			if err := wire.JobService().DeleteJob(ctx, actor, args[0]); err != nil {
				return fmt.Errorf("failed to delete job: %w", err)
			}

			fmt.Printf("✓ Deleted %s (logs retained)\n", args[0])
			return nil
		},
	}
	actorFlag(cmd)
	cmd.Flags().Bool("yes", false, "confirm the irreversible delete")
	return cmd
}

func jobLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs [job-id]",
		Short: "Show a job's phase history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			logs, err := wire.JobService().JobLogs(ctx, actor, args[0])
			if err != nil {
				return fmt.Errorf("failed to get logs: %w", err)
			}
			if len(logs) == 0 {
				fmt.Println("No log entries.")
				return nil
			}

			for _, l := range logs {
				fmt.Printf("%-22s %-28s %s\n", l.Start, l.Phase, l.Actor)
			}
			return nil
		},
	}
	actorFlag(cmd)
	return cmd
}

func jobCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar [date]",
		Short: "List jobs active on a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			date := time.Now()
			if len(args) == 1 {
				date, err = time.Parse(corejob.DateLayout, args[0])
				if err != nil {
					return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
				}
			}

			jobs, err := wire.JobService().JobsOn(ctx, actor, date)
			if err != nil {
				return fmt.Errorf("failed to list calendar: %w", err)
			}
			if len(jobs) == 0 {
				fmt.Printf("No jobs active on %s.\n", date.Format(corejob.DateLayout))
				return nil
			}

			fmt.Printf("\nJobs active on %s:\n", date.Format(corejob.DateLayout))
			for _, j := range jobs {
				printJobRow(j)
			}
			fmt.Println()
			return nil
		},
	}
	actorFlag(cmd)
	return cmd
}
