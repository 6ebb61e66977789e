package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/commesse/internal/wire"
)

// AskCmd returns the ask command
func AskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [text...]",
		Short: "Drive the dashboard with a natural-language command",
		Long: `Send free text to the assistant, which interprets it and dispatches
a job action on behalf of the acting operator. Requires a configured
interpreter API key.

Examples:
  commesse ask --as "Rossi" take charge of C001
  commesse ask --as "Verdi" set the priority of C002 to 5
  commesse ask --as "Neri" what is in progress this week`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := resolveActor(ctx, cmd)
			if err != nil {
				return err
			}

			out, err := wire.AssistantService().HandleCommand(ctx, actor, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to handle command: %w", err)
			}

			fmt.Println(out.Message)
			if out.Job != nil {
				printJobRow(*out.Job)
			}
			for _, j := range out.Jobs {
				printJobRow(j)
			}
			if out.CalendarMonth != 0 {
				fmt.Printf("Calendar: %04d-%02d\n", out.CalendarYear, out.CalendarMonth)
			}
			return nil
		},
	}
	actorFlag(cmd)
	return cmd
}
