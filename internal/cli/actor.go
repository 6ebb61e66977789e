// Package cli contains the cobra commands for the dashboard.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/wire"
)

// actorFlag adds the --as flag naming the acting operator. Every job
// mutation goes through the services, which enforce the named operator's
// role, so the flag selects identity rather than bypassing anything.
func actorFlag(cmd *cobra.Command) {
	cmd.Flags().String("as", "", "acting operator name (required)")
	_ = cmd.MarkFlagRequired("as")
}

func resolveActor(ctx context.Context, cmd *cobra.Command) (models.Operator, error) {
	name, _ := cmd.Flags().GetString("as")
	ops, err := wire.DirectoryService().Operators(ctx)
	if err != nil {
		return models.Operator{}, err
	}
	for _, op := range ops {
		if strings.EqualFold(op.Name, name) {
			return op, nil
		}
	}
	return models.Operator{}, fmt.Errorf("unknown operator %q", name)
}
