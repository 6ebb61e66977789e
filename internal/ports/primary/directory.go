package primary

import (
	"context"

	"github.com/example/commesse/internal/models"
)

// DirectoryService is the primary port for the operator and client
// registries (the admin settings surface) and for the login gate.
type DirectoryService interface {
	// Operators returns all operators.
	Operators(ctx context.Context) ([]models.Operator, error)

	// Clients returns all clients.
	Clients(ctx context.Context) ([]models.Client, error)

	// Authenticate checks the shared password for the selected operator
	// and returns the operator record. Admin operators use the admin
	// password. No token is issued; the role model is the whole session.
	Authenticate(ctx context.Context, operatorID int, password string) (models.Operator, error)

	// CreateOperator adds an operator (admin only).
	CreateOperator(ctx context.Context, actor models.Operator, op models.Operator) error

	// UpdateOperator edits an operator (admin only). A rename rewrites the
	// assigned-operator reference on every matching job in the same commit.
	UpdateOperator(ctx context.Context, actor models.Operator, op models.Operator) error

	// DeleteOperator removes an operator (admin only).
	DeleteOperator(ctx context.Context, actor models.Operator, operatorID int) error

	// CreateClient adds a client (managers only). An empty ID is filled in.
	CreateClient(ctx context.Context, actor models.Operator, c models.Client) (models.Client, error)

	// UpdateClient edits a client (managers only). A rename rewrites the
	// client reference on every matching job in the same commit.
	UpdateClient(ctx context.Context, actor models.Operator, c models.Client) error

	// DeleteClient removes a client (admin only).
	DeleteClient(ctx context.Context, actor models.Operator, clientID string) error
}
