package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/example/commesse/internal/core/policy"
	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/secondary"
)

// DirectoryServiceImpl implements primary.DirectoryService: the operator
// and client registries plus the login gate.
type DirectoryServiceImpl struct {
	store         *SnapshotStore
	sync          *SyncCoordinator
	log           *slog.Logger
	password      string
	adminPassword string
}

// NewDirectoryService creates a DirectoryService with injected dependencies.
func NewDirectoryService(store *SnapshotStore, sync *SyncCoordinator, log *slog.Logger, password, adminPassword string) *DirectoryServiceImpl {
	return &DirectoryServiceImpl{
		store:         store,
		sync:          sync,
		log:           log,
		password:      password,
		adminPassword: adminPassword,
	}
}

// Operators returns all operators.
func (s *DirectoryServiceImpl) Operators(ctx context.Context) ([]models.Operator, error) {
	return s.store.View().Operators, nil
}

// Clients returns all clients.
func (s *DirectoryServiceImpl) Clients(ctx context.Context) ([]models.Client, error) {
	return s.store.View().Clients, nil
}

// Authenticate checks the shared password for the selected operator.
// Admin operators use the distinct admin password.
func (s *DirectoryServiceImpl) Authenticate(ctx context.Context, operatorID int, password string) (models.Operator, error) {
	op, ok := s.findOperator(operatorID)
	if !ok {
		return models.Operator{}, fmt.Errorf("%w: id %d", ErrOperatorNotFound, operatorID)
	}

	want := s.password
	if policy.IsAdmin(op.Department) {
		want = s.adminPassword
	}
	if password != want {
		s.log.Warn("login rejected", "operator", op.Name)
		return models.Operator{}, ErrBadCredentials
	}
	return op, nil
}

// CreateOperator adds an operator. Admin only.
func (s *DirectoryServiceImpl) CreateOperator(ctx context.Context, actor models.Operator, op models.Operator) error {
	if !policy.IsAdmin(actor.Department) {
		return fmt.Errorf("%w: only admins manage operators", ErrForbidden)
	}
	if op.ID == 0 {
		op.ID = s.nextOperatorID()
	}
	if err := op.Validate(); err != nil {
		return err
	}
	if _, exists := s.findOperator(op.ID); exists {
		return fmt.Errorf("%w: operator id %d already taken", models.ErrValidation, op.ID)
	}

	s.sync.CommitAndPersist(ctx, func(snap *secondary.Snapshot) {
		snap.Operators = append(snap.Operators, op)
	})
	s.log.Info("operator created", "operator", op.Name, "actor", actor.Name)
	return nil
}

// UpdateOperator edits an operator. A rename rewrites the assignment
// reference on every matching job in the same commit, since jobs point at
// operators by name.
func (s *DirectoryServiceImpl) UpdateOperator(ctx context.Context, actor models.Operator, op models.Operator) error {
	if !policy.IsAdmin(actor.Department) {
		return fmt.Errorf("%w: only admins manage operators", ErrForbidden)
	}
	if err := op.Validate(); err != nil {
		return err
	}
	previous, ok := s.findOperator(op.ID)
	if !ok {
		return fmt.Errorf("%w: id %d", ErrOperatorNotFound, op.ID)
	}

	s.sync.CommitAndPersist(ctx, func(snap *secondary.Snapshot) {
		for i := range snap.Operators {
			if snap.Operators[i].ID == op.ID {
				snap.Operators[i] = op
			}
		}
		if previous.Name != op.Name {
			for i := range snap.Jobs {
				if snap.Jobs[i].AssignedOperator == previous.Name {
					snap.Jobs[i].AssignedOperator = op.Name
				}
			}
		}
	})
	if previous.Name != op.Name {
		s.log.Info("operator renamed, job references rewritten", "from", previous.Name, "to", op.Name)
	}
	return nil
}

// DeleteOperator removes an operator. Admin only. Jobs assigned to the
// removed operator keep the dangling name; only a rename rewrites them.
func (s *DirectoryServiceImpl) DeleteOperator(ctx context.Context, actor models.Operator, operatorID int) error {
	if !policy.IsAdmin(actor.Department) {
		return fmt.Errorf("%w: only admins manage operators", ErrForbidden)
	}
	if _, ok := s.findOperator(operatorID); !ok {
		return fmt.Errorf("%w: id %d", ErrOperatorNotFound, operatorID)
	}

	s.sync.CommitAndPersist(ctx, func(snap *secondary.Snapshot) {
		kept := snap.Operators[:0]
		for _, o := range snap.Operators {
			if o.ID != operatorID {
				kept = append(kept, o)
			}
		}
		snap.Operators = kept
	})
	return nil
}

// CreateClient adds a client. Managers only; an empty ID is generated.
func (s *DirectoryServiceImpl) CreateClient(ctx context.Context, actor models.Operator, c models.Client) (models.Client, error) {
	if !policy.CanManageData(actor.Department) {
		return models.Client{}, fmt.Errorf("%w: %s cannot manage clients", ErrForbidden, actor.Department)
	}
	if c.ID == "" {
		c.ID = "CL-" + uuid.NewString()[:8]
	}
	if err := c.Validate(); err != nil {
		return models.Client{}, err
	}

	s.sync.CommitAndPersist(ctx, func(snap *secondary.Snapshot) {
		snap.Clients = append(snap.Clients, c)
	})
	s.log.Info("client created", "client", c.Name, "actor", actor.Name)
	return c, nil
}

// UpdateClient edits a client, rewriting job references on rename.
func (s *DirectoryServiceImpl) UpdateClient(ctx context.Context, actor models.Operator, c models.Client) error {
	if !policy.CanManageData(actor.Department) {
		return fmt.Errorf("%w: %s cannot manage clients", ErrForbidden, actor.Department)
	}
	if err := c.Validate(); err != nil {
		return err
	}

	var previous models.Client
	found := false
	for _, existing := range s.store.View().Clients {
		if existing.ID == c.ID {
			previous = existing
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrClientNotFound, c.ID)
	}

	s.sync.CommitAndPersist(ctx, func(snap *secondary.Snapshot) {
		for i := range snap.Clients {
			if snap.Clients[i].ID == c.ID {
				snap.Clients[i] = c
			}
		}
		if previous.Name != c.Name {
			for i := range snap.Jobs {
				if snap.Jobs[i].Client == previous.Name {
					snap.Jobs[i].Client = c.Name
				}
			}
		}
	})
	return nil
}

// DeleteClient removes a client. Admin only.
func (s *DirectoryServiceImpl) DeleteClient(ctx context.Context, actor models.Operator, clientID string) error {
	if !policy.IsAdmin(actor.Department) {
		return fmt.Errorf("%w: only admins delete clients", ErrForbidden)
	}

	s.sync.CommitAndPersist(ctx, func(snap *secondary.Snapshot) {
		kept := snap.Clients[:0]
		for _, c := range snap.Clients {
			if c.ID != clientID {
				kept = append(kept, c)
			}
		}
		snap.Clients = kept
	})
	return nil
}

func (s *DirectoryServiceImpl) findOperator(id int) (models.Operator, bool) {
	for _, op := range s.store.View().Operators {
		if op.ID == id {
			return op, true
		}
	}
	return models.Operator{}, false
}

func (s *DirectoryServiceImpl) nextOperatorID() int {
	max := 0
	for _, op := range s.store.View().Operators {
		if op.ID > max {
			max = op.ID
		}
	}
	return max + 1
}
