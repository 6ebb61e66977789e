package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/commesse/internal/models"
)

func TestAuthenticate(t *testing.T) {
	fx := newFixture(testSnapshot())

	tests := []struct {
		name       string
		operatorID int
		password   string
		wantErr    error
	}{
		{"workshop with shared password", 1, "1409", nil},
		{"workshop with wrong password", 1, "0000", ErrBadCredentials},
		{"admin with admin password", 4, "14091111", nil},
		{"admin with shared password", 4, "1409", ErrBadCredentials},
		{"unknown operator", 99, "1409", ErrOperatorNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := fx.dir.Authenticate(context.Background(), tt.operatorID, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && op.ID != tt.operatorID {
				t.Errorf("op = %+v", op)
			}
		})
	}
}

func TestOperatorCRUD(t *testing.T) {
	fx := newFixture(testSnapshot())
	admin := fx.operator("Neri")

	// Non-admin refused.
	err := fx.dir.CreateOperator(context.Background(), fx.operator("Verdi"), models.Operator{Name: "Gialli", Department: models.DeptWorkshop})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v", err)
	}

	// Zero ID gets the next free one.
	if err := fx.dir.CreateOperator(context.Background(), admin, models.Operator{Name: "Gialli", Department: models.DeptWorkshop}); err != nil {
		t.Fatal(err)
	}
	ops, _ := fx.dir.Operators(context.Background())
	if len(ops) != 5 || ops[4].ID != 5 {
		t.Errorf("operators = %v", ops)
	}

	// Duplicate ID refused.
	err = fx.dir.CreateOperator(context.Background(), admin, models.Operator{ID: 5, Name: "Dup", Department: models.DeptWorkshop})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("err = %v", err)
	}

	if err := fx.dir.DeleteOperator(context.Background(), admin, 5); err != nil {
		t.Fatal(err)
	}
	ops, _ = fx.dir.Operators(context.Background())
	if len(ops) != 4 {
		t.Errorf("operators after delete = %v", ops)
	}
}

func TestOperatorRenameRewritesJobReferences(t *testing.T) {
	fx := newFixture(testSnapshot())
	admin := fx.operator("Neri")

	// C002 is assigned to Bianchi (id 2).
	err := fx.dir.UpdateOperator(context.Background(), admin, models.Operator{ID: 2, Name: "Bianchi M.", Department: models.DeptWarehouse})
	if err != nil {
		t.Fatal(err)
	}

	snap := fx.store.View()
	for _, j := range snap.Jobs {
		if j.ID == "C002" && j.AssignedOperator != "Bianchi M." {
			t.Errorf("assignment = %q, rename must rewrite it", j.AssignedOperator)
		}
	}
}

func TestDeleteOperatorLeavesAssignmentDangling(t *testing.T) {
	fx := newFixture(testSnapshot())
	admin := fx.operator("Neri")

	if err := fx.dir.DeleteOperator(context.Background(), admin, 2); err != nil {
		t.Fatal(err)
	}
	for _, j := range fx.store.View().Jobs {
		if j.ID == "C002" && j.AssignedOperator != "Bianchi" {
			t.Errorf("delete must not touch job assignments, got %q", j.AssignedOperator)
		}
	}
}

func TestClientCRUD(t *testing.T) {
	fx := newFixture(testSnapshot())
	verdi := fx.operator("Verdi")
	admin := fx.operator("Neri")

	// Workshop refused.
	_, err := fx.dir.CreateClient(context.Background(), fx.operator("Rossi"), models.Client{Name: "Lambo"})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v", err)
	}

	// Sales may create; empty ID gets generated.
	c, err := fx.dir.CreateClient(context.Background(), verdi, models.Client{Name: "Lambo"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(c.ID, "CL-") {
		t.Errorf("id = %q", c.ID)
	}

	// Rename rewrites job references.
	if err := fx.dir.UpdateClient(context.Background(), verdi, models.Client{ID: "CL01", Name: "Scuderia Ferrari"}); err != nil {
		t.Fatal(err)
	}
	for _, j := range fx.store.View().Jobs {
		if j.Client != "Scuderia Ferrari" {
			t.Errorf("job %s client = %q", j.ID, j.Client)
		}
	}

	// Unknown client.
	err = fx.dir.UpdateClient(context.Background(), verdi, models.Client{ID: "nope", Name: "X"})
	if !errors.Is(err, ErrClientNotFound) {
		t.Errorf("err = %v", err)
	}

	// Delete is admin only.
	if err := fx.dir.DeleteClient(context.Background(), verdi, c.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v", err)
	}
	if err := fx.dir.DeleteClient(context.Background(), admin, c.ID); err != nil {
		t.Fatal(err)
	}
	clients, _ := fx.dir.Clients(context.Background())
	if len(clients) != 1 {
		t.Errorf("clients = %v", clients)
	}
}
