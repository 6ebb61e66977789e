package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/commesse/internal/adapters/sqlite"
	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/secondary"
)

func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func testPushSnapshot() secondary.Snapshot {
	return secondary.Snapshot{
		Jobs: []models.Job{
			{
				ID:               "C001",
				Code:             "JOB-001",
				Client:           "Ferrari SpA",
				Priority:         4,
				Department:       models.DeptWorkshop,
				Status:           models.StatusCutting,
				AssignedOperator: "Rossi",
				TakenInCharge:    "2026-03-01",
				Completion:       models.CompletionOpen,
				Color:            "#ef4444",
				EstimatedHours:   16,
				Locked:           true,
			},
		},
		Operators: []models.Operator{
			{ID: 1, Name: "Rossi", Department: models.DeptWorkshop, PersonalColor: "#22c55e", Email: "rossi@example.com"},
			{ID: 2, Name: "Verdi", Department: models.DeptSales, ShowEstimatedHours: true},
		},
		Clients: []models.Client{
			{ID: "CL01", Name: "Ferrari SpA", Phone: "+39 000 000"},
		},
		Logs: []models.PhaseLog{
			{ID: "L1", JobID: "C001", Phase: "Cutting", Start: "2026-03-01T08:00:00Z", PhaseState: "in progress", Actor: "Rossi"},
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	want := testPushSnapshot()
	if err := store.Push(ctx, want); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	got, err := store.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(got.Jobs) != 1 || len(got.Operators) != 2 || len(got.Clients) != 1 || len(got.Logs) != 1 {
		t.Fatalf("snapshot sizes = %d/%d/%d/%d", len(got.Jobs), len(got.Operators), len(got.Clients), len(got.Logs))
	}
	if got.Jobs[0] != want.Jobs[0] {
		t.Errorf("job = %+v, want %+v", got.Jobs[0], want.Jobs[0])
	}
	if got.Operators[1] != want.Operators[1] {
		t.Errorf("operator = %+v, want %+v", got.Operators[1], want.Operators[1])
	}
	if got.Clients[0] != want.Clients[0] {
		t.Errorf("client = %+v, want %+v", got.Clients[0], want.Clients[0])
	}
	if got.Logs[0] != want.Logs[0] {
		t.Errorf("log = %+v, want %+v", got.Logs[0], want.Logs[0])
	}
}

func TestStorePushReplacesEverything(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Push(ctx, testPushSnapshot()); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	// A second push with one job must not accumulate rows.
	next := secondary.Snapshot{
		Jobs: []models.Job{{ID: "C002", Client: "Lambo", Priority: 1, Status: models.StatusQuote}},
	}
	if err := store.Push(ctx, next); err != nil {
		t.Fatalf("second Push failed: %v", err)
	}

	got, err := store.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got.Jobs) != 1 || got.Jobs[0].ID != "C002" {
		t.Errorf("jobs = %v", got.Jobs)
	}
	if len(got.Operators) != 0 || len(got.Clients) != 0 || len(got.Logs) != 0 {
		t.Errorf("stale rows survived: %d/%d/%d", len(got.Operators), len(got.Clients), len(got.Logs))
	}
}

func TestStoreFetchEmpty(t *testing.T) {
	store := setupTestStore(t)

	got, err := store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got.Jobs) != 0 || len(got.Operators) != 0 {
		t.Errorf("fresh store not empty: %+v", got)
	}
}
