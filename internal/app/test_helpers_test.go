package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/secondary"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testClock() time.Time { return fixedNow }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Ensure the fakes implement the secondary ports.
var (
	_ secondary.SheetStore  = (*fakeSheetStore)(nil)
	_ secondary.Interpreter = (*fakeInterpreter)(nil)
)

// fakeSheetStore is an in-memory SheetStore with scriptable failures.
type fakeSheetStore struct {
	remote       secondary.Snapshot
	fetchErr     error
	pushErr      error
	fetchCount   int
	pushCount    int
	headersCount int
}

func (f *fakeSheetStore) Fetch(ctx context.Context) (secondary.Snapshot, error) {
	f.fetchCount++
	if f.fetchErr != nil {
		return secondary.Snapshot{}, f.fetchErr
	}
	return f.remote.Clone(), nil
}

func (f *fakeSheetStore) Push(ctx context.Context, snap secondary.Snapshot) error {
	f.pushCount++
	if f.pushErr != nil {
		return f.pushErr
	}
	f.remote = snap.Clone()
	return nil
}

func (f *fakeSheetStore) WriteHeaders(ctx context.Context) error {
	f.headersCount++
	return nil
}

// fakeInterpreter returns a canned response and records its inputs.
type fakeInterpreter struct {
	response []byte
	err      error

	gotText  string
	gotActor models.Operator
	gotJobs  []models.Job
}

func (f *fakeInterpreter) Interpret(ctx context.Context, text string, actor models.Operator, jobs []models.Job) ([]byte, error) {
	f.gotText = text
	f.gotActor = actor
	f.gotJobs = jobs
	return f.response, f.err
}

type fixture struct {
	store *SnapshotStore
	sheet *fakeSheetStore
	sync  *SyncCoordinator
	jobs  *JobServiceImpl
	dir   *DirectoryServiceImpl
}

func newFixture(seed secondary.Snapshot) *fixture {
	sheet := &fakeSheetStore{}
	store := NewSnapshotStore(seed, 10)
	coord := NewSyncCoordinator(store, sheet, testLogger())
	return &fixture{
		store: store,
		sheet: sheet,
		sync:  coord,
		jobs:  NewJobService(store, coord, testLogger(), testClock),
		dir:   NewDirectoryService(store, coord, testLogger(), "1409", "14091111"),
	}
}

func testSnapshot() secondary.Snapshot {
	return secondary.Snapshot{
		Operators: []models.Operator{
			{ID: 1, Name: "Rossi", Department: models.DeptWorkshop},
			{ID: 2, Name: "Bianchi", Department: models.DeptWarehouse},
			{ID: 3, Name: "Verdi", Department: models.DeptSales, ShowEstimatedHours: true},
			{ID: 4, Name: "Neri", Department: models.DeptAdmin, ShowEstimatedHours: true},
		},
		Clients: []models.Client{
			{ID: "CL01", Name: "Ferrari SpA"},
		},
		Jobs: []models.Job{
			{
				ID:         "C001",
				Code:       "JOB-001",
				Client:     "Ferrari SpA",
				Priority:   2,
				Department: models.DeptWorkshop,
				Status:     models.StatusQuote,
				Completion: models.CompletionOpen,
				Color:      "#3b82f6",
			},
			{
				ID:               "C002",
				Code:             "JOB-002",
				Client:           "Ferrari SpA",
				Priority:         3,
				Department:       models.DeptWarehouse,
				Status:           models.StatusCutting,
				AssignedOperator: "Bianchi",
				TakenInCharge:    "2026-03-01",
				ExpectedFinish:   "2026-03-20",
				Completion:       models.CompletionOpen,
				Color:            "#eab308",
			},
		},
	}
}

func (fx *fixture) operator(name string) models.Operator {
	for _, op := range fx.store.View().Operators {
		if op.Name == name {
			return op
		}
	}
	return models.Operator{}
}
