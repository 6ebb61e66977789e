// Package secondary defines the secondary ports (driven adapters) for the
// application: the interfaces through which it drives external systems.
package secondary

import (
	"context"
	"errors"

	"github.com/example/commesse/internal/models"
)

// Snapshot is the full canonical data set as one value: the four
// collections the remote store keeps as named row ranges.
type Snapshot struct {
	Jobs      []models.Job
	Operators []models.Operator
	Clients   []models.Client
	Logs      []models.PhaseLog
}

// Clone returns a deep-enough copy (fresh slices over value elements).
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Jobs:      append([]models.Job(nil), s.Jobs...),
		Operators: append([]models.Operator(nil), s.Operators...),
		Clients:   append([]models.Client(nil), s.Clients...),
		Logs:      append([]models.PhaseLog(nil), s.Logs...),
	}
}

// ErrAuthExpired signals that the store credential is no longer valid.
// The coordinator clears stored credentials and requires re-authentication;
// there is no automatic retry.
var ErrAuthExpired = errors.New("store credential expired")

// ErrStoreOffline signals that no store is configured or connected.
var ErrStoreOffline = errors.New("store offline")

// SheetStore is the remote bulk get/put store. A fetch reads all four
// ranges in one call; a push is a full clear-then-rewrite of all four
// ranges. The store has no server-side transactions: a push that fails
// between clear and write can leave it empty, which is why fetch results
// are distrusted per collection when empty.
type SheetStore interface {
	// Fetch reads the whole remote snapshot.
	Fetch(ctx context.Context) (Snapshot, error)

	// Push clears the four ranges and rewrites them from snap.
	Push(ctx context.Context, snap Snapshot) error

	// WriteHeaders writes the four header rows. One-time setup.
	WriteHeaders(ctx context.Context) error
}

// Interpreter turns a free-text command into the fixed structured action
// schema. It receives the caller identity and a reduced job list, and
// returns the raw response bytes; decoding and validation happen in the
// action package so a malformed response can never crash the adapter.
type Interpreter interface {
	Interpret(ctx context.Context, text string, actor models.Operator, jobs []models.Job) ([]byte, error)
}
