package app

import (
	"sync"

	"github.com/example/commesse/internal/ports/secondary"
)

// SnapshotStore owns the canonical in-memory snapshot. All reads hand out
// copies and all writes go through Commit or Replace, so callers never
// share slices with the store. A monotonically increasing version counter
// tracks local commits; Replace records the version current at the last
// successful fetch, and the gap between the two is the divergence signal
// surfaced instead of silent last-write-wins.
type SnapshotStore struct {
	mu             sync.Mutex
	snap           secondary.Snapshot
	version        uint64
	fetchedVersion uint64

	// divergenceThreshold is the number of local commits past the last
	// fetch tolerated before commits are flagged. Zero flags every commit
	// made without an intervening fetch.
	divergenceThreshold uint64
}

// NewSnapshotStore creates a store seeded with initial data.
func NewSnapshotStore(seed secondary.Snapshot, divergenceThreshold uint64) *SnapshotStore {
	return &SnapshotStore{
		snap:                seed.Clone(),
		divergenceThreshold: divergenceThreshold,
	}
}

// View returns a copy of the current snapshot.
func (s *SnapshotStore) View() secondary.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Version returns the current local version counter.
func (s *SnapshotStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Commit applies mutate to the snapshot under the lock, bumps the local
// version, and reports whether local state has diverged from the last
// fetched version by more than the threshold. The mutation itself is
// never rejected: local state stays the source of truth.
func (s *SnapshotStore) Commit(mutate func(*secondary.Snapshot)) (snap secondary.Snapshot, diverged bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.snap)
	s.version++
	diverged = s.version-s.fetchedVersion > s.divergenceThreshold
	return s.snap.Clone(), diverged
}

// Replace merges a fetched snapshot: each collection replaces the local
// one only when non-empty. A transient empty read therefore never wipes
// local data. The fetched version marker advances regardless, since the
// remote store answered.
func (s *SnapshotStore) Replace(fetched secondary.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := fetched.Clone()
	if len(clone.Jobs) > 0 {
		s.snap.Jobs = clone.Jobs
	}
	if len(clone.Operators) > 0 {
		s.snap.Operators = clone.Operators
	}
	if len(clone.Clients) > 0 {
		s.snap.Clients = clone.Clients
	}
	if len(clone.Logs) > 0 {
		s.snap.Logs = clone.Logs
	}

	s.version++
	s.fetchedVersion = s.version
}
