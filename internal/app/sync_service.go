package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/example/commesse/internal/ports/primary"
	"github.com/example/commesse/internal/ports/secondary"
)

// SyncCoordinator implements primary.SyncService. It serializes the
// canonical snapshot to and from the remote store: optimistic local
// commits followed by best-effort full-snapshot pushes, periodic polling
// fetches that replace non-empty collections wholesale, and a one-shot
// error indicator. A push failure never rolls back the local commit -
// local state is the source of truth until the next successful exchange.
type SyncCoordinator struct {
	store *SnapshotStore
	sheet secondary.SheetStore
	log   *slog.Logger

	mu        sync.Mutex
	connected bool
	syncing   bool
	diverged  bool
	lastError string
}

// NewSyncCoordinator wires the coordinator. sheet may be nil, which keeps
// the system in local-only mode (pushes skipped, fetches refused).
func NewSyncCoordinator(store *SnapshotStore, sheet secondary.SheetStore, log *slog.Logger) *SyncCoordinator {
	return &SyncCoordinator{
		store:     store,
		sheet:     sheet,
		log:       log,
		connected: sheet != nil,
	}
}

// Refresh fetches the remote snapshot and merges it. Fetch failures leave
// local state untouched; an expired credential disconnects the store and
// requires re-authentication.
func (s *SyncCoordinator) Refresh(ctx context.Context, silent bool) error {
	if s.sheet == nil {
		return secondary.ErrStoreOffline
	}

	if !silent {
		s.setSyncing(true)
		defer s.setSyncing(false)
	}

	fetched, err := s.sheet.Fetch(ctx)
	if err != nil {
		if errors.Is(err, secondary.ErrAuthExpired) {
			s.disconnect()
		}
		s.noteError(err)
		s.log.Warn("fetch failed, local state untouched", "error", err, "silent", silent)
		return err
	}

	s.store.Replace(fetched)
	s.setDiverged(false)
	s.log.Debug("snapshot refreshed",
		"jobs", len(fetched.Jobs),
		"operators", len(fetched.Operators),
		"clients", len(fetched.Clients),
		"logs", len(fetched.Logs),
	)
	return nil
}

// Push persists the current local snapshot remotely.
func (s *SyncCoordinator) Push(ctx context.Context) error {
	if s.sheet == nil || !s.isConnected() {
		return secondary.ErrStoreOffline
	}

	s.setSyncing(true)
	defer s.setSyncing(false)

	if err := s.sheet.Push(ctx, s.store.View()); err != nil {
		if errors.Is(err, secondary.ErrAuthExpired) {
			s.disconnect()
		}
		s.noteError(err)
		return err
	}
	return nil
}

// InitHeaders writes the four header rows to the remote store.
func (s *SyncCoordinator) InitHeaders(ctx context.Context) error {
	if s.sheet == nil {
		return secondary.ErrStoreOffline
	}
	return s.sheet.WriteHeaders(ctx)
}

// CommitAndPersist applies mutate to the local snapshot, then pushes the
// whole snapshot when connected. This is the single write path every
// service uses. The commit always succeeds; a push failure is logged,
// surfaced once through Status, and otherwise dropped.
func (s *SyncCoordinator) CommitAndPersist(ctx context.Context, mutate func(*secondary.Snapshot)) {
	_, diverged := s.store.Commit(mutate)
	s.setDiverged(diverged)
	if diverged {
		s.log.Warn("local snapshot has diverged from last fetch")
	}

	if s.sheet == nil || !s.isConnected() {
		return
	}

	s.setSyncing(true)
	defer s.setSyncing(false)

	if err := s.sheet.Push(ctx, s.store.View()); err != nil {
		if errors.Is(err, secondary.ErrAuthExpired) {
			s.disconnect()
		}
		s.noteError(err)
		s.log.Error("push failed, keeping optimistic local state", "error", err)
	}
}

// Poll runs the background refresh loop until ctx is done. Overlapping
// slow fetches are not prevented; the later-completing response wins.
func (s *SyncCoordinator) Poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx, true); err != nil && !errors.Is(err, secondary.ErrStoreOffline) {
				s.log.Debug("background refresh failed", "error", err)
			}
		}
	}
}

// Status reports the current sync state and clears the one-shot error.
func (s *SyncCoordinator) Status() primary.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := primary.SyncStatus{
		Connected: s.connected,
		Syncing:   s.syncing,
		Diverged:  s.diverged,
		LastError: s.lastError,
	}
	s.lastError = ""
	return st
}

func (s *SyncCoordinator) setSyncing(v bool) {
	s.mu.Lock()
	s.syncing = v
	s.mu.Unlock()
}

func (s *SyncCoordinator) setDiverged(v bool) {
	s.mu.Lock()
	s.diverged = v
	s.mu.Unlock()
}

func (s *SyncCoordinator) noteError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *SyncCoordinator) disconnect() {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()
}

func (s *SyncCoordinator) isConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}
