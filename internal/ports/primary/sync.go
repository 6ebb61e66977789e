package primary

import "context"

// SyncService is the primary port for the sync coordinator.
type SyncService interface {
	// Refresh fetches the remote snapshot and merges it (non-empty
	// collections replace local ones wholesale). silent suppresses the
	// syncing indicator; failures never wipe local state.
	Refresh(ctx context.Context, silent bool) error

	// Push attempts to persist the current local snapshot remotely.
	Push(ctx context.Context) error

	// InitHeaders writes the four header rows to the remote store.
	InitHeaders(ctx context.Context) error

	// Status reports the current sync state.
	Status() SyncStatus
}

// SyncStatus is the indicator surface the presentation layer renders.
type SyncStatus struct {
	Connected bool   `json:"connected"` // a remote store is configured and credentialed
	Syncing   bool   `json:"syncing"`   // a non-silent fetch or push is in flight
	Diverged  bool   `json:"diverged"`  // local commits have outrun the last fetch past the threshold
	LastError string `json:"lastError"` // one-shot description of the last failed fetch/push
}
