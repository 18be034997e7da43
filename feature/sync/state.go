package sync

import (
	"sync"
	"time"
)

// Status is a snapshot of the current or last sync run.
type Status struct {
	Running          bool       `json:"running"`
	StartedAt        *time.Time `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at"`
	ComputersSynced  int        `json:"computers_synced"`
	ComponentsSynced int        `json:"components_synced"`
	CurrentGlpiID    *int       `json:"current_glpi_id"`
	Message          string     `json:"message"`
	LastError        string     `json:"last_error"`
}

// StateTracker holds the process-wide sync run state. Writes are confined to
// the single active orchestrator; reads may happen from any request handler
// at any time, so every access goes through the RWMutex.
type StateTracker struct {
	mu     sync.RWMutex
	status Status
}

// NewStateTracker creates a tracker with a zeroed, not-running status.
func NewStateTracker() *StateTracker {
	return &StateTracker{}
}

// Update applies fn to the current status under the write lock. Readers never
// observe a partially applied update.
func (t *StateTracker) Update(fn func(*Status)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.status)
}

// Snapshot returns a consistent copy of the current status.
func (t *StateTracker) Snapshot() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}
