package history

import (
	"time"
)

// Entry records a single CLI command invocation against the service
type Entry struct {
	ID          string                 `json:"id"`
	Command     string                 `json:"command"`               // e.g., "projects create"
	Resource    string                 `json:"resource,omitempty"`    // e.g., "project", "swarm"
	ResourceID  string                 `json:"resource_id,omitempty"` // remote identifier when known
	Status      string                 `json:"status"`                // running, completed, failed
	StartedAt   time.Time              `json:"started_at"`
	CompletedAt time.Time              `json:"completed_at,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Params      map[string]interface{} `json:"params,omitempty"`
	Result      map[string]interface{} `json:"result,omitempty"`
}

// NewEntry creates a new running entry
func NewEntry(id, command string) *Entry {
	return &Entry{
		ID:        id,
		Command:   command,
		Status:    "running",
		StartedAt: time.Now(),
		Params:    make(map[string]interface{}),
	}
}

// Duration returns the wall time the command took. Running entries measure
// up to now.
func (e *Entry) Duration() time.Duration {
	if e.CompletedAt.IsZero() {
		return time.Since(e.StartedAt)
	}
	return e.CompletedAt.Sub(e.StartedAt)
}
