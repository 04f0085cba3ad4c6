package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store defines the interface for history storage backends
type Store interface {
	SaveEntry(e *Entry) error
	GetEntry(id string) (*Entry, error)
	ListEntries(limit int) ([]*Entry, error)
	DeleteEntry(id string) error
	Clear() error
	Close() error
}

// Manager records command invocations in a local journal
type Manager struct {
	store  Store
	mu     sync.RWMutex
	active *Entry
}

// NewManager creates a new history manager
func NewManager(driver, path string) (*Manager, error) {
	var store Store
	var err error

	switch driver {
	case "memory", "":
		store = NewMemoryStore()
	case "sqlite":
		store, err = NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite store: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported history driver: %s", driver)
	}

	return &Manager{store: store}, nil
}

// Close closes the history manager
func (m *Manager) Close() error {
	return m.store.Close()
}

// Begin creates and returns a new running entry
func (m *Manager) Begin(command string, params map[string]interface{}) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := NewEntry(uuid.New().String(), command)
	if params != nil {
		entry.Params = params
	}

	if err := m.store.SaveEntry(entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	m.active = entry
	return entry, nil
}

// SetResource annotates the active entry with the remote resource it touched
func (m *Manager) SetResource(resource, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return
	}
	m.active.Resource = resource
	m.active.ResourceID = id
}

// Complete marks the active entry as completed
func (m *Manager) Complete(result map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return fmt.Errorf("no active entry")
	}

	m.active.Status = "completed"
	m.active.CompletedAt = time.Now()
	m.active.Result = result

	if err := m.store.SaveEntry(m.active); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	return nil
}

// Fail marks the active entry as failed
func (m *Manager) Fail(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return fmt.Errorf("no active entry")
	}

	m.active.Status = "failed"
	m.active.CompletedAt = time.Now()
	m.active.Error = err.Error()

	if saveErr := m.store.SaveEntry(m.active); saveErr != nil {
		return fmt.Errorf("failed to save entry: %w", saveErr)
	}

	return nil
}

// Get retrieves an entry by ID
func (m *Manager) Get(id string) (*Entry, error) {
	return m.store.GetEntry(id)
}

// List lists recent entries
func (m *Manager) List(limit int) ([]*Entry, error) {
	return m.store.ListEntries(limit)
}

// Delete removes an entry
func (m *Manager) Delete(id string) error {
	return m.store.DeleteEntry(id)
}

// Clear removes all entries
func (m *Manager) Clear() error {
	return m.store.Clear()
}
