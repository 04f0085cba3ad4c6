//go:build integration

package integration

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ainative/ainative-go/internal/config"
	"github.com/ainative/ainative-go/internal/history"
)

// TestHistoryPersistenceAcrossRuns records commands through one manager,
// closes it, and verifies a fresh manager over the same database sees them.
func TestHistoryPersistenceAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")

	// --- Run 1: record a successful and a failed command ---
	mgr1, err := history.NewManager("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}

	entry, err := mgr1.Begin("projects create", map[string]interface{}{"name": "docs"})
	if err != nil {
		t.Fatal(err)
	}
	mgr1.SetResource("project", "proj-1")
	if err := mgr1.Complete(map[string]interface{}{"id": "proj-1"}); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr1.Begin("swarm start", nil); err != nil {
		t.Fatal(err)
	}
	if err := mgr1.Fail(errors.New("connection refused")); err != nil {
		t.Fatal(err)
	}

	if err := mgr1.Close(); err != nil {
		t.Fatal(err)
	}

	// --- Run 2: new manager, same database ---
	mgr2, err := history.NewManager("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer mgr2.Close()

	entries, err := mgr2.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 persisted entries, got %d", len(entries))
	}

	got, err := mgr2.Get(entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Command != "projects create" || got.Status != "completed" {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.Resource != "project" || got.ResourceID != "proj-1" {
		t.Errorf("resource not persisted: %+v", got)
	}
	if got.Params["name"] != "docs" {
		t.Errorf("params not persisted: %v", got.Params)
	}

	// The failed command kept its error message.
	var failed bool
	for _, e := range entries {
		if e.Command == "swarm start" && e.Status == "failed" && e.Error == "connection refused" {
			failed = true
		}
	}
	if !failed {
		t.Error("failed command not persisted correctly")
	}

	// Recording continues to work on the reopened database.
	if _, err := mgr2.Begin("health", nil); err != nil {
		t.Fatal(err)
	}
	if err := mgr2.Complete(nil); err != nil {
		t.Fatal(err)
	}
	entries, err = mgr2.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries after new command, got %d", len(entries))
	}
}

// TestConfigRoundTripWithHistory sets up a config directory the way the CLI
// does and verifies the history path default lands inside it.
func TestConfigRoundTripWithHistory(t *testing.T) {
	dir := t.TempDir()

	if _, err := config.Init(dir, false); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("starter config should validate: %v", err)
	}
	if cfg.History.Driver != "sqlite" {
		t.Errorf("unexpected history driver: %q", cfg.History.Driver)
	}
	if cfg.History.Path != filepath.Join(dir, "history.db") {
		t.Errorf("unexpected history path: %q", cfg.History.Path)
	}

	mgr, err := history.NewManager(cfg.History.Driver, cfg.History.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer mgr.Close()

	if _, err := mgr.Begin("config validate", nil); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Complete(nil); err != nil {
		t.Fatal(err)
	}

	entries, err := mgr.List(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}
