package appstate

import (
	"path/filepath"
	"testing"
)

func withStatePath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	t.Setenv("QUIETLINE_STATE_PATH", path)
	return path
}

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	withStatePath(t)

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.IsFirstRun() {
		t.Error("expected IsFirstRun to be true for a fresh state")
	}
}

func TestRecordRunIncrementsAndPersists(t *testing.T) {
	withStatePath(t)

	s1, err := RecordRun()
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if s1.RunCount != 1 {
		t.Fatalf("RunCount = %d, want 1", s1.RunCount)
	}
	if s1.LastRunAt == nil {
		t.Fatal("expected LastRunAt to be set")
	}

	s2, err := RecordRun()
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if s2.RunCount != 2 {
		t.Fatalf("RunCount = %d, want 2", s2.RunCount)
	}

	reloaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.RunCount != 2 {
		t.Errorf("reloaded RunCount = %d, want 2", reloaded.RunCount)
	}
}
