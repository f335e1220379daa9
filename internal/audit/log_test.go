package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLogAppendAndReadBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "audit.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	at := time.Date(2026, 8, 2, 13, 0, 0, 0, time.UTC)
	entry := NewEntry("run-123", "stdin", "email", "alice@example.com", 10, 28, at)

	if err := log.Append(entry); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Scan()
	var got Entry
	if err := json.Unmarshal(scanner.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.RunID != "run-123" || got.RuleName != "email" || got.Start != 10 || got.End != 28 {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.InputHash == "" || got.InputHash == "alice@example.com" {
		t.Errorf("expected input to be hashed, got %q", got.InputHash)
	}
}

