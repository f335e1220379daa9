// Package appstate persists small, local, cross-invocation counters for
// the CLI — how many times sanitize has run and when it last ran — so
// interactive commands can make decisions like "is this the first run"
// without any external service.
package appstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// State is the on-disk usage-counter record.
type State struct {
	RunCount        int        `json:"run_count"`
	LastRunAt       *time.Time `json:"last_run_at,omitempty"`
	PromptsDisabled bool       `json:"prompts_disabled"`
}

// Path returns the state file location: QUIETLINE_STATE_PATH if set,
// otherwise a file under the user's config directory.
func Path() (string, error) {
	if override := os.Getenv("QUIETLINE_STATE_PATH"); override != "" {
		return override, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "quietline", "state.json"), nil
}

// Load reads the state file. A missing file is not an error; it returns a
// zero-value State.
func Load() (*State, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the state file, creating its parent directory if needed.
func Save(s *State) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// RecordRun increments the run counter and stamps the current time as the
// last run, persisting the result.
func RecordRun() (*State, error) {
	s, err := Load()
	if err != nil {
		return nil, err
	}
	s.RunCount++
	now := time.Now().UTC()
	s.LastRunAt = &now
	if err := Save(s); err != nil {
		return nil, err
	}
	return s, nil
}

// IsFirstRun reports whether RecordRun has never been called before.
func (s *State) IsFirstRun() bool {
	return s.RunCount == 0
}
