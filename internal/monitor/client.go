package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// postTimeout bounds how long PostEvent waits for a running dashboard to
// accept an event before giving up. Telemetry is best-effort: a slow or
// absent dashboard must never hold up the sanitize/scan pipeline it is
// reporting on.
const postTimeout = 2 * time.Second

var eventClient = &http.Client{Timeout: postTimeout}

// PostEvent sends event to a running `quietline serve` instance's /events
// endpoint, for processes (sanitize, scan) that are not themselves hosting
// a Hub but want to feed one running elsewhere.
func PostEvent(monitorURL string, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, monitorURL+"/events", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := eventClient.Do(req)
	if err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("post event: unexpected status %s", resp.Status)
	}
	return nil
}
