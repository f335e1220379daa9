// Package monitor exposes a live WebSocket feed of redaction events and
// run-level statistics for the sanitization pipeline, backing the
// dashboard opened by `quietline serve`.
package monitor

import "time"

// EventType identifies the kind of event carried by an Event.
type EventType string

const (
	// EventTypeRedaction is emitted for each RedactionMatch produced by a run.
	EventTypeRedaction EventType = "redaction"
	// EventTypeRunSummary is emitted once a full sanitize run completes.
	EventTypeRunSummary EventType = "run_summary"
	// EventTypeConnection is emitted when a dashboard client connects or disconnects.
	EventTypeConnection EventType = "connection"
)

// Event is a message sent to dashboard clients.
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
	RunID     string      `json:"run_id,omitempty"`
}

// RedactionEvent reports a single redaction match. It never carries the
// original matched text, only the rule and byte offsets, since the
// dashboard is not a trusted sink for the sensitive values it is
// reporting on.
type RedactionEvent struct {
	RunID    string `json:"run_id"`
	RuleName string `json:"rule_name"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Source   string `json:"source,omitempty"`
}

// RunSummaryEvent reports the outcome of a completed sanitize run.
type RunSummaryEvent struct {
	RunID       string `json:"run_id"`
	ActiveRules int    `json:"active_rules"`
	MatchCount  int    `json:"match_count"`
	DurationMS  int64  `json:"duration_ms"`
}

// ConnectionEvent reports a dashboard client connecting or disconnecting.
type ConnectionEvent struct {
	Action   string `json:"action"` // "connected", "disconnected"
	ClientID string `json:"client_id"`
	ClientIP string `json:"client_ip"`
}

// ClientMessage is a message sent from a dashboard client to the hub.
type ClientMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// SubscriptionRequest lets a client narrow the event types it receives.
type SubscriptionRequest struct {
	Events []EventType `json:"events"`
}

// Client is one connected dashboard WebSocket session.
type Client struct {
	ID           string
	Conn         interface{} // *websocket.Conn at runtime
	Send         chan Event
	Subscription *SubscriptionRequest
	ConnectedAt  time.Time
	IP           string
}
