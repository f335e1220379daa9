package shared

import (
	"time"

	"github.com/google/uuid"

	"github.com/quietline/sanitize/internal/audit"
	"github.com/quietline/sanitize/internal/logger"
	"github.com/quietline/sanitize/internal/monitor"
	"github.com/quietline/sanitize/internal/redact"
)

// Telemetry bundles the optional, out-of-band observability a sanitize/scan
// invocation can feed: an append-only audit log and a live dashboard
// running in another process. Both are nil-safe no-ops when not
// configured, so callers never need to branch on whether telemetry is on.
type Telemetry struct {
	RunID      string
	Source     string
	AuditLog   *audit.Log
	MonitorURL string
	Logger     *logger.Logger
}

// NewTelemetry opens the audit log at auditLogPath, if non-empty. monitorURL
// is stored for later PostEvent calls and never dialed eagerly, since the
// dashboard being unreachable must not fail command startup.
func NewTelemetry(source, auditLogPath, monitorURL string, log *logger.Logger) (*Telemetry, error) {
	t := &Telemetry{
		RunID:      uuid.NewString(),
		Source:     source,
		MonitorURL: monitorURL,
		Logger:     log,
	}

	if auditLogPath != "" {
		l, err := audit.Open(auditLogPath)
		if err != nil {
			return nil, err
		}
		t.AuditLog = l
	}

	return t, nil
}

// RecordMatch appends an audit entry for m and, if a dashboard is
// configured, broadcasts a redaction event. Failures on either sink are
// logged, never returned — telemetry must not abort sanitization.
func (t *Telemetry) RecordMatch(m redact.RedactionMatch) {
	if t.AuditLog != nil {
		entry := audit.NewEntry(t.RunID, t.Source, m.RuleName, m.Original, m.Start, m.End, time.Now())
		if err := t.AuditLog.Append(entry); err != nil {
			t.warn("audit log append failed", err)
		}
	}

	if t.MonitorURL != "" {
		event := monitor.Event{
			Type:      monitor.EventTypeRedaction,
			Timestamp: time.Now().UTC(),
			RunID:     t.RunID,
			Data: monitor.RedactionEvent{
				RunID:    t.RunID,
				RuleName: m.RuleName,
				Start:    m.Start,
				End:      m.End,
				Source:   t.Source,
			},
		}
		if err := monitor.PostEvent(t.MonitorURL, event); err != nil {
			t.warn("dashboard event post failed", err)
		}
	}
}

// FinishRun broadcasts a run-summary event once a sanitize run completes.
func (t *Telemetry) FinishRun(activeRules, matchCount int, duration time.Duration) {
	if t.MonitorURL == "" {
		return
	}
	event := monitor.Event{
		Type:      monitor.EventTypeRunSummary,
		Timestamp: time.Now().UTC(),
		RunID:     t.RunID,
		Data: monitor.RunSummaryEvent{
			RunID:       t.RunID,
			ActiveRules: activeRules,
			MatchCount:  matchCount,
			DurationMS:  duration.Milliseconds(),
		},
	}
	if err := monitor.PostEvent(t.MonitorURL, event); err != nil {
		t.warn("dashboard run summary post failed", err)
	}
}

// Close flushes and closes the audit log, if one was opened.
func (t *Telemetry) Close() error {
	if t.AuditLog == nil {
		return nil
	}
	return t.AuditLog.Close()
}

func (t *Telemetry) warn(message string, err error) {
	if t.Logger == nil {
		return
	}
	t.Logger.Sugar().Warnw(message, "error", err)
}
