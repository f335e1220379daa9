package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "not-a-level", Format: "json"})
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestNewAllowDebugPIIFromEnv(t *testing.T) {
	t.Setenv("QUIETLINE_ALLOW_DEBUG_PII", "1")
	l, err := New(Config{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.allowDebugPII {
		t.Fatal("expected allowDebugPII to be true from env fallback")
	}
}

func withObserver(base *Logger) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{Logger: zap.New(core), allowDebugPII: base.allowDebugPII}, logs
}

func TestLogRedactionOmitsTextWhenPIIDisallowed(t *testing.T) {
	base := &Logger{allowDebugPII: false}
	l, logs := withObserver(base)

	l.LogRedaction("email", 0, 5, "a@b.com", "[REDACTED]")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	for _, f := range entries[0].Context {
		if f.Key == "original" || f.Key == "sanitized" {
			t.Fatalf("did not expect field %q when PII logging is disallowed", f.Key)
		}
	}
}

func TestLogRedactionIncludesTextWhenPIIAllowed(t *testing.T) {
	base := &Logger{allowDebugPII: true}
	l, logs := withObserver(base)

	l.LogRedaction("email", 0, 5, "a@b.com", "[REDACTED]")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	found := map[string]bool{}
	for _, f := range entries[0].Context {
		found[f.Key] = true
	}
	if !found["original"] || !found["sanitized"] {
		t.Fatal("expected original and sanitized fields when PII logging is allowed")
	}
}
