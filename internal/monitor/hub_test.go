package monitor

import (
	"testing"

	"go.uber.org/zap"
)

func TestShouldSendToClientRespectsSubscription(t *testing.T) {
	h := NewHub(&HubConfig{BroadcastRedactions: true}, zap.NewNop())

	unsubscribed := &Client{ID: "a"}
	subscribed := &Client{ID: "b", Subscription: &SubscriptionRequest{Events: []EventType{EventTypeRedaction}}}
	subscribedElsewhere := &Client{ID: "c", Subscription: &SubscriptionRequest{Events: []EventType{EventTypeRunSummary}}}

	event := Event{Type: EventTypeRedaction}

	if !h.shouldSendToClient(unsubscribed, event) {
		t.Error("client with no subscription filter should receive all events")
	}
	if !h.shouldSendToClient(subscribed, event) {
		t.Error("client subscribed to redaction events should receive them")
	}
	if h.shouldSendToClient(subscribedElsewhere, event) {
		t.Error("client subscribed to a different event type should not receive it")
	}
}

func TestShouldBroadcastEventGating(t *testing.T) {
	h := NewHub(&HubConfig{BroadcastRedactions: true, BroadcastRunSummary: false}, zap.NewNop())

	if !h.shouldBroadcastEvent(EventTypeRedaction) {
		t.Error("expected redaction events to be broadcast when enabled")
	}
	if h.shouldBroadcastEvent(EventTypeRunSummary) {
		t.Error("expected run summary events to be suppressed when disabled")
	}
}

func TestStatsReflectsActiveClients(t *testing.T) {
	h := NewHub(&HubConfig{}, zap.NewNop())
	client := &Client{ID: "a", Send: make(chan Event, 1)}
	h.registerClient(client)

	stats := h.Stats()
	if stats.ActiveConnections != 1 {
		t.Errorf("ActiveConnections = %d, want 1", stats.ActiveConnections)
	}

	h.unregisterClient(client)
	stats = h.Stats()
	if stats.ActiveConnections != 0 {
		t.Errorf("ActiveConnections after unregister = %d, want 0", stats.ActiveConnections)
	}
}
