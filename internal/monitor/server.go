package monitor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server exposes the dashboard's HTTP surface: static assets, a health
// probe, and the WebSocket upgrade endpoint backed by a Hub.
type Server struct {
	hub    *Hub
	router *mux.Router
	logger *zap.Logger
}

// NewServer wires a router around hub.
func NewServer(hub *Hub, logger *zap.Logger) *Server {
	s := &Server{
		hub:    hub,
		router: mux.NewRouter(),
		logger: logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	s.router.HandleFunc("/events", s.handleEvents).Methods(http.MethodPost)
	s.router.HandleFunc("/ws", s.hub.HandleWebSocket).Methods(http.MethodGet)
	s.router.HandleFunc("/", serveDashboard).Methods(http.MethodGet)
	s.router.HandleFunc("/dashboard", serveDashboard).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler so Server can be passed straight to
// http.Server.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.hub.Stats())
}

// handleEvents accepts a redaction or run-summary event from an
// out-of-process sanitize/scan invocation and forwards it onto the hub's
// connected dashboard clients, exactly as if it had been broadcast by a
// producer living inside this process.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, fmt.Sprintf("decode event: %v", err), http.StatusBadRequest)
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	s.hub.BroadcastEvent(event)
	w.WriteHeader(http.StatusAccepted)
}

// serveDashboard serves the static dashboard page, cache-disabled so
// operators always see the current build during development.
func serveDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	http.ServeFile(w, r, "web/dashboard.html")
}
