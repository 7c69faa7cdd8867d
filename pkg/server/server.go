// Package server exposes the documentation assistant over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nareshroyalc/Docify/pkg/agent"
	"github.com/nareshroyalc/Docify/pkg/events"
	"github.com/nareshroyalc/Docify/pkg/utils"
)

// Server serves the documentation API and the progress event stream.
type Server struct {
	assistant    *agent.Assistant
	bus          *events.Bus
	defaultDocID string
	port         int
	logger       *utils.Logger

	server    *http.Server
	upgrader  websocket.Upgrader
	mutex     sync.RWMutex
	isRunning bool
	startTime time.Time
	requests  int
}

// New creates a server around an assistant. Port 0 falls back to 8000.
func New(assistant *agent.Assistant, bus *events.Bus, defaultDocID string, port int, logger *utils.Logger) *Server {
	if port == 0 {
		port = 8000
	}
	return &Server{
		assistant:    assistant,
		bus:          bus,
		defaultDocID: defaultDocID,
		port:         port,
		logger:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1")
			},
		},
		startTime: time.Now(),
	}
}

// Start runs the server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.mutex.Lock()
	if s.isRunning {
		s.mutex.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mutex.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: corsMiddleware(mux),
	}

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	s.logger.Logf("API server listening on http://localhost:%d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	s.mutex.Lock()
	if !s.isRunning {
		s.mutex.Unlock()
		return nil
	}
	s.isRunning = false
	s.mutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// corsMiddleware allows browser clients on any origin, matching the
// development posture of the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
