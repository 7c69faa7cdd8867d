package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nareshroyalc/Docify/pkg/llm"
	"github.com/nareshroyalc/Docify/pkg/worklog"
)

// GenerateRequest is the documentation request body.
type GenerateRequest struct {
	Topic         string   `json:"topic"`
	RelatedTopics []string `json:"related_topics,omitempty"`
	Details       string   `json:"details,omitempty"`
	Challenges    string   `json:"challenges,omitempty"`
	Priority      string   `json:"priority,omitempty"`
	DocID         string   `json:"doc_id,omitempty"`
	SkipMetrics   bool     `json:"skip_metrics,omitempty"`
}

// GenerateResponse reports the written document.
type GenerateResponse struct {
	Success    bool                       `json:"success"`
	Message    string                     `json:"message"`
	Timestamp  string                     `json:"timestamp,omitempty"`
	DocURL     string                     `json:"doc_url,omitempty"`
	Structured *worklog.StructuredEntry   `json:"structured,omitempty"`
	Metrics    *worklog.GenerationMetrics `json:"metrics,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, GenerateResponse{
			Success: false, Message: "method not allowed",
		})
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, GenerateResponse{
			Success: false, Message: "invalid request body: " + err.Error(),
		})
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeJSON(w, http.StatusBadRequest, GenerateResponse{
			Success: false, Message: "topic is required",
		})
		return
	}

	priority, err := worklog.ParsePriority(req.Priority)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, GenerateResponse{
			Success: false, Message: err.Error(),
		})
		return
	}

	// Related topics enrich the details the same way the request form did.
	details := req.Details
	if len(req.RelatedTopics) > 0 {
		if details != "" {
			details += ". "
		}
		details += "Related areas: " + strings.Join(req.RelatedTopics, ", ")
	}

	docID := req.DocID
	if docID == "" {
		docID = s.defaultDocID
	}

	s.mutex.Lock()
	s.requests++
	s.mutex.Unlock()

	outcome, err := s.assistant.Document(r.Context(), llm.Request{
		Topic:      req.Topic,
		Details:    details,
		Challenges: req.Challenges,
		Priority:   priority,
	}, docID, !req.SkipMetrics)
	if err != nil {
		s.logger.LogError(err)
		writeJSON(w, http.StatusInternalServerError, GenerateResponse{
			Success: false, Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		Success:    true,
		Message:    "Documentation generated and written successfully",
		Timestamp:  outcome.Timestamp,
		DocURL:     outcome.DocURL,
		Structured: outcome.Entry,
		Metrics:    outcome.Metrics,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mutex.RLock()
	requests := s.requests
	s.mutex.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"port":            s.port,
		"uptime":          time.Since(s.startTime).String(),
		"requests":        requests,
		"service_account": s.assistant.ServiceAccountEmail(),
	})
}

// handleWebSocket streams progress events to the client until it
// disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Logf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	name := "ws-" + uuid.NewString()
	ch := s.bus.Subscribe(name)
	defer s.bus.Unsubscribe(name)

	// Drain client frames so closes are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
