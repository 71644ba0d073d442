// Package handler exposes the agent over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"agripulse/internal/agent"
	"agripulse/internal/docstore"
)

type answerRequest struct {
	Query string `json:"query"`
	// DocumentContext carries already-extracted plain text inline.
	DocumentContext string `json:"documentContext,omitempty"`
	// DocumentKey points at extracted text in the document store.
	DocumentKey string `json:"documentKey,omitempty"`
}

type answerResponse struct {
	Answer            string   `json:"answer"`
	Sources           []string `json:"sources"`
	StructuredResults []string `json:"structuredResults"`
}

// AnswerHandler serves POST /api/answer.
type AnswerHandler struct {
	controller *agent.Controller
	documents  docstore.Store // optional
}

func NewAnswerHandler(controller *agent.Controller, documents docstore.Store) *AnswerHandler {
	return &AnswerHandler{controller: controller, documents: documents}
}

func (h *AnswerHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	// Client disconnects cancel the whole request lifecycle.
	ctx := r.Context()

	document := req.DocumentContext
	if document == "" && req.DocumentKey != "" && h.documents != nil {
		text, err := h.documents.Fetch(ctx, req.DocumentKey)
		if err != nil {
			log.Printf("document fetch degraded for key %q: %v", req.DocumentKey, err)
		} else {
			document = text
		}
	}

	answer, err := h.controller.Answer(ctx, agent.Query{
		Text:      req.Query,
		Document:  document,
		Timestamp: time.Now(),
	})
	switch {
	case errors.Is(err, agent.ErrMalformedRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		// Cancellation: the client is gone, nothing useful to write.
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(answerResponse{
		Answer:            answer.Text,
		Sources:           []string{},
		StructuredResults: []string{},
	})
}

// HandleHealthz reports liveness.
func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
