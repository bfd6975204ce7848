// Package fakeserver provides an in-process chat completion backend that
// speaks the same /api/chat wire protocol as a real server but answers with
// generated lorem ipsum text. It needs no model and no network, which makes
// it useful for examples, demos, and end-to-end tests.
//
// Usage:
//
//	srv := httptest.NewServer(fakeserver.New())
//	defer srv.Close()
//	client := ollamaclient.NewClientWithConfig(&ollamaclient.Config{BaseURL: srv.URL})
package fakeserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"

	ollamaclient "github.com/seawardlabs/ollamaclient-go"
)

// Server is an http.Handler implementing the /api/chat endpoint.
type Server struct {
	generator *loremgen.Lorem

	// ReplyWords is the approximate length of generated replies in words.
	ReplyWords int
}

// New creates a fake server with default settings.
func New() *Server {
	return &Server{
		generator:  loremgen.New(),
		ReplyWords: 24,
	}
}

// ServeHTTP handles POST /api/chat in both streaming and non-streaming mode.
// Other paths and methods fail the way a real server does: a JSON error
// object and a non-success status.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/chat" {
		writeError(w, http.StatusNotFound, "404 page not found")
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ollamaclient.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Model == "" {
		writeError(w, http.StatusBadRequest, "model is required")
		return
	}

	reply := s.generateReply()
	promptTokens := countWords(req.Messages)

	if req.Stream {
		s.streamReply(w, req.Model, reply, promptTokens)
		return
	}

	msg := ollamaclient.AssistantMessage(reply)
	resp := ollamaclient.ChatResponse{
		Model:         req.Model,
		CreatedAt:     timestamp(),
		Message:       &msg,
		Done:          true,
		ChatFinalData: finalData(promptTokens, reply),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(&resp)
}

// streamReply writes the reply as newline-delimited JSON frames, one word
// per frame, ending with the done frame that carries the statistics.
func (s *Server) streamReply(w http.ResponseWriter, model, reply string, promptTokens int) {
	w.Header().Set("Content-Type", "application/x-ndjson")

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)

	for _, word := range strings.Fields(reply) {
		msg := ollamaclient.AssistantMessage(word + " ")
		frame := ollamaclient.ChatResponse{
			Model:     model,
			CreatedAt: timestamp(),
			Message:   &msg,
			Done:      false,
		}
		if err := enc.Encode(&frame); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	final := ollamaclient.AssistantMessage("")
	frame := ollamaclient.ChatResponse{
		Model:         model,
		CreatedAt:     timestamp(),
		Message:       &final,
		Done:          true,
		ChatFinalData: finalData(promptTokens, reply),
	}
	_ = enc.Encode(&frame)
	if flusher != nil {
		flusher.Flush()
	}
}

// generateReply produces lorem ipsum text of roughly ReplyWords words.
func (s *Server) generateReply() string {
	var sb strings.Builder
	words := 0
	for words < s.ReplyWords {
		sentence := s.generator.Sentence(4, 10)
		sb.WriteString(sentence)
		sb.WriteString(" ")
		words += len(strings.Fields(sentence))
	}
	return strings.TrimSpace(sb.String())
}

// finalData fabricates plausible completion statistics from the token counts.
func finalData(promptTokens int, reply string) *ollamaclient.ChatFinalData {
	evalTokens := len(strings.Fields(reply))
	return &ollamaclient.ChatFinalData{
		TotalDuration:      int64(time.Duration(evalTokens) * 25 * time.Millisecond),
		PromptEvalCount:    promptTokens,
		PromptEvalDuration: int64(time.Duration(promptTokens) * time.Millisecond),
		EvalCount:          evalTokens,
		EvalDuration:       int64(time.Duration(evalTokens) * 20 * time.Millisecond),
	}
}

func countWords(messages []ollamaclient.ChatMessage) int {
	total := 0
	for _, msg := range messages {
		total += len(strings.Fields(msg.Content))
	}
	return total
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
