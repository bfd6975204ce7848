package ollamaclient

import (
	"sync"

	"github.com/google/uuid"
)

// HistoryStore records per-conversation turns for history-aware calls.
//
// Conversations are keyed by an opaque, caller-chosen identifier. A stored
// sequence grows only through Append and shrinks only through RollbackLast,
// which removes exactly the most recent turn.
//
// The in-memory implementation never returns errors; the error returns exist
// so persistent implementations (see the sqlitehistory package) can surface
// storage failures.
type HistoryStore interface {
	// Append pushes a turn to the end of the conversation, creating the
	// conversation if absent.
	Append(id string, msg ChatMessage) error

	// RollbackLast removes the most recent turn of the conversation.
	// A missing or empty conversation is a no-op, not an error.
	RollbackLast(id string) error

	// Snapshot returns the conversation's turns in order, or an empty slice
	// if absent. The returned slice is an independent copy; mutating it does
	// not affect stored state.
	Snapshot(id string) ([]ChatMessage, error)

	// Clear removes all turns stored for the conversation.
	Clear(id string) error

	// Reset removes every stored conversation.
	Reset() error
}

// NewConversationID returns a fresh, unique conversation identifier.
// Any string works as an identifier; this is a convenience for callers that
// do not have a natural key.
func NewConversationID() string {
	return uuid.NewString()
}

// MemoryHistory is a HistoryStore held in process memory. Conversations live
// as long as the store; nothing survives a restart.
//
// MemoryHistory is safe for concurrent use. Its methods always return a nil
// error.
type MemoryHistory struct {
	mu            sync.RWMutex
	conversations map[string][]ChatMessage
}

// NewMemoryHistory creates an empty in-memory history store.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{
		conversations: make(map[string][]ChatMessage),
	}
}

// Append pushes a turn to the end of the conversation.
func (h *MemoryHistory) Append(id string, msg ChatMessage) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conversations[id] = append(h.conversations[id], msg)
	return nil
}

// RollbackLast removes the most recent turn of the conversation, if any.
func (h *MemoryHistory) RollbackLast(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := h.conversations[id]
	if len(msgs) == 0 {
		return nil
	}
	h.conversations[id] = msgs[:len(msgs)-1]
	return nil
}

// Snapshot returns a copy of the conversation's turns in order.
func (h *MemoryHistory) Snapshot(id string) ([]ChatMessage, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	msgs := h.conversations[id]
	out := make([]ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Clear removes all turns stored for the conversation.
func (h *MemoryHistory) Clear(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conversations, id)
	return nil
}

// Reset removes every stored conversation.
func (h *MemoryHistory) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conversations = make(map[string][]ChatMessage)
	return nil
}
