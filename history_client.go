package ollamaclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// HistoryClient is a history-aware variant of Client. It composes a stateless
// Client with a HistoryStore so callers send one new turn per call instead of
// resending the whole conversation.
//
// Calls on the same conversation identifier are serialized internally; two
// concurrent ChatWithHistory calls for the same identifier cannot interleave
// their history mutations. Calls on distinct identifiers proceed in parallel.
type HistoryClient struct {
	client *Client
	store  HistoryStore

	mu    sync.Mutex
	locks map[string]*convLock
}

// convLock is a reference-counted per-conversation mutex. Its map entry is
// removed once no call holds or waits on it, so churning through many
// conversation ids does not accumulate entries.
type convLock struct {
	mu   sync.Mutex
	refs int
}

// NewHistoryClient wraps a client with conversation history tracking.
// A nil store selects a fresh in-memory store.
func NewHistoryClient(client *Client, store HistoryStore) *HistoryClient {
	if store == nil {
		store = NewMemoryHistory()
	}
	return &HistoryClient{
		client: client,
		store:  store,
		locks:  make(map[string]*convLock),
	}
}

// Client returns the underlying stateless client.
func (h *HistoryClient) Client() *Client {
	return h.client
}

// ChatWithHistory sends a chat completion for the given conversation.
//
// The request carries at most one new turn in Messages: the wire payload is
// the stored history plus that turn, so prior turns never need resending.
// An empty Messages slice is allowed and sends the stored history alone.
// More than one message fails with ErrTooManyMessages before anything is
// stored or sent.
//
// On success the new turn and the assistant's reply are recorded in the
// store, in that order. On any failure the store is left exactly as it was
// before the call: the new turn is appended before dispatch and rolled back
// if the call does not produce a usable assistant reply.
func (h *HistoryClient) ChatWithHistory(ctx context.Context, id string, req *ChatRequest) (*ChatResponse, error) {
	if len(req.Messages) > 1 {
		return nil, ErrTooManyMessages
	}

	unlock := h.lockConversation(id)
	defer unlock()

	stored, err := h.store.Snapshot(id)
	if err != nil {
		return nil, fmt.Errorf("ollamaclient: read history: %w", err)
	}

	wire := stored
	appended := false
	if len(req.Messages) == 1 {
		newTurn := req.Messages[0]
		wire = append(stored, newTurn)
		if err := h.store.Append(id, newTurn); err != nil {
			return nil, fmt.Errorf("ollamaclient: store user turn: %w", err)
		}
		appended = true
	}

	r := *req
	r.Messages = wire

	resp, err := h.client.Chat(ctx, &r)
	if err != nil {
		return nil, h.undo(id, appended, err)
	}
	if resp.Message == nil {
		return nil, h.undo(id, appended, &DecodeError{Err: ErrNoMessage})
	}

	if err := h.store.Append(id, *resp.Message); err != nil {
		// The call itself succeeded; hand the response back alongside the
		// storage failure so the caller can decide what to trust.
		return resp, fmt.Errorf("ollamaclient: store assistant turn: %w", err)
	}

	return resp, nil
}

// History returns a copy of the stored turns for the conversation.
func (h *HistoryClient) History(id string) ([]ChatMessage, error) {
	return h.store.Snapshot(id)
}

// ClearHistory removes all stored turns for the conversation.
func (h *HistoryClient) ClearHistory(id string) error {
	return h.store.Clear(id)
}

// ResetHistory removes every stored conversation.
func (h *HistoryClient) ResetHistory() error {
	return h.store.Reset()
}

// undo rolls back the optimistic user-turn append after a failed call, so a
// failed call leaves history as if it had never been attempted.
func (h *HistoryClient) undo(id string, appended bool, callErr error) error {
	if !appended {
		return callErr
	}
	if err := h.store.RollbackLast(id); err != nil {
		return errors.Join(callErr, fmt.Errorf("ollamaclient: rollback user turn: %w", err))
	}
	return callErr
}

// lockConversation takes the per-conversation mutex, creating it on first
// use, and returns the matching unlock. The unlock also drops the
// reference, deleting the map entry when it was the last holder.
func (h *HistoryClient) lockConversation(id string) func() {
	h.mu.Lock()
	lock, ok := h.locks[id]
	if !ok {
		lock = &convLock{}
		h.locks[id] = lock
	}
	lock.refs++
	h.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		h.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(h.locks, id)
		}
		h.mu.Unlock()
	}
}
