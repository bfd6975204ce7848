package ollamaclient

import (
	"sync"
	"testing"
)

func TestMemoryHistory_AppendAndSnapshot(t *testing.T) {
	store := NewMemoryHistory()
	id := NewConversationID()

	mustAppend(t, store, id, UserMessage("first"))
	mustAppend(t, store, id, AssistantMessage("second"))

	got, err := store.Snapshot(id)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].Content != "first" || got[1].Content != "second" {
		t.Errorf("messages out of order: %+v", got)
	}
}

func TestMemoryHistory_SnapshotIsACopy(t *testing.T) {
	store := NewMemoryHistory()
	id := "conv"
	mustAppend(t, store, id, UserMessage("original"))

	snap, _ := store.Snapshot(id)
	snap[0].Content = "mutated"

	again, _ := store.Snapshot(id)
	if again[0].Content != "original" {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestMemoryHistory_RollbackLast(t *testing.T) {
	store := NewMemoryHistory()
	id := "conv"
	mustAppend(t, store, id, UserMessage("keep"))
	mustAppend(t, store, id, UserMessage("drop"))

	if err := store.RollbackLast(id); err != nil {
		t.Fatalf("RollbackLast() error = %v", err)
	}

	got, _ := store.Snapshot(id)
	if len(got) != 1 || got[0].Content != "keep" {
		t.Errorf("after rollback got %+v, want just the first message", got)
	}
}

func TestMemoryHistory_RollbackEmptyIsNoop(t *testing.T) {
	store := NewMemoryHistory()
	if err := store.RollbackLast("missing"); err != nil {
		t.Fatalf("RollbackLast() on empty conversation error = %v", err)
	}
}

func TestMemoryHistory_Clear(t *testing.T) {
	store := NewMemoryHistory()
	mustAppend(t, store, "a", UserMessage("x"))
	mustAppend(t, store, "b", UserMessage("y"))

	if err := store.Clear("a"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	got, _ := store.Snapshot("a")
	if len(got) != 0 {
		t.Errorf("cleared conversation still has %d messages", len(got))
	}
	other, _ := store.Snapshot("b")
	if len(other) != 1 {
		t.Error("Clear touched an unrelated conversation")
	}
}

func TestMemoryHistory_Reset(t *testing.T) {
	store := NewMemoryHistory()
	mustAppend(t, store, "a", UserMessage("x"))
	mustAppend(t, store, "b", UserMessage("y"))

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	for _, id := range []string{"a", "b"} {
		got, _ := store.Snapshot(id)
		if len(got) != 0 {
			t.Errorf("conversation %q survived reset with %d messages", id, len(got))
		}
	}
}

func TestMemoryHistory_ConversationsAreIsolated(t *testing.T) {
	store := NewMemoryHistory()
	mustAppend(t, store, "a", UserMessage("for a"))

	got, _ := store.Snapshot("b")
	if len(got) != 0 {
		t.Errorf("conversation b sees %d messages, want 0", len(got))
	}
}

func TestMemoryHistory_ConcurrentAppends(t *testing.T) {
	store := NewMemoryHistory()
	const writers = 16

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Append("shared", UserMessage("turn")); err != nil {
				t.Errorf("Append() error = %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := store.Snapshot("shared")
	if len(got) != writers {
		t.Errorf("got %d messages, want %d", len(got), writers)
	}
}

func TestNewConversationID_Unique(t *testing.T) {
	a, b := NewConversationID(), NewConversationID()
	if a == "" || a == b {
		t.Errorf("NewConversationID() = %q, %q; want distinct non-empty ids", a, b)
	}
}

func mustAppend(t *testing.T, store HistoryStore, id string, msg ChatMessage) {
	t.Helper()
	if err := store.Append(id, msg); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
}
