// Package sqlitehistory provides a HistoryStore backed by SQLite, so
// conversations survive process restarts. It uses the pure Go driver and
// needs no cgo.
//
// The zero-dependency alternative is ollamaclient.MemoryHistory; both
// satisfy ollamaclient.HistoryStore and are interchangeable at
// NewHistoryClient time.
package sqlitehistory

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	ollamaclient "github.com/seawardlabs/ollamaclient-go"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	conversation_id TEXT    NOT NULL,
	seq             INTEGER NOT NULL,
	role            TEXT    NOT NULL,
	content         TEXT    NOT NULL,
	images          TEXT,
	PRIMARY KEY (conversation_id, seq)
);
`

// Store persists conversation turns in a SQLite database.
// Store is safe for concurrent use; the per-conversation ordering guarantees
// of history-aware calls come from the HistoryClient, not from the store.
type Store struct {
	db *sql.DB
}

// Ensure Store satisfies the history interface.
var _ ollamaclient.HistoryStore = (*Store)(nil)

// Open creates or opens the database at path and prepares the schema.
// Use ":memory:" for a throwaway in-process database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitehistory: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitehistory: prepare schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append pushes a turn to the end of the conversation.
func (s *Store) Append(id string, msg ollamaclient.ChatMessage) error {
	var images any
	if len(msg.Images) > 0 {
		encoded, err := json.Marshal(msg.Images)
		if err != nil {
			return fmt.Errorf("sqlitehistory: encode images: %w", err)
		}
		images = string(encoded)
	}

	// Computing the next sequence number and inserting must be atomic, or
	// two writers on the same conversation could collide on seq.
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlitehistory: begin append: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO messages (conversation_id, seq, role, content, images)
		 VALUES (?, (SELECT COALESCE(MAX(seq)+1, 0) FROM messages WHERE conversation_id = ?), ?, ?, ?)`,
		id, id, string(msg.Role), msg.Content, images,
	)
	if err != nil {
		return fmt.Errorf("sqlitehistory: append: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlitehistory: commit append: %w", err)
	}
	return nil
}

// RollbackLast removes the most recent turn of the conversation.
// A missing or empty conversation is a no-op.
func (s *Store) RollbackLast(id string) error {
	_, err := s.db.Exec(
		`DELETE FROM messages
		 WHERE conversation_id = ?
		   AND seq = (SELECT MAX(seq) FROM messages WHERE conversation_id = ?)`,
		id, id,
	)
	if err != nil {
		return fmt.Errorf("sqlitehistory: rollback: %w", err)
	}
	return nil
}

// Snapshot returns the conversation's turns in order.
func (s *Store) Snapshot(id string) ([]ollamaclient.ChatMessage, error) {
	rows, err := s.db.Query(
		`SELECT role, content, images FROM messages
		 WHERE conversation_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlitehistory: snapshot: %w", err)
	}
	defer rows.Close()

	var msgs []ollamaclient.ChatMessage
	for rows.Next() {
		var role, content string
		var images sql.NullString
		if err := rows.Scan(&role, &content, &images); err != nil {
			return nil, fmt.Errorf("sqlitehistory: scan turn: %w", err)
		}

		msg := ollamaclient.NewChatMessage(ollamaclient.MessageRole(role), content)
		if images.Valid && images.String != "" {
			var imgs []ollamaclient.Image
			if err := json.Unmarshal([]byte(images.String), &imgs); err != nil {
				return nil, fmt.Errorf("sqlitehistory: decode images: %w", err)
			}
			msg = msg.WithImages(imgs)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitehistory: snapshot: %w", err)
	}

	if msgs == nil {
		msgs = []ollamaclient.ChatMessage{}
	}
	return msgs, nil
}

// Clear removes all turns stored for the conversation.
func (s *Store) Clear(id string) error {
	if _, err := s.db.Exec(`DELETE FROM messages WHERE conversation_id = ?`, id); err != nil {
		return fmt.Errorf("sqlitehistory: clear: %w", err)
	}
	return nil
}

// Reset removes every stored conversation.
func (s *Store) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM messages`); err != nil {
		return fmt.Errorf("sqlitehistory: reset: %w", err)
	}
	return nil
}
