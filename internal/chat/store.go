package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/twinchat/twinchat/internal/db"
)

// Store persists conversations and their messages.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// EnsureConversation creates the conversation row if it does not exist and
// bumps updated_at when it does.
func (s *Store) EnsureConversation(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id) VALUES (?)
		ON CONFLICT(id) DO UPDATE SET updated_at = datetime('now')`, id)
	if err != nil {
		return fmt.Errorf("ensuring conversation: %w", err)
	}
	return nil
}

// AppendMessage stores one turn and returns its generated ID. ULIDs keep
// messages sortable by insertion order within a conversation.
func (s *Store) AppendMessage(ctx context.Context, conversationID, role, content string) (string, error) {
	id := ulid.Make().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, role, content) VALUES (?, ?, ?, ?)`,
		id, conversationID, role, content)
	if err != nil {
		return "", fmt.Errorf("appending message: %w", err)
	}
	return id, nil
}

// RecentHistory returns up to limit of the oldest stored turns for a
// conversation, in chronological order.
func (s *Store) RecentHistory(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY id
		LIMIT ?`, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var createdAt string
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			m.CreatedAt = t
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
