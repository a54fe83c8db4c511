// Package feedback stores visitor reactions and auto-logged gaps so the
// corpus can be improved over time.
package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/twinchat/twinchat/internal/db"
)

// Type classifies a feedback entry.
type Type string

const (
	TypeUnanswered    Type = "unanswered"
	TypeInappropriate Type = "inappropriate"
	TypeInaccurate    Type = "inaccurate"
	TypeHelpful       Type = "helpful"
	TypeUnhelpful     Type = "unhelpful"
	TypeOther         Type = "other"
)

// ValidType reports whether t is one of the known feedback types.
func ValidType(t Type) bool {
	switch t {
	case TypeUnanswered, TypeInappropriate, TypeInaccurate, TypeHelpful, TypeUnhelpful, TypeOther:
		return true
	}
	return false
}

// Entry is one feedback record.
type Entry struct {
	ID                string    `json:"id"`
	ConversationID    string    `json:"conversation_id,omitempty"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response,omitempty"`
	Type              Type      `json:"feedback_type"`
	Rating            string    `json:"rating,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Store persists feedback entries.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new feedback entry and returns its generated ID.
func (s *Store) Log(ctx context.Context, entry Entry) (string, error) {
	if !ValidType(entry.Type) {
		return "", fmt.Errorf("invalid feedback type %q", entry.Type)
	}

	var conversationID, rating sql.NullString
	if entry.ConversationID != "" {
		conversationID = sql.NullString{String: entry.ConversationID, Valid: true}
	}
	if entry.Rating != "" {
		rating = sql.NullString{String: entry.Rating, Valid: true}
	}

	id := ulid.Make().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (id, conversation_id, user_message, assistant_response, feedback_type, rating, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, conversationID, entry.UserMessage, entry.AssistantResponse, string(entry.Type), rating, entry.Notes)
	if err != nil {
		return "", fmt.Errorf("logging feedback: %w", err)
	}
	return id, nil
}

// List returns all feedback entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, user_message, assistant_response, feedback_type, rating, notes, created_at
		FROM feedback ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var conversationID, rating sql.NullString
		var createdAt string
		if err := rows.Scan(&e.ID, &conversationID, &e.UserMessage, &e.AssistantResponse, (*string)(&e.Type), &rating, &e.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		e.ConversationID = conversationID.String
		e.Rating = rating.String
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
