// Package analytics records privacy-friendly usage events: visits,
// messages, and feedback submissions. No personal data is stored.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/twinchat/twinchat/internal/db"
)

// EventType classifies an analytics event.
type EventType string

const (
	EventVisit    EventType = "visit"
	EventMessage  EventType = "message"
	EventFeedback EventType = "feedback"
)

// Event is one recorded usage event.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"event_type"`
	SessionID string         `json:"session_id,omitempty"`
	Payload   map[string]any `json:"metadata,omitempty"`
}

// ValidEventType reports whether t is one of the known event types.
func ValidEventType(t EventType) bool {
	switch t {
	case EventVisit, EventMessage, EventFeedback:
		return true
	}
	return false
}

// Store persists analytics events.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Track inserts a new event and returns its generated ID.
func (s *Store) Track(ctx context.Context, event Event) (string, error) {
	if !ValidEventType(event.Type) {
		return "", fmt.Errorf("invalid event type %q", event.Type)
	}

	payload := "{}"
	if event.Payload != nil {
		raw, err := json.Marshal(event.Payload)
		if err != nil {
			return "", fmt.Errorf("marshalling payload: %w", err)
		}
		payload = string(raw)
	}

	id := ulid.Make().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analytics_events (id, event_type, session_id, payload) VALUES (?, ?, ?, ?)`,
		id, string(event.Type), event.SessionID, payload)
	if err != nil {
		return "", fmt.Errorf("tracking event: %w", err)
	}
	return id, nil
}

// CountByType returns how many events of each type have been recorded.
func (s *Store) CountByType(ctx context.Context) (map[EventType]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_type, COUNT(*) FROM analytics_events GROUP BY event_type`)
	if err != nil {
		return nil, fmt.Errorf("counting events: %w", err)
	}
	defer rows.Close()

	counts := make(map[EventType]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[EventType(t)] = n
	}
	return counts, rows.Err()
}
