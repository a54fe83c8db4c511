package chat

import (
	"errors"
	"fmt"
	"time"
)

// HistoryMessage is one prior turn supplied by the client.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the POST /api/chat body.
type Request struct {
	Message        string           `json:"message"`
	ConversationID string           `json:"conversation_id"`
	History        []HistoryMessage `json:"history,omitempty"`
}

// Response is the POST /api/chat reply.
type Response struct {
	Response       string         `json:"response"`
	ConversationID string         `json:"conversation_id"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Message is a stored conversation turn.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	maxMessageLen        = 2000
	maxConversationIDLen = 36
	maxHistoryItems      = 50
	maxHistoryContentLen = 5000
)

// Validate enforces the request limits before any work happens.
func (req *Request) Validate() error {
	if req.Message == "" {
		return errors.New("message is required")
	}
	if len(req.Message) > maxMessageLen {
		return fmt.Errorf("message exceeds %d characters", maxMessageLen)
	}
	if req.ConversationID == "" {
		return errors.New("conversation_id is required")
	}
	if len(req.ConversationID) > maxConversationIDLen {
		return fmt.Errorf("conversation_id exceeds %d characters", maxConversationIDLen)
	}
	if len(req.History) > maxHistoryItems {
		return fmt.Errorf("history exceeds %d messages", maxHistoryItems)
	}
	for _, m := range req.History {
		if m.Role != "user" && m.Role != "assistant" {
			return fmt.Errorf("invalid history role %q", m.Role)
		}
		if m.Content == "" || len(m.Content) > maxHistoryContentLen {
			return fmt.Errorf("history content must be 1-%d characters", maxHistoryContentLen)
		}
	}
	return nil
}
