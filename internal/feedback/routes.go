package feedback

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/twinchat/twinchat/internal/analytics"
)

type submitRequest struct {
	ConversationID    string `json:"conversation_id,omitempty"`
	UserMessage       string `json:"user_message"`
	AssistantResponse string `json:"assistant_response,omitempty"`
	FeedbackType      Type   `json:"feedback_type"`
	Rating            string `json:"rating,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

type submitResponse struct {
	Success    bool   `json:"success"`
	FeedbackID string `json:"feedback_id"`
}

func (req *submitRequest) validate() string {
	if req.UserMessage == "" || len(req.UserMessage) > 2000 {
		return "user_message must be 1-2000 characters"
	}
	if len(req.AssistantResponse) > 5000 {
		return "assistant_response exceeds 5000 characters"
	}
	if !ValidType(req.FeedbackType) {
		return "invalid feedback_type"
	}
	if req.Rating != "" && req.Rating != "positive" && req.Rating != "negative" {
		return "rating must be positive or negative"
	}
	if len(req.Notes) > 1000 {
		return "notes exceeds 1000 characters"
	}
	return ""
}

// RegisterRoutes mounts feedback endpoints under /api/feedback. Every
// submission is mirrored as an analytics event.
func RegisterRoutes(r chi.Router, store *Store, events *analytics.Store) {
	r.Post("/api/feedback", handleSubmit(store, events))
}

func handleSubmit(store *Store, events *analytics.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if msg := req.validate(); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		id, err := store.Log(r.Context(), Entry{
			ConversationID:    req.ConversationID,
			UserMessage:       req.UserMessage,
			AssistantResponse: req.AssistantResponse,
			Type:              req.FeedbackType,
			Rating:            req.Rating,
			Notes:             req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		rating := req.Rating
		if rating == "" {
			rating = "none"
		}
		_, err = events.Track(r.Context(), analytics.Event{
			Type:      analytics.EventFeedback,
			SessionID: req.ConversationID,
			Payload:   map[string]any{"type": string(req.FeedbackType), "rating": rating},
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(submitResponse{Success: true, FeedbackID: id})
	}
}
