package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type trackRequest struct {
	EventType EventType      `json:"event_type"`
	SessionID string         `json:"session_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type trackResponse struct {
	Success bool `json:"success"`
}

// RegisterRoutes mounts analytics endpoints under /api/analytics.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Post("/api/analytics", handleTrack(store))
}

func handleTrack(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req trackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if !ValidEventType(req.EventType) {
			http.Error(w, "invalid event_type", http.StatusBadRequest)
			return
		}
		if len(req.SessionID) > 36 {
			http.Error(w, "session_id exceeds 36 characters", http.StatusBadRequest)
			return
		}

		_, err := store.Track(r.Context(), Event{
			Type:      req.EventType,
			SessionID: req.SessionID,
			Payload:   req.Metadata,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(trackResponse{Success: true})
	}
}
