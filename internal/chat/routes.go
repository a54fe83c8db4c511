package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/twinchat/twinchat/internal/feedback"
	"github.com/twinchat/twinchat/internal/llm"
	"github.com/twinchat/twinchat/internal/pipeline"
)

// maintenanceResponse is returned while the kill switch is off.
const maintenanceResponse = "Chat is temporarily unavailable. Please check back later!"

// Handler bundles everything the chat endpoints need.
type Handler struct {
	store    *Store
	feedback *feedback.Store
	pipe     *pipeline.Pipeline
	enabled  func() bool
	logger   *zap.Logger
}

// NewHandler creates a chat Handler. enabled is consulted per request so
// the kill switch can flip without a restart.
func NewHandler(store *Store, fb *feedback.Store, pipe *pipeline.Pipeline, enabled func() bool, logger *zap.Logger) *Handler {
	return &Handler{store: store, feedback: fb, pipe: pipe, enabled: enabled, logger: logger}
}

// RegisterRoutes mounts chat endpoints under /api/chat on the given router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/chat", h.handleChat)
	r.Get("/api/chat/ws", h.handleWebSocket)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.respond(r.Context(), &req)
	if err != nil {
		h.logger.Error("chat request failed", zap.Error(err))
		http.Error(w, "an error occurred while generating a response", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// respond runs the full chat flow for one message and is shared between the
// HTTP and WebSocket endpoints.
func (h *Handler) respond(ctx context.Context, req *Request) (*Response, error) {
	if !h.enabled() {
		return &Response{
			Response:       maintenanceResponse,
			ConversationID: req.ConversationID,
			Metadata:       map[string]any{"maintenance": true},
		}, nil
	}

	if err := h.store.EnsureConversation(ctx, req.ConversationID); err != nil {
		return nil, err
	}

	history, err := h.loadHistory(ctx, req)
	if err != nil {
		return nil, err
	}

	result := h.pipe.Generate(ctx, req.Message, history)

	if _, err := h.store.AppendMessage(ctx, req.ConversationID, "user", req.Message); err != nil {
		return nil, err
	}
	if _, err := h.store.AppendMessage(ctx, req.ConversationID, "assistant", result.Text); err != nil {
		return nil, err
	}

	// Hedging replies become feedback entries so the corpus gaps they
	// reveal can be filled later.
	if result.Uncertain {
		entry := feedback.Entry{
			ConversationID:    req.ConversationID,
			UserMessage:       req.Message,
			AssistantResponse: result.Text,
			Type:              feedback.TypeUnanswered,
			Notes:             "Auto-logged: Model expressed uncertainty",
		}
		if _, err := h.feedback.Log(ctx, entry); err != nil {
			h.logger.Warn("auto-logging uncertainty feedback failed", zap.Error(err))
		}
	}

	return &Response{
		Response:       result.Text,
		ConversationID: req.ConversationID,
		Metadata:       resultMetadata(result),
	}, nil
}

// loadHistory prefers client-supplied history and falls back to the stored
// conversation.
func (h *Handler) loadHistory(ctx context.Context, req *Request) ([]llm.Message, error) {
	if len(req.History) > 0 {
		history := make([]llm.Message, len(req.History))
		for i, m := range req.History {
			history[i] = llm.Message{Role: llm.Role(m.Role), Content: m.Content}
		}
		return history, nil
	}

	stored, err := h.store.RecentHistory(ctx, req.ConversationID, 20)
	if err != nil {
		return nil, err
	}
	history := make([]llm.Message, len(stored))
	for i, m := range stored {
		history[i] = llm.Message{Role: llm.Role(m.Role), Content: m.Content}
	}
	return history, nil
}

func resultMetadata(result *pipeline.Result) map[string]any {
	metadata := map[string]any{
		"blocked":              result.Blocked,
		"uncertainty_detected": result.Uncertain,
		"context_used":         result.ContextUsed,
	}
	if result.DeflectionReason != "" {
		metadata["deflection_reason"] = result.DeflectionReason
	}
	if result.Identity != nil {
		metadata["identity_detected"] = map[string]any{
			"name":         result.Identity.Name,
			"relationship": string(result.Identity.Person.Relationship),
		}
	}
	return metadata
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
