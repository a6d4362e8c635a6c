package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/wellness-tracker/internal/apperror"
	"github.com/sakif/wellness-tracker/internal/service"
)

// ChatHandler relays messages to the wellness companion.
type ChatHandler struct {
	chat   *service.ChatService
	logger *slog.Logger
}

func NewChatHandler(chat *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

// ChatResponse is the body of POST /api/chat, on success and on fallback.
type ChatResponse struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// HandleChat answers one user message.
//
// HTTP: POST /api/chat
// REQUEST BODY: {"message": "...", "history": [{"role": "user", "content": "..."}]}
//
// GRACEFUL DEGRADATION:
// When the model can't be reached the user still gets a supportive reply.
// The status is 500 with success=false and the error text, so the client
// can tell a fallback from a real answer.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var in service.ChatInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, h.logger, err)
		return
	}

	reply, err := h.chat.Reply(r.Context(), in)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, ChatResponse{Response: reply, Success: true})
	case errors.Is(err, apperror.ErrUpstream):
		writeJSON(w, http.StatusInternalServerError, ChatResponse{
			Response: service.FallbackReply,
			Success:  false,
			Error:    err.Error(),
		})
	default:
		writeError(w, h.logger, err)
	}
}
