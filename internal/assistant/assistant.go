// Package assistant defines the contract for a chat-completion backend.
//
// The chat service builds a conversation (persona + history + new message)
// and hands it to a Completer. The only production implementation talks to
// Groq's OpenAI-compatible API (assistant/groq); tests use fakes.
package assistant

import (
	"context"
	"errors"
	"time"
)

// Conversation roles. Callers may only send user and assistant turns; the
// system role is reserved for the persona prompt.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrNotConfigured is returned by a Completer that has no credentials.
var ErrNotConfigured = errors.New("assistant: no API key configured")

// Message is one turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a full conversation plus sampling settings.
// An empty Model means "use the backend's default".
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Completion is the assistant's reply.
type Completion struct {
	Content  string
	Model    string
	Duration time.Duration
}

// Completer produces the next assistant turn for a conversation.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
