package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/wellness-tracker/internal/apperror"
	"github.com/sakif/wellness-tracker/internal/assistant"
	"github.com/sakif/wellness-tracker/internal/metrics"
)

// FallbackReply is shown to the user whenever the model can't be reached.
const FallbackReply = "I'm here to support you. Could you tell me more about what you're experiencing?"

// Sampling settings for every chat call.
const (
	chatTemperature = 0.8
	chatMaxTokens   = 1024
	chatTopP        = 0.9
)

// companionPrompt is the system message that sets the assistant's persona.
// The crisis wording is fixed and must reach the user verbatim.
const companionPrompt = `You are a Wellness Companion: an emotionally intelligent assistant for
supportive, human conversations about mental well-being.

TONE
Warm, calm and empathetic. Talk like a caring friend, not a clinician or a
script. Use natural language and contractions. Skip stock phrases such as
"I understand your concern"; prefer "That sounds really heavy..." or
"Yeah, that makes sense." Be supportive without being dramatic.

STYLE
Keep replies to 2-4 sentences. Listen before you advise. No bullet points
unless the user asks for them. Ask a natural follow-up question that moves
the conversation forward.

EMOTIONAL INTELLIGENCE
Acknowledge the feeling first and validate it without judgment. Reflect both
the emotion and its context. Match the user's state: grounding when they are
distressed, gentle when they are sad, relaxed when the chat is casual, and
encouraging when they sound hopeful.

PRESENCE
Where it fits, let them know you're with them: "I'm here with you.",
"You don't have to carry this alone.", "We'll figure this out together."

CRISIS (HIGHEST PRIORITY)
Only when the user clearly expresses suicidal intent, intent to self-harm, a
wish to die, or intent to harm others, reply once with exactly:
"I'm really concerned about you. You're not alone in this.
Please call 988 or text HOME to 741741 right now for immediate support."

BOUNDARIES
You are not a licensed therapist. Never diagnose or prescribe treatment.
Offer general emotional support and wellness guidance only.`

// ChatInput is the body of POST /api/chat.
type ChatInput struct {
	Message string              `json:"message"`
	History []assistant.Message `json:"history"`
}

// ChatService relays a conversation to the chat model with the companion
// persona in front of it. It keeps no state; the client resends history.
type ChatService struct {
	completer assistant.Completer
	timeout   time.Duration
	logger    *slog.Logger
}

// NewChatService creates a ChatService. timeout bounds each upstream call;
// zero means only the request context applies.
func NewChatService(completer assistant.Completer, timeout time.Duration, logger *slog.Logger) *ChatService {
	return &ChatService{completer: completer, timeout: timeout, logger: logger}
}

// Reply returns the assistant's answer to in.Message.
//
// Bad input is an apperror.ErrValidation. Every upstream problem (no key,
// timeout, HTTP error, empty answer) is an apperror.ErrUpstream; the handler
// shows FallbackReply for those.
func (s *ChatService) Reply(ctx context.Context, in ChatInput) (string, error) {
	if strings.TrimSpace(in.Message) == "" {
		return "", apperror.Required("message")
	}

	messages := make([]assistant.Message, 0, len(in.History)+2)
	messages = append(messages, assistant.Message{Role: assistant.RoleSystem, Content: companionPrompt})
	for i, turn := range in.History {
		if turn.Role != assistant.RoleUser && turn.Role != assistant.RoleAssistant {
			return "", apperror.ValidationFailed("history",
				fmt.Sprintf("history[%d].role must be %q or %q", i, assistant.RoleUser, assistant.RoleAssistant))
		}
		messages = append(messages, turn)
	}
	messages = append(messages, assistant.Message{Role: assistant.RoleUser, Content: in.Message})

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	completion, err := s.completer.Complete(ctx, assistant.CompletionRequest{
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
		TopP:        chatTopP,
	})
	if err == nil && strings.TrimSpace(completion.Content) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		metrics.ObserveChat(metrics.ChatFallback, start)
		s.logger.Error("chat completion failed",
			slog.Int("history", len(in.History)),
			slog.String("error", err.Error()),
		)
		return "", apperror.Upstream("chat completion failed", err)
	}

	metrics.ObserveChat(metrics.ChatSuccess, start)
	s.logger.Info("chat completion",
		slog.Int("history", len(in.History)),
		slog.Duration("duration", time.Since(start)),
	)
	return completion.Content, nil
}
