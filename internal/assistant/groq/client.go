// Package groq implements assistant.Completer against Groq's
// OpenAI-compatible chat completions endpoint.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/sakif/wellness-tracker/internal/assistant"
)

// maxErrorBody caps how much of a failed response is copied into the error.
const maxErrorBody = 2048

var _ assistant.Completer = (*Client)(nil)

// Client is safe for concurrent use; it shares one *http.Client.
type Client struct {
	http   *http.Client
	config Config
	logger *slog.Logger
}

// New creates a Groq client.
//
// The API key is attached by an oauth2 transport with a static token
// source, which sets "Authorization: Bearer <key>" on every request.
// With no key the client is still returned, but Complete fails immediately.
func New(cfg Config, logger *slog.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	var httpClient *http.Client
	if cfg.APIKey != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.Background(), src)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{http: httpClient, config: cfg, logger: logger}
}

// chatRequest and chatResponse mirror the OpenAI wire format; only the
// fields this service reads or sends are declared.
type chatRequest struct {
	Model       string              `json:"model"`
	Messages    []assistant.Message `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	TopP        float64             `json:"top_p"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message assistant.Message `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the conversation and returns the first choice.
//
// Any non-2xx status, an undecodable body, or an empty choice list is an
// error; the caller decides what the user sees.
func (c *Client) Complete(ctx context.Context, req assistant.CompletionRequest) (*assistant.Completion, error) {
	if c.config.APIKey == "" {
		return nil, assistant.ErrNotConfigured
	}

	model := req.Model
	if model == "" {
		model = c.config.Model
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		TopP:        req.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("groq: encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("groq: building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("groq: sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("groq: decoding response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("groq: response had no choices")
	}

	elapsed := time.Since(start)
	c.logger.Debug("groq completion",
		slog.String("model", decoded.Model),
		slog.Int("messages", len(req.Messages)),
		slog.Duration("duration", elapsed),
	)

	return &assistant.Completion{
		Content:  decoded.Choices[0].Message.Content,
		Model:    decoded.Model,
		Duration: elapsed,
	}, nil
}

// statusError turns a non-2xx response into an error, preferring the API's
// own message when the body has one.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var apiErr errorResponse
	if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("groq: status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}
	return fmt.Errorf("groq: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
