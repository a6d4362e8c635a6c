package groq

import (
	"time"
)

// Config holds the configuration for the Groq client.
type Config struct {
	// APIKey is sent as a bearer token. Empty disables the client: every
	// call fails fast with assistant.ErrNotConfigured.
	APIKey string
	// BaseURL is the OpenAI-compatible API root, without a trailing slash.
	BaseURL string
	// Model is used when a request doesn't name one.
	Model string
	// Timeout bounds a whole completion call, including reading the body.
	Timeout time.Duration
}

// DefaultConfig targets Groq's hosted API.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.groq.com/openai/v1",
		Model:   "llama-3.3-70b-versatile",
		// Large models can take a while on long conversations; the HTTP
		// server's write timeout is set above this.
		Timeout: 45 * time.Second,
	}
}
