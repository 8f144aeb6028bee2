package groq

import (
	"log/slog"
	"net/http"
	"os"
)

// Config for the Groq chat/completions client.
type Config struct {
	APIKey      string  // if empty, falls back to env GROQ_API_KEY
	BaseURL     string  // default https://api.groq.com/openai/v1
	Model       string  // e.g., "openai/gpt-oss-120b"
	Temperature float32 // fixed at 0 for deterministic output
	MaxTokens   int     // response size bound
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient builds a Groq client. The HTTP client carries no timeout of its
// own; every call is bounded by the caller's context deadline.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "openai/gpt-oss-120b"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		log:        logger,
	}
}
