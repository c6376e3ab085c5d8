// Package llm is the outbound client for the text-generation boundary.
//
// The client speaks the OpenAI-compatible chat-completions protocol used by
// OpenRouter, which fronts the Anthropic models the service defaults to.
// Each call is a single stateless request: no streaming, no retries, no
// conversation history. Failures surface as ErrUnavailable so the caller
// can translate them into its own report-unavailable condition.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/okian/gaffer/pkg/logger"
)

// Default client configuration constants.
const (
	defaultBaseURL     = "https://openrouter.ai/api/v1"
	defaultModel       = "anthropic/claude-3-haiku:beta"
	defaultTemperature = 0.6
	defaultMaxTokens   = 1024
	defaultTimeout     = 20 * time.Second
)

// Client requests a completion for a prompt.
type Client interface {
	// Complete sends one stateless completion request and returns the
	// assistant text verbatim.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// message is one turn in the chat payload.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest mirrors the chat-completions request schema.
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// completionResponse mirrors the chat-completions response schema.
type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// OpenRouterClient implements Client against an OpenAI-compatible endpoint.
type OpenRouterClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	logger      logger.Logger
}

// Option applies a configuration option to the OpenRouterClient.
type Option func(*OpenRouterClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *OpenRouterClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL points the client at a different completion endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *OpenRouterClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithAPIKey sets the bearer token for the endpoint.
func WithAPIKey(key string) Option {
	return func(c *OpenRouterClient) {
		c.apiKey = key
	}
}

// WithModel selects the text-generation model.
func WithModel(model string) Option {
	return func(c *OpenRouterClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(c *OpenRouterClient) {
		if temperature >= 0 {
			c.temperature = temperature
		}
	}
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(maxTokens int) Option {
	return func(c *OpenRouterClient) {
		if maxTokens > 0 {
			c.maxTokens = maxTokens
		}
	}
}

// WithTimeout bounds a single completion request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *OpenRouterClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *OpenRouterClient) {
		if log != nil {
			c.logger = log
		}
	}
}

// NewOpenRouterClient creates a client with configuration options.
func NewOpenRouterClient(opts ...Option) *OpenRouterClient {
	c := &OpenRouterClient{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		baseURL:     defaultBaseURL,
		model:       defaultModel,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("llm")
	}
	return c
}

// Complete sends one completion request. The assistant text is returned
// verbatim; every failure mode wraps ErrUnavailable.
func (c *OpenRouterClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	payload := completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %w", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if completion.Error != nil && completion.Error.Message != "" {
			msg = completion.Error.Message
		}
		c.logger.Warn(ctx, "completion request rejected",
			logger.Int("status", resp.StatusCode),
			logger.String("message", msg),
		)
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, msg)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUnavailable)
	}
	return completion.Choices[0].Message.Content, nil
}
