// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load(ctx) layers defaults, optional YAML file and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxSessions bounds the number of concurrently held sessions.
	MaxSessions int `koanf:"max_sessions"`

	// ImageAPIURL is the MediaWiki API endpoint used for photo lookups.
	ImageAPIURL string `koanf:"image_api_url"`

	// ImagePlaceholderURL is returned whenever a lookup fails.
	ImagePlaceholderURL string `koanf:"image_placeholder_url"`

	// ImageTimeoutMS bounds a single image lookup.
	ImageTimeoutMS int `koanf:"image_timeout_ms"`

	// ImageCacheSize bounds the in-memory image URL cache.
	ImageCacheSize int `koanf:"image_cache_size"`

	// ResolverWorkerCount sets the number of image resolver workers.
	ResolverWorkerCount int `koanf:"resolver_worker_count"`

	// ResolveQueueSize bounds the in-memory resolve queue.
	ResolveQueueSize int `koanf:"resolve_queue_size"`

	// LLMBaseURL is the OpenAI-compatible endpoint for report generation.
	LLMBaseURL string `koanf:"llm_base_url"`

	// LLMAPIKey authenticates report requests. Usually set via env.
	LLMAPIKey string `koanf:"llm_api_key"`

	// LLMModel selects the text-generation model.
	LLMModel string `koanf:"llm_model"`

	// LLMTemperature controls sampling for report generation.
	LLMTemperature float64 `koanf:"llm_temperature"`

	// LLMTimeoutMS bounds a single report request.
	LLMTimeoutMS int `koanf:"llm_timeout_ms"`

	// LLMMaxTokens caps the report length.
	LLMMaxTokens int `koanf:"llm_max_tokens"`
}

// Default external endpoints, mirroring the service's original collaborators.
const (
	defaultImageAPIURL    = "https://en.wikipedia.org/w/api.php"
	defaultPlaceholderURL = "https://cdn-icons-png.flaticon.com/512/3673/3673323.png"
	defaultLLMBaseURL     = "https://openrouter.ai/api/v1"
	defaultLLMModel       = "anthropic/claude-3-haiku:beta"
)

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		MaxSessions:         1024,
		ImageAPIURL:         defaultImageAPIURL,
		ImagePlaceholderURL: defaultPlaceholderURL,
		ImageTimeoutMS:      5000,
		ImageCacheSize:      1024,
		ResolverWorkerCount: runtime.NumCPU(),
		ResolveQueueSize:    256,
		LLMBaseURL:          defaultLLMBaseURL,
		LLMModel:            defaultLLMModel,
		LLMTemperature:      0.6,
		LLMTimeoutMS:        20000,
		LLMMaxTokens:        1024,
	}
}
