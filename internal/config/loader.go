package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if GAFFER_CONFIG is set
//  3. env (prefix GAFFER_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GAFFER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GAFFER_ADDR, GAFFER_LLM_API_KEY, ...
	// Map env keys like GAFFER_LLM_API_KEY -> llm_api_key (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("GAFFER_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gaffer_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot run with.
func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.ImageAPIURL == "":
		return fmt.Errorf("%w: image_api_url must not be empty", ErrInvalidConfig)
	case cfg.ImagePlaceholderURL == "":
		return fmt.Errorf("%w: image_placeholder_url must not be empty", ErrInvalidConfig)
	case cfg.LLMBaseURL == "":
		return fmt.Errorf("%w: llm_base_url must not be empty", ErrInvalidConfig)
	case cfg.LLMModel == "":
		return fmt.Errorf("%w: llm_model must not be empty", ErrInvalidConfig)
	case cfg.LLMTemperature < 0 || cfg.LLMTemperature > 2:
		return fmt.Errorf("%w: llm_temperature must be within [0,2]", ErrInvalidConfig)
	case cfg.MaxSessions < 1:
		return fmt.Errorf("%w: max_sessions must be positive", ErrInvalidConfig)
	}
	return nil
}
