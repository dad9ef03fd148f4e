// Package llm provides narration clients backed by hosted language-model APIs.
package llm

import (
	"context"
	"fmt"

	"github.com/harwellgs/pocketsage/internal/common"
)

// Client defines the interface for LLM providers.
type Client interface {
	Narrate(ctx context.Context, prompt string) (string, error)
}

// Config holds LLM provider configuration.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string // overrides the provider endpoint, used in tests
	Temperature float64
	MaxTokens   int
}

// Validate checks that the configuration names a usable provider.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("%w: llm provider is required", common.ErrMissingConfig)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: llm API key is required", common.ErrMissingConfig)
	}
	return nil
}
