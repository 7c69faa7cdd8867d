// Package llm generates structured work-log entries through language-model
// providers and scores the result for trustworthiness.
package llm

import (
	"context"
	"fmt"

	"github.com/nareshroyalc/Docify/pkg/configuration"
	"github.com/nareshroyalc/Docify/pkg/prompts"
	"github.com/nareshroyalc/Docify/pkg/worklog"
)

// Provider turns a chat conversation into raw model output.
type Provider interface {
	// Name identifies the provider for logging and key lookup.
	Name() string
	// Chat sends the messages and returns the model's text response.
	Chat(ctx context.Context, messages []prompts.Message) (string, error)
}

// NewProvider builds the provider selected by the configuration.
func NewProvider(cfg *configuration.Config) (Provider, error) {
	switch cfg.Provider {
	case configuration.ProviderGemini:
		return NewGeminiProvider(cfg.GeminiModel, cfg.APITimeout()), nil
	case configuration.ProviderOllama:
		return NewOllamaProvider(cfg.OllamaModel, cfg.APITimeout()), nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// Request is one documentation request as entered by the user.
type Request struct {
	Topic      string
	Details    string
	Challenges string
	Priority   worklog.Priority
}

// Result is a generated entry together with its validation metrics and the
// wall-clock timestamp of generation.
type Result struct {
	Entry     *worklog.StructuredEntry
	Metrics   *worklog.GenerationMetrics
	Timestamp string
}
