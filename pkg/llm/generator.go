package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/nareshroyalc/Docify/pkg/prompts"
	"github.com/nareshroyalc/Docify/pkg/utils"
	"github.com/nareshroyalc/Docify/pkg/worklog"
)

// Generator orchestrates one documentation generation: prompt building,
// the provider call, output parsing, tag extraction and validation scoring.
type Generator struct {
	provider Provider
	fullName string
	logger   *utils.Logger
}

// NewGenerator wires a generator around a provider.
func NewGenerator(provider Provider, fullName string, logger *utils.Logger) *Generator {
	return &Generator{
		provider: provider,
		fullName: fullName,
		logger:   logger,
	}
}

// ProviderName reports which provider backs this generator.
func (g *Generator) ProviderName() string {
	return g.provider.Name()
}

// Generate produces a validated entry for the request.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	priority := req.Priority
	if priority == "" {
		priority = worklog.PriorityMedium
	}

	inputTokens := EstimateTokens(req.Topic + " " + req.Details)
	g.logger.Logf("Generating documentation via %s: topic=%q priority=%s input_tokens=%.0f",
		g.provider.Name(), req.Topic, priority, inputTokens)

	messages := prompts.BuildMessages(req.Topic, req.Details, req.Challenges, g.fullName, priority)

	start := time.Now()
	raw, err := g.provider.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%s generation failed: %w", g.provider.Name(), err)
	}
	elapsed := time.Since(start).Seconds()

	entry, err := decodeEntry(raw)
	if err != nil {
		return nil, err
	}

	// The model does not get the last word on priority or tags.
	entry.Priority = priority
	entry.Tags = ExtractTags(req.Topic, req.Details)

	metrics := validateGeneration(inputTokens, entry, elapsed)
	if metrics.ConfidenceScore < 0.7 {
		g.logger.Logf("Low generation confidence: %.0f%% (risk=%s, ratio=%.2fx)",
			metrics.ConfidenceScore*100, metrics.HallucinationRisk, metrics.ExpansionRatio)
	}

	return &Result{
		Entry:     entry,
		Metrics:   metrics,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	}, nil
}
