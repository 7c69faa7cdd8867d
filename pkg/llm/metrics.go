package llm

import (
	"math"
	"strings"

	"github.com/nareshroyalc/Docify/pkg/worklog"
)

// EstimateTokens approximates the token count of a text as 1.3 tokens per
// whitespace-separated word.
func EstimateTokens(text string) float64 {
	return float64(len(strings.Fields(text))) * 1.3
}

// validateGeneration scores a generated entry by its expansion ratio: output
// that balloons far beyond the input is more likely to contain invented
// detail, so it gets a higher risk and a lower confidence.
func validateGeneration(inputTokens float64, entry *worklog.StructuredEntry, generationTime float64) *worklog.GenerationMetrics {
	serialized := renderForCount(entry)
	outputTokens := EstimateTokens(serialized)

	expansionRatio := outputTokens / math.Max(inputTokens, 1)

	var risk string
	var confidence float64
	switch {
	case expansionRatio > 5:
		risk = "high"
		confidence = 0.6
	case expansionRatio > 3:
		risk = "medium"
		confidence = 0.75
	default:
		risk = "low"
		confidence = 0.9
	}

	return &worklog.GenerationMetrics{
		InputTokens:       int(inputTokens),
		OutputTokens:      int(outputTokens),
		ExpansionRatio:    math.Round(expansionRatio*100) / 100,
		HallucinationRisk: risk,
		GenerationTime:    math.Round(generationTime*100) / 100,
		ConfidenceScore:   confidence,
	}
}

// renderForCount flattens an entry into the text the token estimate runs
// over. Field order is stable so repeated scoring is deterministic.
func renderForCount(entry *worklog.StructuredEntry) string {
	var parts []string
	parts = append(parts, entry.Title, entry.Summary, entry.TaskDescription)
	parts = append(parts, entry.Achievements...)
	if tech := entry.TechnicalImplementation; tech != nil {
		parts = append(parts, tech.Approach)
		parts = append(parts, tech.Technologies...)
		parts = append(parts, tech.KeyPoints...)
	}
	for _, ch := range entry.Challenges {
		parts = append(parts, ch.Issue, ch.Resolution)
	}
	parts = append(parts, entry.NextSteps...)
	parts = append(parts, entry.Tags...)
	return strings.Join(parts, " ")
}
