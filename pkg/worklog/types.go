// Package worklog renders structured work-log entries into positioned text
// and styling operations for a remote document sink.
package worklog

import (
	"fmt"
	"strings"
)

// Priority selects which sections render and how aggressively lists are
// truncated.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority normalizes a user-supplied priority string.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium, "":
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("unknown priority %q (expected low, medium or high)", s)
}

// TechnicalImplementation captures the optional technical detail block of an
// entry. All fields may be empty.
type TechnicalImplementation struct {
	Approach     string   `json:"approach,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	KeyPoints    []string `json:"key_points,omitempty"`
}

// Challenge is a single issue encountered during the work, with an optional
// resolution.
type Challenge struct {
	Issue      string `json:"issue"`
	Resolution string `json:"resolution,omitempty"`
}

// StructuredEntry is the validated content record produced by a provider.
// It is constructed once per documentation request and treated as immutable.
type StructuredEntry struct {
	Title                   string                   `json:"title"`
	Summary                 string                   `json:"summary"`
	TaskDescription         string                   `json:"task_description"`
	Achievements            []string                 `json:"achievements"`
	TechnicalImplementation *TechnicalImplementation `json:"technical_implementation,omitempty"`
	Challenges              []Challenge              `json:"challenges,omitempty"`
	NextSteps               []string                 `json:"next_steps,omitempty"`
	Tags                    []string                 `json:"tags,omitempty"`
	Priority                Priority                 `json:"priority"`
}

// GenerationMetrics describes how trustworthy a generated entry is.
type GenerationMetrics struct {
	InputTokens       int     `json:"input_tokens"`
	OutputTokens      int     `json:"output_tokens"`
	ExpansionRatio    float64 `json:"expansion_ratio"`
	HallucinationRisk string  `json:"hallucination_risk"`
	GenerationTime    float64 `json:"generation_time"`
	ConfidenceScore   float64 `json:"confidence_score"`
}

// HeaderSpan is the code-point range of a section label within a rendered
// blob. End-Start always equals the label length; leading newlines and emoji
// prefixes are outside the span.
type HeaderSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// RenderResult is one rendered text blob plus the header spans inside it,
// in document order.
type RenderResult struct {
	Text    string
	Headers []HeaderSpan
}
