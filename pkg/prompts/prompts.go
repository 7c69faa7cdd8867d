// Package prompts builds the per-priority chat messages sent to providers.
package prompts

import (
	"fmt"
	"strings"

	"github.com/nareshroyalc/Docify/pkg/worklog"
)

// Message represents a single message in a chat-like conversation with the LLM.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FormatInstructions describes the JSON record providers must return. The
// field set mirrors worklog.StructuredEntry.
func FormatInstructions() string {
	return `Respond with a single JSON object and nothing else. Schema:
{
  "title": "short entry title",
  "summary": "up to 4 lines, comprehensive overview",
  "task_description": "from user input only",
  "achievements": ["factual item", "..."],
  "technical_implementation": {
    "approach": "only if explicitly mentioned",
    "technologies": ["only from user input"],
    "key_points": ["max 3 points"]
  },
  "challenges": [{"issue": "actual issue mentioned", "resolution": "only if resolved"}],
  "next_steps": ["max 2"],
  "tags": []
}
Omit optional fields rather than inventing content. Do not wrap the JSON in markdown fences.`
}

// SystemPrompt returns the priority-specific system message. The detail
// rules tighten as priority drops to keep generation close to the input.
func SystemPrompt(priority worklog.Priority, fullName string) string {
	if fullName == "" {
		fullName = "the author"
	}
	switch priority {
	case worklog.PriorityLow:
		return fmt.Sprintf(`You are a minimal documentation assistant for %s.
Generate BRIEF work logs. Use ONLY information from user input.
- Summary: Up to 4 lines
- Achievements: 1-2 items max
- Challenges: Only if explicitly mentioned or user-provided
- NO technical details unless provided
%s`, fullName, FormatInstructions())
	case worklog.PriorityHigh:
		return fmt.Sprintf(`You are a detailed documentation assistant for %s.
Generate comprehensive logs but stay factual.
- Summary: Up to 4 lines with detailed overview
- Achievements: Up to 3 items
- Include technical details if provided
- Challenges: Expand on user-provided challenges with context
%s`, fullName, FormatInstructions())
	default:
		return fmt.Sprintf(`You are a documentation assistant for %s.
Generate standard work logs. Stay close to user input.
- Summary: Up to 4 lines describing work and progress
- Achievements: 2-3 items from actual work
- Challenges: Include user-provided challenges or those mentioned
- Technical details: Only what user provided
%s`, fullName, FormatInstructions())
	}
}

// UserPrompt builds the human message for one documentation request.
func UserPrompt(topic, details, challenges string, priority worklog.Priority) string {
	if details == "" {
		details = "Not provided"
	}
	if challenges == "" {
		challenges = "No challenges mentioned"
	}
	return fmt.Sprintf("Task: %s\nDetails: %s\nChallenges: %s\nPriority: %s",
		topic, details, challenges, strings.ToUpper(string(priority)))
}

// BuildMessages assembles the full conversation for a generation request.
func BuildMessages(topic, details, challenges, fullName string, priority worklog.Priority) []Message {
	return []Message{
		{Role: "system", Content: SystemPrompt(priority, fullName)},
		{Role: "user", Content: UserPrompt(topic, details, challenges, priority)},
	}
}
