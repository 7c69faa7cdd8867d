package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nareshroyalc/Docify/pkg/worklog"
)

// decodeEntry parses the model's text output into a structured entry.
// Models occasionally wrap the JSON in markdown fences despite instructions,
// so fences are stripped before decoding.
func decodeEntry(raw string) (*worklog.StructuredEntry, error) {
	text := stripFences(raw)
	var entry worklog.StructuredEntry
	if err := json.Unmarshal([]byte(text), &entry); err != nil {
		return nil, fmt.Errorf("could not parse model output as a work-log entry: %w", err)
	}
	return &entry, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language hint on the fence line.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
