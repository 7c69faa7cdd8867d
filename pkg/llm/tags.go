package llm

import "strings"

const baseTag = "work-log"

// tagKeywords maps input keywords to the tags they imply.
var tagKeywords = []struct {
	keyword string
	tag     string
}{
	{"model", "machine-learning"},
	{"api", "api-development"},
	{"deploy", "deployment"},
	{"data", "data-engineering"},
	{"triton", "inference"},
	{"yolo", "object-detection"},
}

// ExtractTags derives up to three tags from the request text. The base tag
// is always first; keyword matches fill the remaining slots in map order.
func ExtractTags(topic, details string) []string {
	tags := []string{baseTag}
	text := strings.ToLower(topic + " " + details)

	for _, kw := range tagKeywords {
		if len(tags) >= 3 {
			break
		}
		if strings.Contains(text, kw.keyword) {
			tags = append(tags, kw.tag)
		}
	}
	return tags
}
