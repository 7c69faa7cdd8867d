package worklog

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidAssemblyInput is returned when Assemble receives input it cannot
// build a consistent operation batch from. No partial batch is ever emitted.
var ErrInvalidAssemblyInput = errors.New("invalid assembly input")

// Operation is one step of the batch handed to the document sink. The sink
// applies operations in listed order as a single atomic unit.
type Operation interface {
	isOperation()
}

// InsertText inserts text at an absolute document offset.
type InsertText struct {
	At   int
	Text string
}

// SetStyle applies character styling over the absolute range [Start, End).
type SetStyle struct {
	Start      int
	End        int
	Bold       bool
	FontSizePT float64
}

func (InsertText) isOperation() {}
func (SetStyle) isOperation()   {}

const metricsLabel = "GENERATION METRICS"

// Styling constants for the destination document.
const (
	titleFontPT  = 18
	headerFontPT = 12
)

// Assemble builds the ordered operation batch for one entry. The cursor
// starts at startOffset and advances by the code-point length of every
// inserted chunk; each style range is derived from the cursor position at
// the time its text was inserted, so styles always land inside already
// inserted text.
func Assemble(startOffset int, entry *StructuredEntry, timestamp string, metrics *GenerationMetrics) ([]Operation, error) {
	if startOffset < 0 {
		return nil, fmt.Errorf("%w: start offset %d is negative", ErrInvalidAssemblyInput, startOffset)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: nil entry", ErrInvalidAssemblyInput)
	}

	var ops []Operation
	cursor := startOffset

	// Title line, bold 18pt over the text but not the trailing newline.
	title := fallback(entry.Title, "Work Log")
	titleText := "📊 " + title + "\n"
	ops = append(ops,
		InsertText{At: cursor, Text: titleText},
		SetStyle{Start: cursor, End: cursor + runeLen(titleText) - 1, Bold: true, FontSizePT: titleFontPT},
	)
	cursor += runeLen(titleText)

	// Metadata line, unstyled.
	metaText := "📅 " + timestamp + " | Priority: " + strings.ToUpper(string(entry.Priority)) + "\n\n"
	ops = append(ops, InsertText{At: cursor, Text: metaText})
	cursor += runeLen(metaText)

	// Main content: one insertion, then a style per header span.
	content := Render(entry)
	ops = append(ops, InsertText{At: cursor, Text: content.Text})
	for _, span := range content.Headers {
		ops = append(ops, SetStyle{
			Start:      cursor + span.Start,
			End:        cursor + span.End,
			Bold:       true,
			FontSizePT: headerFontPT,
		})
	}
	cursor += runeLen(content.Text)

	if metrics != nil {
		footer := metricsFooter(metrics)
		ops = append(ops, InsertText{At: cursor, Text: footer})
		// The label is generated two lines above, so the substring scan
		// cannot miss; convert the byte index to code points before offsetting.
		if idx := strings.Index(footer, metricsLabel); idx >= 0 {
			start := cursor + utf8.RuneCountInString(footer[:idx])
			ops = append(ops, SetStyle{
				Start:      start,
				End:        start + runeLen(metricsLabel),
				Bold:       true,
				FontSizePT: headerFontPT,
			})
		}
		cursor += runeLen(footer)
	}

	return ops, nil
}

func metricsFooter(m *GenerationMetrics) string {
	var sb strings.Builder
	sb.WriteString("\n" + metricsLabel + "\n")
	fmt.Fprintf(&sb, "Correctness: %.0f%%\n", m.ConfidenceScore*100)
	fmt.Fprintf(&sb, "Generation Time: %.2fs\n", m.GenerationTime)
	sb.WriteString("\nGenerated by Validated AI Documentation Assistant\n\n")
	return sb.String()
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
