package worklog

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleTitleAndMetadata(t *testing.T) {
	entry := &StructuredEntry{
		Title:    "API optimization",
		Summary:  "Cut latency",
		Priority: PriorityMedium,
	}

	ops, err := Assemble(10, entry, "2024-01-01 00:00:00", nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(ops), 3)

	title, ok := ops[0].(InsertText)
	require.True(t, ok)
	assert.Equal(t, 10, title.At)
	assert.Equal(t, "📊 API optimization\n", title.Text)

	// Bold 18pt over the title text only, newline excluded.
	style, ok := ops[1].(SetStyle)
	require.True(t, ok)
	assert.Equal(t, 10, style.Start)
	assert.Equal(t, 10+utf8.RuneCountInString(title.Text)-1, style.End)
	assert.True(t, style.Bold)
	assert.EqualValues(t, 18, style.FontSizePT)

	meta, ok := ops[2].(InsertText)
	require.True(t, ok)
	assert.Equal(t, 10+utf8.RuneCountInString(title.Text), meta.At)
	assert.Equal(t, "📅 2024-01-01 00:00:00 | Priority: MEDIUM\n\n", meta.Text)
}

func TestAssembleTitleFallback(t *testing.T) {
	ops, err := Assemble(0, &StructuredEntry{Priority: PriorityLow}, "ts", nil)
	require.NoError(t, err)

	title := ops[0].(InsertText)
	assert.Equal(t, "📊 Work Log\n", title.Text)
}

func TestAssembleCursorMonotonicity(t *testing.T) {
	entry := &StructuredEntry{
		Title:           "t",
		Summary:         "s",
		TaskDescription: "d",
		Achievements:    []string{"a1", "a2"},
		Tags:            []string{"go"},
		Priority:        PriorityHigh,
	}
	metrics := &GenerationMetrics{ConfidenceScore: 0.9, GenerationTime: 1.25}

	const start = 5
	ops, err := Assemble(start, entry, "2024-06-01 09:00:00", metrics)
	require.NoError(t, err)

	inserted := 0
	for _, op := range ops {
		ins, ok := op.(InsertText)
		if !ok {
			continue
		}
		assert.Equal(t, start+inserted, ins.At, "insertions are contiguous from the start offset")
		inserted += utf8.RuneCountInString(ins.Text)
	}
	assert.Positive(t, inserted)
}

func TestAssembleStylesLandInsideInsertedText(t *testing.T) {
	entry := &StructuredEntry{
		Title:           "t",
		Summary:         "s",
		TaskDescription: "d",
		Achievements:    []string{"a"},
		Challenges:      []Challenge{{Issue: "i", Resolution: "r"}},
		NextSteps:       []string{"n"},
		Tags:            []string{"x"},
		Priority:        PriorityMedium,
	}
	metrics := &GenerationMetrics{ConfidenceScore: 0.75, GenerationTime: 0.5}

	ops, err := Assemble(100, entry, "ts", metrics)
	require.NoError(t, err)

	covered := 100
	for _, op := range ops {
		switch v := op.(type) {
		case InsertText:
			covered += utf8.RuneCountInString(v.Text)
		case SetStyle:
			assert.GreaterOrEqual(t, v.Start, 100)
			assert.Less(t, v.Start, v.End)
			assert.LessOrEqual(t, v.End, covered, "style must reference already inserted text")
		}
	}
}

func TestAssembleHeaderStylesMatchRenderedSpans(t *testing.T) {
	entry := &StructuredEntry{
		Title:           "Weekly log",
		Summary:         "Did things",
		TaskDescription: "More things",
		Priority:        PriorityMedium,
	}

	ops, err := Assemble(0, entry, "ts", nil)
	require.NoError(t, err)

	// Locate the content insertion (third insert) and its following styles.
	var contentAt int
	var content string
	var styles []SetStyle
	inserts := 0
	for _, op := range ops {
		switch v := op.(type) {
		case InsertText:
			inserts++
			if inserts == 3 {
				contentAt = v.At
				content = v.Text
			}
		case SetStyle:
			if inserts == 3 {
				styles = append(styles, v)
			}
		}
	}
	require.NotEmpty(t, content)

	rendered := Render(entry)
	require.Len(t, styles, len(rendered.Headers))
	for i, span := range rendered.Headers {
		assert.Equal(t, contentAt+span.Start, styles[i].Start)
		assert.Equal(t, contentAt+span.End, styles[i].End)
		assert.True(t, styles[i].Bold)
		assert.EqualValues(t, 12, styles[i].FontSizePT)
	}
}

func TestAssembleWithoutMetricsOmitsFooter(t *testing.T) {
	entry := &StructuredEntry{
		Summary:  "s",
		Tags:     []string{"a", "b"},
		Priority: PriorityLow,
	}

	ops, err := Assemble(5, entry, "2024-01-01 00:00:00", nil)
	require.NoError(t, err)

	for _, op := range ops {
		if ins, ok := op.(InsertText); ok {
			assert.NotContains(t, ins.Text, metricsLabel)
		}
	}
	// Exactly three insertions: title, metadata, content.
	count := 0
	for _, op := range ops {
		if _, ok := op.(InsertText); ok {
			count++
		}
	}
	assert.Equal(t, 3, count)
}

func TestAssembleMetricsFooter(t *testing.T) {
	entry := &StructuredEntry{Summary: "s", Priority: PriorityLow}
	metrics := &GenerationMetrics{ConfidenceScore: 0.9, GenerationTime: 2.5}

	ops, err := Assemble(0, entry, "ts", metrics)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(ops), 2)

	footer, ok := ops[len(ops)-2].(InsertText)
	require.True(t, ok)
	assert.Contains(t, footer.Text, "\nGENERATION METRICS\n")
	assert.Contains(t, footer.Text, "Correctness: 90%\n")
	assert.Contains(t, footer.Text, "Generation Time: 2.50s\n")
	assert.Contains(t, footer.Text, "Generated by Validated AI Documentation Assistant\n\n")

	style, ok := ops[len(ops)-1].(SetStyle)
	require.True(t, ok)
	labelStart := footer.At + utf8.RuneCountInString(footer.Text[:strings.Index(footer.Text, metricsLabel)])
	assert.Equal(t, labelStart, style.Start)
	assert.Equal(t, labelStart+len(metricsLabel), style.End)
	assert.True(t, style.Bold)
}

func TestAssembleRejectsBadInput(t *testing.T) {
	_, err := Assemble(-1, &StructuredEntry{}, "ts", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAssemblyInput)

	_, err = Assemble(0, nil, "ts", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAssemblyInput)
}
