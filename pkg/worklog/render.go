package worklog

import (
	"strings"
	"unicode/utf8"
)

// Section labels. Spans cover exactly these strings in the rendered text.
const (
	labelSummary         = "SUMMARY"
	labelExecSummary     = "EXECUTIVE SUMMARY"
	labelCompletedTask   = "COMPLETED TASK"
	labelTaskDescription = "TASK DESCRIPTION"
	labelDetailedTask    = "DETAILED TASK DESCRIPTION"
	labelAchievements    = "ACHIEVEMENTS"
	labelKeyAchievements = "KEY ACHIEVEMENTS"
	labelTechnical       = "TECHNICAL IMPLEMENTATION"
	labelChallenges      = "CHALLENGES"
	labelChalSolutions   = "CHALLENGES & SOLUTIONS"
	labelNextSteps       = "NEXT STEPS"
	labelNextStepsRecs   = "NEXT STEPS & RECOMMENDATIONS"
	labelTags            = "TAGS"
)

type sectionKind int

const (
	sectionSummary sectionKind = iota
	sectionTask
	sectionAchievements
	sectionTechnical
	sectionChallenges
	sectionNextSteps
	sectionTags
)

// sectionDef describes one renderable section. The skip is the code-point
// offset of the label within the header chunk "\n"+prefix+label+"\n"; the
// legacy document format skips exactly 2 for emoji-prefixed headers even
// where the prefix occupies a different number of code points, and the
// destination formatting depends on those offsets, so skip is an explicit
// constant rather than derived from the prefix.
type sectionDef struct {
	kind    sectionKind
	label   string
	prefix  string
	skip    int
	present func(*StructuredEntry) bool // nil means always rendered
}

// tierSpec parametrizes the shared rendering loop per priority.
type tierSpec struct {
	sections        []sectionDef
	achievementCap  int // < 0 means unbounded
	challengeCap    int
	nextStepCap     int
	summaryFallback string
	taskFallback    string
	detailed        bool // HIGH-tier multi-line bodies for technical/challenge sections
}

func hasTask(e *StructuredEntry) bool         { return e.TaskDescription != "" }
func hasAchievements(e *StructuredEntry) bool { return len(e.Achievements) > 0 }
func hasChallenges(e *StructuredEntry) bool   { return len(e.Challenges) > 0 }
func hasNextSteps(e *StructuredEntry) bool    { return len(e.NextSteps) > 0 }
func hasTags(e *StructuredEntry) bool         { return len(e.Tags) > 0 }

func hasTechnicalContent(e *StructuredEntry) bool {
	t := e.TechnicalImplementation
	return t != nil && (len(t.Technologies) > 0 || len(t.KeyPoints) > 0)
}

func hasTechnical(e *StructuredEntry) bool {
	return e.TechnicalImplementation != nil
}

var tierSpecs = map[Priority]tierSpec{
	PriorityLow: {
		sections: []sectionDef{
			{kind: sectionSummary, label: labelSummary, skip: 1},
			{kind: sectionTask, label: labelCompletedTask, prefix: "✓ ", skip: 2, present: hasTask},
			{kind: sectionAchievements, label: labelAchievements, skip: 1, present: hasAchievements},
			{kind: sectionTags, label: labelTags, prefix: "🏷️ ", skip: 2, present: hasTags},
		},
		achievementCap:  2,
		summaryFallback: "No summary",
		taskFallback:    "No description",
	},
	PriorityMedium: {
		sections: []sectionDef{
			{kind: sectionSummary, label: labelSummary, skip: 1},
			{kind: sectionTask, label: labelTaskDescription, skip: 1},
			{kind: sectionAchievements, label: labelAchievements, skip: 1},
			{kind: sectionTechnical, label: labelTechnical, skip: 1, present: hasTechnicalContent},
			{kind: sectionChallenges, label: labelChallenges, skip: 1, present: hasChallenges},
			{kind: sectionNextSteps, label: labelNextSteps, skip: 1, present: hasNextSteps},
			{kind: sectionTags, label: labelTags, prefix: "🏷️ ", skip: 2, present: hasTags},
		},
		achievementCap:  3,
		challengeCap:    2,
		nextStepCap:     2,
		summaryFallback: "No summary provided",
		taskFallback:    "No description",
	},
	PriorityHigh: {
		sections: []sectionDef{
			{kind: sectionSummary, label: labelExecSummary, skip: 1},
			{kind: sectionTask, label: labelDetailedTask, skip: 1},
			{kind: sectionAchievements, label: labelKeyAchievements, skip: 1},
			{kind: sectionTechnical, label: labelTechnical, skip: 1, present: hasTechnical},
			{kind: sectionChallenges, label: labelChalSolutions, skip: 1, present: hasChallenges},
			{kind: sectionNextSteps, label: labelNextStepsRecs, skip: 1},
			{kind: sectionTags, label: labelTags, prefix: "🏷️ ", skip: 2, present: hasTags},
		},
		achievementCap:  -1,
		challengeCap:    -1,
		nextStepCap:     -1,
		summaryFallback: "No summary provided",
		taskFallback:    "No description",
		detailed:        true,
	},
}

// blobBuilder accumulates the rendered text and header spans in a single
// pass. Offsets are counted in code points, never bytes, because the emoji
// prefixes are multi-byte and the destination index space is code points.
type blobBuilder struct {
	sb    strings.Builder
	runes int
	spans []HeaderSpan
}

func (b *blobBuilder) write(s string) {
	b.sb.WriteString(s)
	b.runes += utf8.RuneCountInString(s)
}

// header appends "\n"+prefix+label+"\n" and records the label span at the
// given skip from the chunk start.
func (b *blobBuilder) header(s sectionDef) {
	start := b.runes + s.skip
	b.write("\n" + s.prefix + s.label + "\n")
	b.spans = append(b.spans, HeaderSpan{Start: start, End: start + utf8.RuneCountInString(s.label)})
}

func capped(items []string, limit int) []string {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func cappedChallenges(items []Challenge, limit int) []Challenge {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// Render produces the flat text blob and header spans for an entry. It never
// fails: missing mandatory fields render as fallback text, empty optional
// sections are omitted. Unknown priorities render as MEDIUM.
func Render(entry *StructuredEntry) RenderResult {
	if entry == nil {
		entry = &StructuredEntry{}
	}
	spec, ok := tierSpecs[entry.Priority]
	if !ok {
		spec = tierSpecs[PriorityMedium]
	}

	var b blobBuilder
	for _, s := range spec.sections {
		if s.present != nil && !s.present(entry) {
			continue
		}
		b.header(s)
		renderBody(&b, s.kind, entry, spec)
	}
	b.write("\n")

	return RenderResult{Text: b.sb.String(), Headers: b.spans}
}

func renderBody(b *blobBuilder, kind sectionKind, entry *StructuredEntry, spec tierSpec) {
	switch kind {
	case sectionSummary:
		b.write(fallback(entry.Summary, spec.summaryFallback) + "\n")

	case sectionTask:
		b.write(fallback(entry.TaskDescription, spec.taskFallback) + "\n")

	case sectionAchievements:
		for _, ach := range capped(entry.Achievements, spec.achievementCap) {
			b.write("  ✓ " + ach + "\n")
		}

	case sectionTechnical:
		renderTechnical(b, entry.TechnicalImplementation, spec.detailed)

	case sectionChallenges:
		renderChallenges(b, cappedChallenges(entry.Challenges, spec.challengeCap), spec.detailed)

	case sectionNextSteps:
		for _, step := range capped(entry.NextSteps, spec.nextStepCap) {
			b.write("  • " + step + "\n")
		}

	case sectionTags:
		b.write(strings.Join(entry.Tags, ", ") + "\n")
	}
}

func renderTechnical(b *blobBuilder, tech *TechnicalImplementation, detailed bool) {
	if tech == nil {
		return
	}
	if tech.Approach != "" {
		if detailed {
			b.write("Approach:\n  " + tech.Approach + "\n")
		} else {
			b.write("Approach: " + tech.Approach + "\n")
		}
	}
	if len(tech.Technologies) > 0 {
		b.write("Technologies: " + strings.Join(tech.Technologies, ", ") + "\n")
	}
	if detailed && len(tech.KeyPoints) > 0 {
		b.write("Key Points:\n")
	}
	for _, point := range tech.KeyPoints {
		b.write("  • " + point + "\n")
	}
}

func renderChallenges(b *blobBuilder, challenges []Challenge, detailed bool) {
	for _, ch := range challenges {
		issue := fallback(ch.Issue, "N/A")
		if detailed {
			b.write("Challenge:\n  " + issue + "\n")
			if ch.Resolution != "" {
				b.write("Solution:\n  " + ch.Resolution + "\n")
			}
			continue
		}
		b.write("Issue: " + issue + "\n")
		if ch.Resolution != "" {
			b.write("  ✓ Resolution: " + ch.Resolution + "\n")
		}
	}
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
