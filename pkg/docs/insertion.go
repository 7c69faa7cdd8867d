package docs

// SafeInsertionIndex computes an insertion point that the Docs API accepts:
// the end of the document body minus the final structural newline, never
// below index 1.
func SafeInsertionIndex(doc *Document) int {
	content := doc.Body.Content
	if len(content) == 0 {
		return 1
	}

	last := content[len(content)-1]
	idx := last.EndIndex - 1
	if idx < 1 {
		return 1
	}
	return idx
}
