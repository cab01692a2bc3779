package textutil

import "strings"

// ContinuationMarker separates the kept excerpts of a truncated document.
const ContinuationMarker = "[... CONTENT CONTINUES ...]"

// StructuralTruncate bounds text to roughly maxLen characters while keeping
// the beginning, a window around the midpoint, and the end of the document.
// The three excerpts are joined with continuation markers so the downstream
// summarizer still sees how the document opens, develops and closes.
// Text within the budget is returned unchanged.
func StructuralTruncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}

	chunkSize := maxLen / 3
	half := chunkSize / 2
	mid := len(text) / 2

	beginning := text[:chunkSize]
	middle := text[mid-half : mid+half]
	end := text[len(text)-chunkSize:]

	var b strings.Builder
	b.WriteString(beginning)
	b.WriteString("\n\n" + ContinuationMarker + "\n\n")
	b.WriteString(middle)
	b.WriteString("\n\n" + ContinuationMarker + "\n\n")
	b.WriteString(end)
	return b.String()
}
