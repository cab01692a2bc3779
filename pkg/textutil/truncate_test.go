package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuralTruncate_ShortTextUnchanged(t *testing.T) {
	text := "short document"
	assert.Equal(t, text, StructuralTruncate(text, 1500))
}

func TestStructuralTruncate_ExactBudgetUnchanged(t *testing.T) {
	text := strings.Repeat("a", 1500)
	assert.Equal(t, text, StructuralTruncate(text, 1500))
}

func TestStructuralTruncate_KeepsStartMiddleEnd(t *testing.T) {
	// Distinct regions so each excerpt is attributable.
	text := strings.Repeat("A", 2000) + strings.Repeat("M", 2000) + strings.Repeat("Z", 2000)

	out := StructuralTruncate(text, 1500)

	assert.True(t, strings.HasPrefix(out, "A"))
	assert.True(t, strings.HasSuffix(out, "Z"))
	assert.Contains(t, out, "M")
	assert.Equal(t, 2, strings.Count(out, ContinuationMarker))
}

func TestStructuralTruncate_BoundedLength(t *testing.T) {
	text := strings.Repeat("x", 100000)

	out := StructuralTruncate(text, 1500)

	markerOverhead := 2 * (len(ContinuationMarker) + 4)
	assert.LessOrEqual(t, len(out), 1500+markerOverhead)
	assert.Less(t, len(out), len(text))
}

func TestStructuralTruncate_ExcerptsAreDisjoint(t *testing.T) {
	// Number every position so overlap between excerpts would repeat content.
	var b strings.Builder
	for i := 0; i < 3000; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	text := b.String()

	out := StructuralTruncate(text, 1500)
	parts := strings.Split(out, "\n\n"+ContinuationMarker+"\n\n")

	assert.Len(t, parts, 3)
	assert.Equal(t, text[:500], parts[0])
	assert.Equal(t, text[len(text)-500:], parts[2])
}
