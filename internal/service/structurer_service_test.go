package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructurerService_ValidJSONReply(t *testing.T) {
	provider := &stubProvider{reply: `{"answer":"<strong>Paris</strong> is the capital.","confidence":0.92,"sources":[{"id":1,"document":"geo.txt","snippet":"Paris","page":1,"relevance":"high","type":"primary"}],"relatedTopics":[],"keyInsights":[{"title":"Capital","description":"Paris is the capital of France","icon":"Lightbulb"}],"actionItems":[],"tags":["geography"]}`}
	svc := NewStructurerService(provider, "test-model", nopLogger{})

	res := svc.Structure(context.Background(), "Paris is the capital.", "What is the capital?")

	require.NotNil(t, res)
	assert.Equal(t, "<strong>Paris</strong> is the capital.", res.Answer)
	assert.InDelta(t, 0.92, res.Confidence, 0.001)
	assert.Len(t, res.Sources, 1)
	assert.Len(t, res.KeyInsights, 1)
	assert.NotNil(t, res.RelatedTopics)
	assert.NotNil(t, res.ActionItems)
}

func TestStructurerService_JSONWrappedInFences(t *testing.T) {
	provider := &stubProvider{reply: "Here is the structured output:\n```json\n{\"answer\":\"ok\",\"confidence\":0.8,\"sources\":[],\"relatedTopics\":[],\"keyInsights\":[],\"actionItems\":[],\"tags\":[]}\n```\nHope that helps!"}
	svc := NewStructurerService(provider, "test-model", nopLogger{})

	res := svc.Structure(context.Background(), "raw", "q")

	assert.Equal(t, "ok", res.Answer)
	assert.InDelta(t, 0.8, res.Confidence, 0.001)
}

func TestStructurerService_MalformedJSONFallsBack(t *testing.T) {
	provider := &stubProvider{reply: "I could not produce JSON, sorry."}
	svc := NewStructurerService(provider, "test-model", nopLogger{})

	raw := "**Important** finding with *emphasis*\nnext line"
	res := svc.Structure(context.Background(), raw, "q")

	require.NotNil(t, res)
	assert.Contains(t, res.Answer, "<strong>Important</strong>")
	assert.Contains(t, res.Answer, "<em>emphasis</em>")
	assert.Contains(t, res.Answer, "<br>")
	assert.InDelta(t, 0.75, res.Confidence, 0.001)
	require.Len(t, res.Sources, 1)
	assert.Equal(t, "Knowledge Base", res.Sources[0].Document)
	assert.Empty(t, res.RelatedTopics)
	assert.Empty(t, res.Tags)
}

func TestStructurerService_RemoteFailureFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	svc := NewStructurerService(provider, "test-model", nopLogger{})

	res := svc.Structure(context.Background(), "raw answer text", "q")

	require.NotNil(t, res)
	assert.InDelta(t, 0.75, res.Confidence, 0.001)
	assert.NotNil(t, res.Sources)
	assert.NotNil(t, res.KeyInsights)
	assert.NotNil(t, res.ActionItems)
	assert.NotNil(t, res.RelatedTopics)
	assert.NotNil(t, res.Tags)
}

func TestStructurerService_FallbackSnippetBounded(t *testing.T) {
	provider := &stubProvider{err: errors.New("down")}
	svc := NewStructurerService(provider, "test-model", nopLogger{})

	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'a'
	}
	res := svc.Structure(context.Background(), string(long), "q")

	require.Len(t, res.Sources, 1)
	assert.LessOrEqual(t, len(res.Sources[0].Snippet), 203)
}

func TestStructurerService_FallbackSnippetRuneSafe(t *testing.T) {
	provider := &stubProvider{err: errors.New("down")}
	svc := NewStructurerService(provider, "test-model", nopLogger{})

	// 100 three-byte runes put the byte cutoff inside a character.
	res := svc.Structure(context.Background(), strings.Repeat("日", 100), "q")

	require.Len(t, res.Sources, 1)
	snippet := strings.TrimSuffix(res.Sources[0].Snippet, "...")
	assert.True(t, utf8.ValidString(snippet))
	assert.NotEmpty(t, snippet)
	assert.LessOrEqual(t, len(snippet), 200)
}

func TestExtractJSONFromText(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"bare object":    {`{"a":1}`, `{"a":1}`},
		"fenced":         {"```json\n{\"a\":1}\n```", `{"a":1}`},
		"wrapped":        {`Sure! {"a":1} There you go.`, `{"a":1}`},
		"no braces":      {"just text", "just text"},
		"nested objects": {`prefix {"a":{"b":2}} suffix`, `{"a":{"b":2}}`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSONFromText(tc.in))
		})
	}
}
