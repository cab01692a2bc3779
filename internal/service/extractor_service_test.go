package service

import (
	"context"
	"strings"
	"testing"

	"ai-knowledgebase-be/internal/apperror"
	"ai-knowledgebase-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractorService_PlainTextSuccess(t *testing.T) {
	reply := strings.Repeat("Key topics from the document. ", 10)
	provider := &stubProvider{reply: reply}
	svc := NewExtractorService(provider, "test-model", nopLogger{})

	res, err := svc.Extract(context.Background(), "notes.txt", "text/plain", 100, []byte("hello world"))

	require.NoError(t, err)
	assert.Equal(t, reply, res.Text)
	assert.False(t, res.Degraded)
	assert.Empty(t, res.Warning)
	assert.Equal(t, 1, provider.calls)
}

func TestExtractorService_UnsupportedTypeRejected(t *testing.T) {
	provider := &stubProvider{reply: "should not be called"}
	svc := NewExtractorService(provider, "test-model", nopLogger{})

	_, err := svc.Extract(context.Background(), "malware.exe", "application/octet-stream", 100, []byte("MZ"))

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	// Validation failures must not trigger network calls.
	assert.Equal(t, 0, provider.calls)
}

func TestExtractorService_WordDocumentPlaceholder(t *testing.T) {
	reply := strings.Repeat("Summary of the Word document content. ", 5)
	provider := &stubProvider{reply: reply}
	svc := NewExtractorService(provider, "test-model", nopLogger{})

	res, err := svc.Extract(context.Background(), "report.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", 4096, []byte{0x50, 0x4b})

	require.NoError(t, err)
	assert.NotEmpty(t, res.Text)
}

func TestExtractorService_RemoteFailureFallsBack(t *testing.T) {
	provider := &stubProvider{err: &llm.RemoteError{StatusCode: 500, Body: "upstream down"}}
	svc := NewExtractorService(provider, "test-model", nopLogger{})

	content := []byte("the quick brown fox jumps over the lazy dog")
	res, err := svc.Extract(context.Background(), "notes.txt", "text/plain", int64(len(content)), content)

	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Contains(t, res.Text, "DOCUMENT: notes.txt")
	assert.Contains(t, res.Text, string(content))
	assert.Contains(t, res.Warning, "basic extraction")
}

func TestExtractorService_QuotaFailureWarning(t *testing.T) {
	provider := &stubProvider{err: &llm.RemoteError{StatusCode: 402, Body: "credits exhausted"}}
	svc := NewExtractorService(provider, "test-model", nopLogger{})

	res, err := svc.Extract(context.Background(), "notes.txt", "text/plain", 10, []byte("short text"))

	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Contains(t, res.Warning, "credits exhausted")
}

func TestExtractorService_DegenerateReplyFallsBack(t *testing.T) {
	provider := &stubProvider{reply: "ok"}
	svc := NewExtractorService(provider, "test-model", nopLogger{})

	res, err := svc.Extract(context.Background(), "notes.txt", "text/plain", 10, []byte("some text"))

	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Contains(t, res.Text, "EXTRACTED CONTENT")
}

func TestExtractorService_LongContentTruncated(t *testing.T) {
	reply := strings.Repeat("Condensed extraction of a long document. ", 5)
	provider := &stubProvider{reply: reply}
	svc := NewExtractorService(provider, "test-model", nopLogger{})

	long := []byte(strings.Repeat("z", 50000))
	res, err := svc.Extract(context.Background(), "big.txt", "text/plain", int64(len(long)), long)

	require.NoError(t, err)
	assert.NotEmpty(t, res.Text)
}
