package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-knowledgebase-be/internal/apperror"
	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/pkg/llm"
	"ai-knowledgebase-be/pkg/textutil"
)

// maxContentLength bounds the text sent to the extraction model. The hosted
// model has a tight token-per-minute limit, so the content is structurally
// truncated well below it before summarization.
const maxContentLength = 1500

// minUsableExtraction is the shortest model reply still treated as a real
// extraction. Anything shorter degrades to the locally assembled fallback.
const minUsableExtraction = 100

const extractSystemPrompt = `You are an expert document analyzer. Your task is to extract and organize the MOST IMPORTANT information from documents while preserving their meaning and context.

CRITICAL INSTRUCTIONS:
1. Identify and extract KEY TOPICS, main themes, and essential information
2. Preserve important data: numbers, dates, names, statistics, procedures
3. Maintain document structure and logical flow
4. Remove redundant or less critical content
5. Keep the core meaning and context intact
6. Organize information clearly and logically

Format your response as a well-structured summary that captures the document's essence while being concise.`

var allowedMediaTypes = map[string]bool{
	"text/plain": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/msword": true,
}

var allowedExtensions = map[string]bool{
	".txt":  true,
	".docx": true,
	".doc":  true,
}

// ExtractionResult is the outcome of one extraction. Text is always
// non-empty for a validly typed file; Degraded marks fallback text built
// without (or despite) the remote model.
type ExtractionResult struct {
	Text     string
	Degraded bool
	Warning  string
}

type IExtractorService interface {
	Extract(ctx context.Context, fileName, mediaType string, size int64, data []byte) (*ExtractionResult, error)
}

type extractorService struct {
	provider llm.LLMProvider
	model    string
	log      logger.ILogger
}

func NewExtractorService(provider llm.LLMProvider, model string, log logger.ILogger) IExtractorService {
	return &extractorService{
		provider: provider,
		model:    model,
		log:      log,
	}
}

// Extract turns an uploaded file into bounded summary text. Only the type
// gate is strict; every remote failure past it degrades to locally built
// fallback text instead of propagating.
func (s *extractorService) Extract(ctx context.Context, fileName, mediaType string, size int64, data []byte) (*ExtractionResult, error) {
	rawContent, err := s.rawText(fileName, mediaType, size, data)
	if err != nil {
		return nil, err
	}

	contentToProcess := textutil.StructuralTruncate(rawContent, maxContentLength)

	userPrompt := fmt.Sprintf(`Extract the most important information from this document while preserving its meaning:

File: %s
Type: %s
Size: %.2f MB

Content:
%s

Please provide a comprehensive but concise extraction that maintains the document's core meaning and important details.`,
		fileName, mediaType, float64(size)/1024/1024, contentToProcess)

	extracted, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: extractSystemPrompt},
		{Role: "user", Content: userPrompt},
	},
		llm.WithModel(s.model),
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(1200),
	)
	if err != nil {
		s.log.Warn("extractor", "Remote extraction failed, using fallback", map[string]interface{}{
			"file":  fileName,
			"error": err.Error(),
		})

		warning := "Document processed with basic extraction due to API limitations"
		var remoteErr *llm.RemoteError
		if errors.As(err, &remoteErr) {
			if kindErr := apperror.ClassifyRemote(remoteErr.StatusCode, remoteErr.Body); apperror.IsKind(kindErr, apperror.KindQuotaExceeded) {
				warning = "API credits exhausted, document processed with basic extraction"
			}
		}

		return &ExtractionResult{
			Text: fmt.Sprintf("DOCUMENT: %s\n\nCONTENT SUMMARY:\n%s\n\n[Document processed with basic extraction due to API limitations]",
				fileName, contentToProcess),
			Degraded: true,
			Warning:  warning,
		}, nil
	}

	if len(extracted) <= minUsableExtraction {
		return &ExtractionResult{
			Text: fmt.Sprintf("DOCUMENT: %s\n\nEXTRACTED CONTENT:\n%s\n\n[Processed with enhanced extraction]",
				fileName, contentToProcess),
			Degraded: true,
		}, nil
	}

	return &ExtractionResult{Text: extracted}, nil
}

func (s *extractorService) rawText(fileName, mediaType string, size int64, data []byte) (string, error) {
	loweredName := strings.ToLower(fileName)
	loweredType := strings.ToLower(mediaType)

	switch {
	case loweredType == "text/plain" || strings.HasSuffix(loweredName, ".txt"):
		return string(data), nil
	case allowedMediaTypes[loweredType] || hasAllowedExtension(loweredName):
		// Word documents are not parsed; a descriptive placeholder stands in
		// for their content.
		return fmt.Sprintf("DOCX Document: %s\n\nThis is a Microsoft Word document containing %d KB of data.",
			fileName, (size+1023)/1024), nil
	default:
		return "", apperror.Validation("Unsupported file type. Please upload DOCX, DOC, or TXT files.")
	}
}

func hasAllowedExtension(loweredName string) bool {
	idx := strings.LastIndex(loweredName, ".")
	if idx < 0 {
		return false
	}
	return allowedExtensions[loweredName[idx:]]
}
