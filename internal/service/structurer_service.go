package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/pkg/logger"
	"ai-knowledgebase-be/pkg/llm"
)

const structureSystemPrompt = `You are an AI response structurer. Take the raw response and structure it into a comprehensive, well-organized format.

IMPORTANT: The raw response may be unstructured text. Extract meaningful information and organize it properly.

Your main task is to:
1. Clean up and format the main answer with proper HTML formatting (use <strong>, <em>, <br>, <p> tags)
2. Extract or create meaningful structured data from the response
3. Make the response more readable and professional

Please structure responses into the following JSON format:
{
  "answer": "Clean, well-formatted main answer with HTML formatting like <strong>bold text</strong>, <em>emphasis</em>, and proper paragraphs. Use <br> for line breaks and structure the content professionally.",
  "confidence": 0.85,
  "sources": [
    {
      "id": 1,
      "document": "Document name (extract from raw response or use 'Knowledge Base')",
      "snippet": "Relevant excerpt from the raw response",
      "page": 1,
      "relevance": "high",
      "type": "primary"
    }
  ],
  "relatedTopics": [
    {
      "title": "Related Topic (infer from content)",
      "description": "Brief description of how this relates",
      "icon": "BookOpen"
    }
  ],
  "keyInsights": [
    {
      "title": "Key Insight (extract main points)",
      "description": "Important finding or conclusion from the response",
      "icon": "Lightbulb"
    }
  ],
  "actionItems": [
    {
      "title": "Suggested Action (what user should do next)",
      "description": "Actionable next step based on the response",
      "icon": "CheckCircle"
    }
  ],
  "tags": ["relevant", "keywords", "from", "response"]
}

FORMATTING INSTRUCTIONS:
- Format the answer with proper HTML tags for better readability
- Use <strong> for important terms and document titles
- Use <em> for emphasis
- Use <br> for line breaks where needed
- Structure content in logical paragraphs
- Extract meaningful insights and create actionable suggestions
- Use appropriate icons: BookOpen, FileText, Lightbulb, CheckCircle, Tag, Target, TrendingUp, Brain, Zap, Star, Search, Users, Calendar, Settings
- Always provide at least 1-2 items in each array
- Make the structured response more valuable than the raw response

Return only valid JSON.`

type IStructurerService interface {
	// Structure never fails: malformed model output degrades to a locally
	// built response.
	Structure(ctx context.Context, rawAnswer, userQuestion string) *entity.StructuredResponse
}

type structurerService struct {
	provider llm.LLMProvider
	model    string
	log      logger.ILogger
}

func NewStructurerService(provider llm.LLMProvider, model string, log logger.ILogger) IStructurerService {
	return &structurerService{
		provider: provider,
		model:    model,
		log:      log,
	}
}

func (s *structurerService) Structure(ctx context.Context, rawAnswer, userQuestion string) *entity.StructuredResponse {
	userPrompt := fmt.Sprintf(`USER QUESTION: "%s"

RAW RESPONSE: "%s"

Structure this response with proper HTML formatting:`, userQuestion, rawAnswer)

	reply, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: structureSystemPrompt},
		{Role: "user", Content: userPrompt},
	},
		llm.WithModel(s.model),
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(2000),
	)
	if err != nil {
		s.log.Warn("structurer", "Remote structuring failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackStructured(rawAnswer)
	}

	jsonText := extractJSONFromText(reply)

	var structured entity.StructuredResponse
	if err := json.Unmarshal([]byte(jsonText), &structured); err != nil {
		s.log.Warn("structurer", "Model returned malformed JSON, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackStructured(rawAnswer)
	}

	structured.Normalize()
	return &structured
}

var (
	jsonFenceRe = regexp.MustCompile("(?i)```json\\s*")
	fenceRe     = regexp.MustCompile("```\\s*")
	boldRe      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe    = regexp.MustCompile(`\*(.*?)\*`)
)

// extractJSONFromText pulls a JSON object out of a model reply that may wrap
// it in markdown fences or surrounding prose.
func extractJSONFromText(text string) string {
	clean := jsonFenceRe.ReplaceAllString(text, "")
	clean = fenceRe.ReplaceAllString(clean, "")

	first := strings.Index(clean, "{")
	last := strings.LastIndex(clean, "}")
	if first != -1 && last != -1 && last > first {
		return clean[first : last+1]
	}
	return strings.TrimSpace(clean)
}

// fallbackStructured converts the raw answer to HTML with markdown-like
// substitutions and wraps it in a single synthetic source.
func fallbackStructured(rawAnswer string) *entity.StructuredResponse {
	formatted := boldRe.ReplaceAllString(rawAnswer, "<strong>$1</strong>")
	formatted = italicRe.ReplaceAllString(formatted, "<em>$1</em>")
	formatted = strings.ReplaceAll(formatted, "\n\n", "<br><br>")
	formatted = strings.ReplaceAll(formatted, "\n", "<br>")

	snippet := rawAnswer
	if len(snippet) > 200 {
		cut := 200
		// Back up to a rune boundary so the cut never splits a character.
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut]
	}

	return &entity.StructuredResponse{
		Answer:     formatted,
		Confidence: 0.75,
		Sources: []entity.Source{
			{
				Id:        1,
				Document:  "Knowledge Base",
				Snippet:   snippet + "...",
				Page:      1,
				Relevance: "high",
				Type:      "primary",
			},
		},
		RelatedTopics: []entity.StructuredItem{},
		KeyInsights:   []entity.StructuredItem{},
		ActionItems:   []entity.StructuredItem{},
		Tags:          []string{},
	}
}
