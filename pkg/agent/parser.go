package agent

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedResponse is the structured form of a raw agent reply.
type ParsedResponse struct {
	Answer     string
	Sources    []ParsedSource
	Confidence float64
}

// ParsedSource is one citation line from the SOURCES section.
type ParsedSource struct {
	Id       int
	Document string
	Snippet  string
	Page     int
}

var (
	answerRe     = regexp.MustCompile(`(?is)ANSWER:\s*(.*?)(?:\n\nSOURCES:|$)`)
	sourcesRe    = regexp.MustCompile(`(?is)SOURCES:\s*(.*?)(?:\n\nCONFIDENCE:|$)`)
	confidenceRe = regexp.MustCompile(`(?i)CONFIDENCE:\s*(\d+)%`)
	sourceLineRe = regexp.MustCompile(`(?i)Document:\s*([^|]+)\s*\|\s*Content:\s*(.+)`)
)

// ParseResponse extracts the ANSWER, SOURCES and CONFIDENCE sections from a
// raw agent reply. Parsing is best-effort: a reply with no labeled sections
// is treated as a bare answer, malformed source lines are skipped, and a
// missing confidence defaults to 85%.
func ParseResponse(raw string) ParsedResponse {
	answer := raw
	if m := answerRe.FindStringSubmatch(raw); m != nil {
		answer = strings.TrimSpace(m[1])
	}

	sourcesText := ""
	if m := sourcesRe.FindStringSubmatch(raw); m != nil {
		sourcesText = strings.TrimSpace(m[1])
	}

	confidence := 85
	if m := confidenceRe.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			confidence = v
		}
	}

	sources := []ParsedSource{}
	if sourcesText != "" {
		index := 0
		for _, line := range strings.Split(sourcesText, "\n") {
			if !strings.HasPrefix(strings.TrimSpace(line), "-") {
				continue
			}
			index++
			m := sourceLineRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			sources = append(sources, ParsedSource{
				Id:       index,
				Document: strings.TrimSpace(m[1]),
				Snippet:  strings.TrimSpace(m[2]),
				Page:     1,
			})
		}
	}

	return ParsedResponse{
		Answer:     answer,
		Sources:    sources,
		Confidence: float64(confidence) / 100,
	}
}
