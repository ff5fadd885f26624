package service

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/consultoriamelchior-max/nexus-processual/models"
)

// ReplySuggestion is the typed result of a suggest_reply action
type ReplySuggestion struct {
	State    string `json:"state"`
	Short    string `json:"short"`
	Standard string `json:"standard"`
}

// GeneratedMessage is a single generated client message with the model's
// self-assessment attached
type GeneratedMessage struct {
	Message      string   `json:"message"`
	ShortVariant string   `json:"short_variant"`
	Confidence   int      `json:"confidence"`
	ScamRisk     string   `json:"scam_risk"`
	ScamReasons  []string `json:"scam_reasons"`
}

// MessageList is the typed result of the message-generation actions
type MessageList struct {
	Messages []GeneratedMessage `json:"messages"`
}

var codeFencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// extractJSONObject pulls the first balanced JSON object out of free-form
// model output, tolerating fenced code blocks and surrounding prose.
// Returns "" when no valid object is present.
func extractJSONObject(content string) string {
	cleaned := content
	if m := codeFencePattern.FindStringSubmatch(content); m != nil {
		cleaned = m[1]
	}

	obj, ok := balancedObject(cleaned)
	if !ok || !json.Valid([]byte(obj)) {
		return ""
	}
	return obj
}

// balancedObject finds the first {...} substring with balanced braces,
// tracking string literals and escapes so braces inside values don't
// break the count.
func balancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// firstChars returns the first n characters (not bytes) of s
func firstChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// ParseReplySuggestion decodes a suggest_reply response. It never fails:
// when the model output carries no parseable JSON the raw text is degraded
// into a usable suggestion.
func ParseReplySuggestion(content string) (ReplySuggestion, bool) {
	if obj := extractJSONObject(content); obj != "" {
		var parsed ReplySuggestion
		if err := json.Unmarshal([]byte(obj), &parsed); err == nil {
			return parsed, true
		}
	}

	return ReplySuggestion{
		State:    "indefinido",
		Short:    firstChars(content, 100),
		Standard: content,
	}, false
}

// ParseMessageList decodes a message-generation response, degrading to a
// single medium-risk message built from the raw text on failure.
func ParseMessageList(content string) (MessageList, bool) {
	if obj := extractJSONObject(content); obj != "" {
		var parsed MessageList
		if err := json.Unmarshal([]byte(obj), &parsed); err == nil && len(parsed.Messages) > 0 {
			for i := range parsed.Messages {
				if parsed.Messages[i].ScamReasons == nil {
					parsed.Messages[i].ScamReasons = []string{}
				}
			}
			return parsed, true
		}
	}

	return MessageList{
		Messages: []GeneratedMessage{{
			Message:      content,
			ShortVariant: firstChars(content, 100),
			Confidence:   5,
			ScamRisk:     string(models.ScamRiskMedium),
			ScamReasons:  []string{},
		}},
	}, false
}

// ParseExtraction decodes a document-analysis response into the structured
// payload stored on the document. On failure the raw text becomes the
// summary so downstream storage always receives a usable shape.
func ParseExtraction(content string) (models.ExtractedData, bool) {
	if obj := extractJSONObject(content); obj != "" {
		var parsed models.ExtractedData
		if err := json.Unmarshal([]byte(obj), &parsed); err == nil {
			return parsed, true
		}
	}

	return models.ExtractedData{
		"summary":     content,
		"client_name": "",
		"defendant":   "",
	}, false
}
