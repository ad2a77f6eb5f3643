package llm

import (
	"encoding/json"
	"strings"
)

// CleanJSONBlock strips markdown fences and any prose around the first JSON
// object or array in text. Text with no JSON value is returned trimmed.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// language tag on the fence line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			tag := text[:idx]
			if !strings.ContainsAny(tag, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if value := balancedJSON(text[start:]); value != "" {
		return value
	}
	return text
}

// balancedJSON returns the JSON object or array that opens at s[0], or ""
// when s does not start with one or it is never closed.
func balancedJSON(s string) string {
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

// DecodeJSON cleans a model response and unmarshals it into v
func DecodeJSON(text string, v any) error {
	cleaned := CleanJSONBlock(text)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &ParseError{Message: "response is not valid JSON", Response: text, Cause: err}
	}
	return nil
}
