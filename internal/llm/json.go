package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// CleanJSONResponse extracts the first JSON object from an LLM response.
// It strips markdown code fences, drops text before the opening brace and
// after the matching closing brace, and removes trailing commas before
// closing braces/brackets.
func CleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response
	}

	end := matchingBrace(response, firstBrace)
	if end == -1 {
		lastBrace := strings.LastIndex(response, "}")
		if lastBrace <= firstBrace {
			return response
		}
		end = lastBrace
	}

	jsonPortion := response[firstBrace : end+1]
	jsonPortion = trailingComma.ReplaceAllString(jsonPortion, "$1")
	return strings.TrimSpace(jsonPortion)
}

// matchingBrace returns the index of the brace closing the one at start,
// ignoring braces inside string literals, or -1 when unbalanced.
func matchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// DecodeJSON cleans an LLM response and unmarshals it into v.
func DecodeJSON(response string, v any) error {
	clean := CleanJSONResponse(response)
	if clean == "" {
		return fmt.Errorf("empty response")
	}
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}
