package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// thinkTagPattern matches <think>...</think> tags that may appear at the start of model responses.
var thinkTagPattern = regexp.MustCompile(`(?s)^[\s]*<think>.*?</think>[\s]*`)

// codeFencePattern matches a fenced code block with an optional language tag.
var codeFencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\n?(.*?)```")

// listMarkers are the characters stripped from the front of list-style lines
// in selection responses (bullets and ordinal prefixes like "1. ").
const listMarkers = "- •*1234567890. \t"

// ExtractJSON extracts JSON content from a model response that may contain
// <think> tags, markdown code blocks, or other formatting.
func ExtractJSON(response string) (string, error) {
	// Strip <think>...</think> tags from the start of the response
	cleaned := thinkTagPattern.ReplaceAllString(response, "")

	// Find the first occurrence of { or [ to determine JSON type
	objStart := strings.IndexByte(cleaned, '{')
	arrStart := strings.IndexByte(cleaned, '[')

	// Try whichever comes first (or the one that exists)
	if objStart >= 0 && (arrStart < 0 || objStart < arrStart) {
		if jsonStr, ok := extractBalancedJSON(cleaned, '{', '}'); ok {
			if json.Valid([]byte(jsonStr)) {
				return jsonStr, nil
			}
		}
	}

	if arrStart >= 0 {
		if jsonStr, ok := extractBalancedJSON(cleaned, '[', ']'); ok {
			if json.Valid([]byte(jsonStr)) {
				return jsonStr, nil
			}
		}
	}

	// Last resort: check if the entire cleaned response is valid JSON
	trimmed := strings.TrimSpace(cleaned)
	if json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	return "", fmt.Errorf("no valid JSON found in response")
}

// extractBalancedJSON finds the first balanced JSON structure starting with openChar.
// It handles nested structures by counting bracket depth.
func extractBalancedJSON(s string, openChar, closeChar byte) (string, bool) {
	start := strings.IndexByte(s, openChar)
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

		if c == openChar {
			depth++
		} else if c == closeChar {
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// ParseJSONResponse extracts JSON from a response and unmarshals it into the target.
func ParseJSONResponse[T any](response string) (T, error) {
	var result T

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return result, fmt.Errorf("unmarshal JSON: %w", err)
	}

	return result, nil
}

// ExtractSQL strips <think> tags and markdown code fences from a model
// response, returning the bare SQL text. Responses without fences are
// returned trimmed.
func ExtractSQL(response string) string {
	cleaned := thinkTagPattern.ReplaceAllString(response, "")
	cleaned = strings.TrimSpace(cleaned)

	if m := codeFencePattern.FindStringSubmatch(cleaned); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}

	// Unterminated fence: drop the opening line and any trailing backticks
	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.IndexByte(cleaned, '\n'); idx >= 0 {
			cleaned = cleaned[idx+1:]
		} else {
			cleaned = strings.TrimLeft(cleaned, "`")
			cleaned = strings.TrimSpace(cleaned)
			for _, lang := range []string{"sql", "SQL"} {
				cleaned = strings.TrimPrefix(cleaned, lang)
			}
		}
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}

	return strings.TrimSpace(cleaned)
}

// ParseNameList parses a model response expected to contain a list of names,
// one per line or comma-separated on a single line. List markers and ordinal
// prefixes are stripped. Returns nil when no names survive cleaning.
func ParseNameList(response string) []string {
	cleaned := ExtractSQL(response)
	if cleaned == "" {
		return nil
	}

	var rawItems []string
	if strings.ContainsRune(cleaned, '\n') {
		rawItems = strings.Split(cleaned, "\n")
	} else {
		rawItems = strings.Split(cleaned, ",")
	}

	var names []string
	for _, item := range rawItems {
		// A line may itself hold comma-separated names
		for _, part := range strings.Split(item, ",") {
			name := strings.TrimSpace(part)
			name = strings.TrimLeft(name, listMarkers)
			name = strings.Trim(name, "`\"'")
			name = strings.TrimSpace(name)
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
