// Package logging provides helpers for scrubbing sensitive material out of
// log fields. Pasted connection configs and prompts routinely carry
// credentials, so everything user-supplied goes through here before logging.
package logging

import (
	"regexp"
)

const (
	// MaxPromptLogLength caps how much of a prompt is logged at debug level.
	MaxPromptLogLength = 200
	// RedactedText replaces sensitive values.
	RedactedText = "[REDACTED]"
)

var (
	// password=xxx, pwd=xxx, pass=xxx and the YAML/properties colon variants
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)\s*[=:]\s*[^;&\s,]+`)

	// api_key=xxx, apikey: xxx
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|apikey|secret)\s*[=:]\s*[A-Za-z0-9-_]{8,}`)

	// user:pass@host inside URL-style connection strings
	connStringPattern = regexp.MustCompile(`://[^:/\s]+:[^@\s]+@[^/\s]+`)
)

// SanitizeConfigText scrubs credentials from pasted configuration text so the
// raw paste can be logged for debugging.
func SanitizeConfigText(text string) string {
	if text == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(text, "${1}="+RedactedText)
	sanitized = apiKeyPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	sanitized = connStringPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)
	return sanitized
}

// SanitizeError scrubs an error message that may embed connection details.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeConfigText(err.Error())
}

// TruncateString truncates s to maxLen and appends an ellipsis if trimmed.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
