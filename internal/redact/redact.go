// Package redact strips credentials from strings before they are logged or
// returned in error responses. Provider errors routinely echo the request
// back, so any API key a caller supplied can surface in an error message.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedKeyPlaceholder  = "[REDACTED_KEY]"
	RedactedAuthPlaceholder = "[REDACTED_AUTH]"
)

var (
	// Provider API keys passed inline ("api_key=...", "key: ...").
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Google API keys have a recognizable AIza prefix.
	googleKeyRegex = regexp.MustCompile(`AIza[A-Za-z0-9_\-]{20,}`)

	// Authorization headers echoed in HTTP error bodies.
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}`)
)

// String redacts credential material from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := apiKeyRegex.ReplaceAllString(input, "${1}${2}"+RedactedKeyPlaceholder)
	result = googleKeyRegex.ReplaceAllString(result, RedactedKeyPlaceholder)
	result = bearerRegex.ReplaceAllString(result, RedactedAuthPlaceholder)
	return result
}

// Error redacts credential material from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
