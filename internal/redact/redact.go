// Package redact removes sensitive information from strings before they
// are logged or returned in error responses. Provider errors routinely
// embed API keys, bearer headers, and endpoint hosts; this package keeps
// them out of log output.
package redact

import "regexp"

// Redaction placeholders.
const (
	RedactedKeyPlaceholder  = "[REDACTED_KEY]"
	RedactedHostPlaceholder = "[REDACTED_HOST]"
	RedactedPathPlaceholder = "[REDACTED_PATH]"
)

var (
	// Provider API key shapes: Anthropic (sk-ant-...), OpenAI (sk-...),
	// Google AI (AIza...).
	anthropicKeyRegex = regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{8,}`)
	openaiKeyRegex    = regexp.MustCompile(`sk-[A-Za-z0-9_-]{16,}`)
	googleKeyRegex    = regexp.MustCompile(`AIza[A-Za-z0-9_-]{16,}`)

	// Generic credential assignments ("api_key=...", "token: ...") and
	// bearer headers.
	assignedKeyRegex = regexp.MustCompile(`(?i)(api[_-]?key|token|secret|credential)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)
	bearerRegex      = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}`)

	// Backend endpoints and local file paths.
	hostPortRegex = regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`)
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	patternPlaceholders = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{anthropicKeyRegex, RedactedKeyPlaceholder},
		{openaiKeyRegex, RedactedKeyPlaceholder},
		{googleKeyRegex, RedactedKeyPlaceholder},
		{assignedKeyRegex, RedactedKeyPlaceholder},
		{bearerRegex, RedactedKeyPlaceholder},
		{unixPathRegex, RedactedPathPlaceholder},
		{hostPortRegex, RedactedHostPlaceholder},
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pp := range patternPlaceholders {
		result = pp.pattern.ReplaceAllString(result, pp.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
