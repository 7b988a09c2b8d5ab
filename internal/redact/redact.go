// Package redact strips sensitive material from strings before they are
// logged or attached to error responses: database connection strings, raw
// SQL, email addresses, credentials, and host names that driver error
// messages tend to carry.
package redact

import "regexp"

// Redaction placeholders.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
)

var (
	// Database connection strings with inline credentials.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres(ql)?|redis|db|database)://[^@\s]+@`)

	// password=... / pwd: ... fragments.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// SQL statements leaked from driver errors.
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()"=$]+(?:FROM|INTO|SET|TABLE|WHERE)(?:[\s\w,*()"'=$]+)?`,
	)

	// Email addresses (users table values surface in unique-violation errors).
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// host:port endpoints from connection failures.
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)

	// Filesystem paths.
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	patterns = []*regexp.Regexp{
		dbConnRegex, passwordRegex, sqlRegex, emailRegex, hostPortRegex, unixPathRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		dbConnRegex:   RedactedCredentialPlaceholder,
		passwordRegex: RedactedCredentialPlaceholder,
		sqlRegex:      RedactedSQLPlaceholder,
		emailRegex:    RedactedEmailPlaceholder,
		hostPortRegex: RedactedHostPlaceholder,
		unixPathRegex: RedactedPathPlaceholder,
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, pattern := range patterns {
		result = pattern.ReplaceAllString(result, patternPlaceholders[pattern])
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
