package sql

import (
	"regexp"

	libinjection "github.com/corazawaf/libinjection-go"
)

// InjectionCheckResult describes a string literal inside a generated
// statement that matches a known SQL injection pattern.
type InjectionCheckResult struct {
	Literal     string // the literal content that was flagged
	Fingerprint string // libinjection fingerprint of the detected pattern
}

// singleQuotedLiteral matches the content of 'single quoted' literals,
// tolerating doubled-quote escapes.
var singleQuotedLiteral = regexp.MustCompile(`'((?:[^']|'')*)'`)

// ScreenLiterals runs libinjection over every single-quoted literal in a
// statement. Model output is executed against a live database, so literals
// smuggling quote-breaks or stacked statements are flagged before the GUI
// offers the SQL for execution.
//
// Returns nil when all literals are clean.
func ScreenLiterals(stmt string) []InjectionCheckResult {
	var results []InjectionCheckResult
	for _, match := range singleQuotedLiteral.FindAllStringSubmatch(stmt, -1) {
		literal := match[1]
		if literal == "" {
			continue
		}
		if isSQLi, fingerprint := libinjection.IsSQLi(literal); isSQLi {
			results = append(results, InjectionCheckResult{
				Literal:     literal,
				Fingerprint: string(fingerprint),
			})
		}
	}
	return results
}

// CheckValueForInjection screens a single free-standing value, such as a
// field recovered from pasted connection configuration before it reaches a
// connection string. Returns nil when the value is clean or not suspicious.
func CheckValueForInjection(value string) *InjectionCheckResult {
	if value == "" {
		return nil
	}
	if isSQLi, fingerprint := libinjection.IsSQLi(value); isSQLi {
		return &InjectionCheckResult{Literal: value, Fingerprint: string(fingerprint)}
	}
	return nil
}
