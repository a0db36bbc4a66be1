// Package selection decides which catalog tables are relevant to a user
// request, combining lexical analysis of the current script with model-backed
// selection.
package selection

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// RequestNamesTable reports whether the request explicitly names one of the
// known tables. Matching is word-boundary aware so table "order" does not
// match inside "border". Singular and plural forms of a table name both
// count, since users write "query the users table" against a table named
// "user" and vice versa.
//
// Pure and deterministic; never fails. Messy input degrades to false.
func RequestNamesTable(userRequest string, knownTables []string) bool {
	request := strings.ToLower(strings.TrimSpace(userRequest))
	if request == "" {
		return false
	}

	for _, table := range knownTables {
		name := strings.ToLower(strings.TrimSpace(table))
		if name == "" {
			continue
		}

		for _, candidate := range nameVariants(name) {
			if matchesAsToken(request, candidate) {
				return true
			}
		}
	}
	return false
}

// nameVariants returns the name plus its singular and plural forms,
// deduplicated.
func nameVariants(name string) []string {
	variants := []string{name}
	for _, v := range []string{inflection.Singular(name), inflection.Plural(name)} {
		if v != name && v != "" {
			variants = append(variants, v)
		}
	}
	return variants
}

// matchesAsToken reports whether candidate occurs as a distinct token in
// request. CJK names carry no word boundaries, so substring containment is
// the only workable rule for them.
func matchesAsToken(request, candidate string) bool {
	if containsCJK(candidate) {
		return strings.Contains(request, candidate)
	}

	pattern := `(?i)\b` + regexp.QuoteMeta(candidate) + `\b`
	matched, err := regexp.MatchString(pattern, request)
	if err != nil {
		return false
	}
	return matched
}

func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}
