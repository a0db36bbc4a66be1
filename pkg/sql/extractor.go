// Package sql provides SQL text utilities: table-reference extraction,
// statement normalization, and injection screening. Scripts are treated as
// opaque text, not parsed into an AST, so malformed input simply yields
// fewer matches.
package sql

import (
	"regexp"
	"strings"
)

// identifier: bare word, `backticked`, "double-quoted", or [bracketed],
// optionally qualified as db.table in the same quoting styles. The bare-word
// branch matches Unicode letters so unquoted CJK table names are found.
const identPart = "(?:`[^`]+`|\"[^\"]+\"|\\[[^\\]]+\\]|[\\p{L}_][\\p{L}\\p{N}_$]*)"

// tableRefPattern captures the identifier following a table-introducing
// keyword. UPDATE and INTO cover DML targets, TABLE covers DDL targets.
var tableRefPattern = regexp.MustCompile(
	`(?i)\b(?:FROM|JOIN|INTO|UPDATE|TABLE)\s+(` + identPart + `(?:\s*\.\s*` + identPart + `)?)`)

// ExtractReferencedTables scans a SQL script for table references following
// FROM, JOIN, INTO, UPDATE and TABLE keywords and returns the subset that
// exists in knownTables. Names extracted from the script that have no
// catalog entry (CTE aliases, derived tables, keywords) are discarded as
// noise. The result preserves catalog casing, is de-duplicated, and is empty
// for empty or unrecognizable scripts. Never panics on malformed SQL.
func ExtractReferencedTables(sqlScript string, knownTables []string) []string {
	if strings.TrimSpace(sqlScript) == "" || len(knownTables) == 0 {
		return nil
	}

	canonical := make(map[string]string, len(knownTables))
	for _, name := range knownTables {
		canonical[strings.ToLower(name)] = name
	}

	var referenced []string
	seen := make(map[string]bool)
	for _, match := range tableRefPattern.FindAllStringSubmatch(sqlScript, -1) {
		candidate := normalizeIdentifier(match[1])
		if candidate == "" {
			continue
		}
		name, ok := canonical[strings.ToLower(candidate)]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		referenced = append(referenced, name)
	}
	return referenced
}

// normalizeIdentifier strips dialect quoting and a leading database
// qualifier, returning the bare table name.
func normalizeIdentifier(ident string) string {
	ident = strings.TrimSpace(ident)

	// Keep only the last dot-separated part: db.table -> table. Dots inside
	// quoted parts are preserved because the split walks quoted runs whole.
	parts := splitQualified(ident)
	if len(parts) == 0 {
		return ""
	}
	last := parts[len(parts)-1]

	return trimQuotes(last)
}

// splitQualified splits a possibly-qualified identifier on dots that sit
// outside quote pairs.
func splitQualified(ident string) []string {
	var parts []string
	var current strings.Builder
	var quote byte

	for i := 0; i < len(ident); i++ {
		c := ident[i]
		switch {
		case quote != 0:
			current.WriteByte(c)
			if (quote == '[' && c == ']') || (quote != '[' && c == quote) {
				quote = 0
			}
		case c == '`' || c == '"' || c == '[':
			quote = c
			current.WriteByte(c)
		case c == '.':
			parts = append(parts, current.String())
			current.Reset()
		case c == ' ' || c == '\t':
			// ignore whitespace around dots
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func trimQuotes(ident string) string {
	if len(ident) >= 2 {
		first, last := ident[0], ident[len(ident)-1]
		if (first == '`' && last == '`') ||
			(first == '"' && last == '"') ||
			(first == '[' && last == ']') {
			return ident[1 : len(ident)-1]
		}
	}
	return ident
}
