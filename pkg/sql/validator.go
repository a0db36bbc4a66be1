package sql

import (
	"errors"
	"strings"
)

// ErrEmptyStatement indicates no statement remained after normalization.
var ErrEmptyStatement = errors.New("no SQL statement found")

// FirstStatement returns the first non-empty statement in the text,
// normalized without its trailing semicolon. Model responses occasionally
// contain several statements even when asked for one; callers keep the first
// and report the rest were dropped.
func FirstStatement(text string) (stmt string, dropped int, err error) {
	statements := SplitStatements(text)
	if len(statements) == 0 {
		return "", 0, ErrEmptyStatement
	}
	return statements[0], len(statements) - 1, nil
}

// SplitStatements splits text on semicolons outside string literals,
// discarding empty segments.
func SplitStatements(text string) []string {
	var statements []string
	var current strings.Builder

	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)
	state := stateNormal
	prevChar := rune(0)

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			statements = append(statements, s)
		}
		current.Reset()
	}

	for _, char := range text {
		switch state {
		case stateNormal:
			switch char {
			case ';':
				flush()
				prevChar = char
				continue
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			// Handle both backslash escape (\') and SQL standard escape ('').
			// A doubled quote exits and immediately re-enters the string.
			if char == '\'' && prevChar != '\\' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if char == '"' && prevChar != '\\' {
				state = stateNormal
			}
		}
		current.WriteRune(char)
		prevChar = char
	}
	flush()

	return statements
}

// ddlPrefixes are statement shapes the query path refuses to return; schema
// changes go through the create-table and alter-table operations instead.
var ddlPrefixes = []string{
	"CREATE TABLE",
	"CREATE DATABASE",
	"CREATE INDEX",
	"CREATE VIEW",
	"ALTER TABLE",
	"DROP TABLE",
	"DROP DATABASE",
	"DROP INDEX",
	"TRUNCATE",
}

// IsDDL reports whether the statement is a schema-definition statement.
func IsDDL(stmt string) bool {
	upper := strings.ToUpper(strings.TrimSpace(stmt))
	for _, prefix := range ddlPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}
