package prompts

import (
	"strings"
)

// ParseConnectionConfigSystem returns the system message for connection
// config extraction from pasted text.
func ParseConnectionConfigSystem() string {
	return `You are a database assistant. Extract database connection parameters from configuration text in any format: JDBC URLs, key-value properties, YAML, XML, or prose.`
}

// ParseConnectionConfigUser builds the user prompt for connection config
// extraction.
func ParseConnectionConfigUser(pastedText string) string {
	var prompt strings.Builder

	prompt.WriteString("## Configuration Text\n\n")
	prompt.WriteString("```\n")
	prompt.WriteString(strings.TrimSpace(pastedText))
	prompt.WriteString("\n```\n\n")
	prompt.WriteString("## Instructions\n\n")
	prompt.WriteString("Extract the connection parameters and return them as a JSON object with these keys:\n")
	prompt.WriteString(`{"db_type": "", "host": "", "port": "", "database": "", "username": "", "password": "", "driver_class": ""}`)
	prompt.WriteString("\n\n")
	prompt.WriteString("- Use an empty string for any parameter not present in the text.\n")
	prompt.WriteString("- db_type is one of: mysql, mariadb, postgresql, oracle, sqlserver, sqlite.\n")
	prompt.WriteString("- Return ONLY the JSON object, no other text.\n")

	return prompt.String()
}
