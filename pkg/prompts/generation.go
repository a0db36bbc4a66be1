package prompts

import (
	"fmt"
	"strings"

	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
)

// GenerateQuerySystem returns the system message for query generation.
func GenerateQuerySystem(dialect models.Dialect) string {
	return fmt.Sprintf(`You are an expert %s developer. Write correct, efficient SQL for the user's request using only the tables and columns provided.`, dialect.DisplayName())
}

// GenerateQueryUser builds the user prompt for query generation. currentSQL
// and enumValues are optional context; empty values are omitted.
func GenerateQueryUser(userRequest string, schemas []models.TableSchema, currentSQL string, enumValues map[string][]string) string {
	var prompt strings.Builder

	prompt.WriteString("## Schema\n\n")
	prompt.WriteString(FormatTableSchemas(schemas))

	if len(enumValues) > 0 {
		prompt.WriteString("\n## Known Column Values\n\n")
		for col, values := range enumValues {
			prompt.WriteString(fmt.Sprintf("- %s: %s\n", col, strings.Join(values, ", ")))
		}
	}

	if strings.TrimSpace(currentSQL) != "" {
		prompt.WriteString("\n## Current SQL\n\n")
		prompt.WriteString("The user is editing this statement. Treat it as the starting point and modify it to satisfy the request rather than writing an unrelated query.\n\n")
		prompt.WriteString("```sql\n")
		prompt.WriteString(strings.TrimSpace(currentSQL))
		prompt.WriteString("\n```\n")
	}

	prompt.WriteString("\n## Request\n\n")
	prompt.WriteString(userRequest)
	prompt.WriteString("\n\n## Rules\n\n")
	prompt.WriteString("- Use ONLY the tables and columns listed in the schema.\n")
	prompt.WriteString("- Produce exactly one SQL statement.\n")
	prompt.WriteString("- Query statements only; do not produce CREATE, ALTER, DROP, or TRUNCATE.\n")
	prompt.WriteString("- Output ONLY the SQL, no explanations.\n")

	return prompt.String()
}

// GenerateCreateTableSystem returns the system message for CREATE TABLE
// generation.
func GenerateCreateTableSystem(dialect models.Dialect) string {
	return fmt.Sprintf(`You are an expert %s developer. Design a new table for the user's request, following the conventions of the existing tables shown.`, dialect.DisplayName())
}

// GenerateCreateTableUser builds the user prompt for CREATE TABLE generation.
// referenceSchemas shows existing tables whose naming and key conventions the
// new table should follow.
func GenerateCreateTableUser(userRequest string, referenceSchemas []models.TableSchema) string {
	var prompt strings.Builder

	if len(referenceSchemas) > 0 {
		prompt.WriteString("## Existing Tables (follow their conventions)\n\n")
		prompt.WriteString(FormatTableSchemas(referenceSchemas))
		prompt.WriteString("\n")
	}

	prompt.WriteString("## Request\n\n")
	prompt.WriteString(userRequest)
	prompt.WriteString("\n\n## Rules\n\n")
	prompt.WriteString("- Match the existing tables' naming style, primary key convention, and column patterns.\n")
	prompt.WriteString("- Include appropriate data types, constraints, and comments.\n")
	prompt.WriteString("- Produce exactly one CREATE TABLE statement.\n")
	prompt.WriteString("- Output ONLY the SQL, no explanations.\n")

	return prompt.String()
}

// GenerateAlterTableSystem returns the system message for ALTER TABLE
// generation.
func GenerateAlterTableSystem(dialect models.Dialect) string {
	return fmt.Sprintf(`You are an expert %s developer. Write an ALTER TABLE statement for the user's request against the table shown.`, dialect.DisplayName())
}

// GenerateAlterTableUser builds the user prompt for ALTER TABLE generation.
// history carries recent conversation turns so follow-up requests ("also add
// an index on that column") resolve against prior context.
func GenerateAlterTableUser(userRequest string, targetSchema models.TableSchema, history []models.ChatMessage) string {
	var prompt strings.Builder

	prompt.WriteString("## Current Table\n\n")
	prompt.WriteString(FormatTableSchema(targetSchema))

	if len(history) > 0 {
		prompt.WriteString("\n## Conversation History\n\n")
		for _, msg := range history {
			prompt.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
		}
	}

	prompt.WriteString("\n## Request\n\n")
	prompt.WriteString(userRequest)
	prompt.WriteString("\n\n## Rules\n\n")
	prompt.WriteString("- Modify ONLY the table shown above.\n")
	prompt.WriteString("- Produce exactly one ALTER TABLE statement.\n")
	prompt.WriteString("- Output ONLY the SQL, no explanations.\n")

	return prompt.String()
}
