package prompts

import (
	"fmt"
	"strings"

	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
)

// SelectTablesSystem returns the system message for relevant-table selection.
func SelectTablesSystem() string {
	return `You are a database assistant. Given a user request and a list of tables, identify which tables are needed to fulfill the request.`
}

// SelectTablesUser builds the user prompt for relevant-table selection.
// Tables already referenced by the current SQL are flagged so the model is
// biased toward tables in play.
func SelectTablesUser(userRequest string, catalog []models.TableInfo, referenced []string) string {
	flagged := make(map[string]bool, len(referenced))
	for _, name := range referenced {
		flagged[strings.ToLower(name)] = true
	}

	var prompt strings.Builder

	prompt.WriteString("## Available Tables\n\n")
	prompt.WriteString(formatCatalog(catalog, flagged))
	prompt.WriteString("\n## User Request\n\n")
	prompt.WriteString(userRequest)
	prompt.WriteString("\n\n## Instructions\n\n")
	prompt.WriteString("Select the tables needed to fulfill the request.\n")
	prompt.WriteString("- Choose ONLY from the tables listed above.\n")
	prompt.WriteString("- Prefer tables marked as referenced by the current SQL when they fit the request.\n")
	prompt.WriteString("- Return ONLY the table names, one per line, no explanations.\n")

	return prompt.String()
}

// SelectReferenceTablesSystem returns the system message for picking style
// reference tables ahead of CREATE TABLE generation.
func SelectReferenceTablesSystem() string {
	return `You are a database assistant. Given a request to create a new table, identify which existing tables are most similar in purpose, so their design conventions can be followed.`
}

// SelectReferenceTablesUser builds the user prompt for style-reference
// selection. max caps how many tables the model may pick.
func SelectReferenceTablesUser(userRequest string, catalog []models.TableInfo, max int) string {
	var prompt strings.Builder

	prompt.WriteString("## Existing Tables\n\n")
	prompt.WriteString(formatCatalog(catalog, nil))
	prompt.WriteString("\n## New Table Request\n\n")
	prompt.WriteString(userRequest)
	prompt.WriteString("\n\n## Instructions\n\n")
	prompt.WriteString(fmt.Sprintf("Select at most %d existing tables whose structure should guide the new table's design.\n", max))
	prompt.WriteString("- Choose ONLY from the tables listed above.\n")
	prompt.WriteString("- Return ONLY the table names, one per line, no explanations.\n")

	return prompt.String()
}

// SelectEnumColumnsSystem returns the system message for enum-column
// identification.
func SelectEnumColumnsSystem() string {
	return `You are a database assistant. Identify columns whose values come from a small fixed set, such as status codes, types, or flags.`
}

// SelectEnumColumnsUser builds the user prompt for enum-column identification.
func SelectEnumColumnsUser(schema models.TableSchema, dialect models.Dialect) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Database: %s\n\n", dialect.DisplayName()))
	prompt.WriteString("## Table Schema\n\n")
	prompt.WriteString(FormatTableSchema(schema))
	prompt.WriteString("\n## Instructions\n\n")
	prompt.WriteString("List the columns whose value domain is a small fixed set (enumerations).\n")
	prompt.WriteString("- Consider column names, data types, and comments.\n")
	prompt.WriteString("- Return ONLY the column names, one per line.\n")
	prompt.WriteString("- If no column qualifies, return the word NONE.\n")

	return prompt.String()
}

// JudgeEnumValuesSystem returns the system message for deciding whether enum
// values must be fetched from the database before generation.
func JudgeEnumValuesSystem() string {
	return `You are a database assistant. Decide whether the actual stored values of enumeration columns are needed to write correct SQL for the request.`
}

// JudgeEnumValuesUser builds the user prompt for the enum-value-need
// judgement.
func JudgeEnumValuesUser(userRequest string, enumColumns []string) string {
	var prompt strings.Builder

	prompt.WriteString("## User Request\n\n")
	prompt.WriteString(userRequest)
	prompt.WriteString("\n\n## Enumeration Columns\n\n")
	for _, col := range enumColumns {
		prompt.WriteString(fmt.Sprintf("- %s\n", col))
	}
	prompt.WriteString("\n## Instructions\n\n")
	prompt.WriteString("Does writing SQL for this request require knowing the actual values stored in any of these columns?\n")
	prompt.WriteString("Answer with exactly one word: yes or no.\n")

	return prompt.String()
}
