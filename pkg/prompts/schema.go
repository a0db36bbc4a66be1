// Package prompts builds the system and user prompts for every model-backed
// operation. Builders are pure string assembly; schema data arrives already
// fetched by the caller.
package prompts

import (
	"fmt"
	"strings"

	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
)

// FormatTableSchema renders one table's schema as a prompt section.
func FormatTableSchema(schema models.TableSchema) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("### %s\n", schema.Name))
	if schema.Comment != "" {
		b.WriteString(fmt.Sprintf("Comment: %s\n", schema.Comment))
	}
	if len(schema.PKColumns) > 0 {
		b.WriteString(fmt.Sprintf("Primary Key: %s\n", strings.Join(schema.PKColumns, ", ")))
	}
	b.WriteString("Columns:\n")
	for _, col := range schema.Columns {
		b.WriteString(formatColumn(col))
	}

	return b.String()
}

func formatColumn(col models.ColumnSchema) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("- %s (%s)", col.Name, col.DataType))
	if !col.Nullable {
		b.WriteString(" NOT NULL")
	}
	if col.Comment != "" {
		b.WriteString(fmt.Sprintf(" -- %s", col.Comment))
	}
	if len(col.SampleValues) > 0 {
		b.WriteString(fmt.Sprintf(" [values: %s]", strings.Join(col.SampleValues, ", ")))
	}
	b.WriteString("\n")

	return b.String()
}

// FormatTableSchemas renders multiple schemas separated by blank lines.
func FormatTableSchemas(schemas []models.TableSchema) string {
	var parts []string
	for _, s := range schemas {
		parts = append(parts, FormatTableSchema(s))
	}
	return strings.Join(parts, "\n")
}

// formatCatalog renders the table catalog as a name-and-comment list.
func formatCatalog(catalog []models.TableInfo, flagged map[string]bool) string {
	var b strings.Builder
	for _, t := range catalog {
		b.WriteString(fmt.Sprintf("- %s", t.Name))
		if t.Comment != "" {
			b.WriteString(fmt.Sprintf(": %s", t.Comment))
		}
		if flagged[strings.ToLower(t.Name)] {
			b.WriteString(" (referenced by the current SQL)")
		}
		b.WriteString("\n")
	}
	return b.String()
}
