// Package models holds the request-scoped value types shared across the engine.
package models

import "strings"

// Dialect identifies the SQL dialect of the active connection.
type Dialect string

const (
	DialectMySQL      Dialect = "mysql"
	DialectMariaDB    Dialect = "mariadb"
	DialectPostgreSQL Dialect = "postgresql"
	DialectOracle     Dialect = "oracle"
	DialectSQLServer  Dialect = "sqlserver"
	DialectSQLite     Dialect = "sqlite"
)

// DisplayName returns the human-readable name used in prompts.
func (d Dialect) DisplayName() string {
	switch Dialect(strings.ToLower(string(d))) {
	case DialectMySQL:
		return "MySQL"
	case DialectMariaDB:
		return "MariaDB"
	case DialectPostgreSQL:
		return "PostgreSQL"
	case DialectOracle:
		return "Oracle"
	case DialectSQLServer:
		return "SQL Server"
	case DialectSQLite:
		return "SQLite"
	default:
		return string(d)
	}
}

// TableInfo is one catalog entry: a table name plus an optional comment
// supplied by database introspection.
type TableInfo struct {
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
}

// ColumnSchema describes one column for prompt construction.
type ColumnSchema struct {
	Name         string   `json:"name"`
	DataType     string   `json:"data_type"`
	Nullable     bool     `json:"nullable"`
	Comment      string   `json:"comment,omitempty"`
	SampleValues []string `json:"sample_values,omitempty"` // populated for enum candidates
}

// TableSchema describes one table for prompt construction.
type TableSchema struct {
	Name      string         `json:"name"`
	Comment   string         `json:"comment,omitempty"`
	PKColumns []string       `json:"pk_columns,omitempty"`
	Columns   []ColumnSchema `json:"columns"`
}

// ConnectionParams holds connection settings recovered from pasted
// configuration text. Port stays a string because source formats disagree
// on whether it is quoted.
type ConnectionParams struct {
	DBType      string `json:"db_type"`
	Host        string `json:"host"`
	Port        string `json:"port"`
	Database    string `json:"database"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	DriverClass string `json:"driver_class,omitempty"`
}

// IsZero reports whether nothing usable was recovered.
func (p *ConnectionParams) IsZero() bool {
	return p == nil || (p.Host == "" && p.Database == "" && p.Username == "" && p.DBType == "")
}

// ModelProvider selects the client implementation for a model identity.
type ModelProvider string

const (
	ProviderOpenAI    ModelProvider = "openai"    // any OpenAI-compatible endpoint (DashScope, vLLM, ...)
	ProviderAnthropic ModelProvider = "anthropic"
)

// ModelIdentity is one configured model endpoint. Two identities exist per
// session: an accuracy-oriented default and a latency-oriented turbo.
type ModelIdentity struct {
	Name     string        `yaml:"name" json:"name"`
	Provider ModelProvider `yaml:"provider" json:"provider"`
	BaseURL  string        `yaml:"base_url" json:"base_url"`
	Model    string        `yaml:"model" json:"model"`
	APIKey   string        `yaml:"-" json:"-"`
}

// Configured reports whether the identity can be used to build a client.
func (m *ModelIdentity) Configured() bool {
	return m != nil && m.Model != ""
}

// TableNames extracts the name column from a catalog slice.
func TableNames(catalog []TableInfo) []string {
	names := make([]string, 0, len(catalog))
	for _, t := range catalog {
		names = append(names, t.Name)
	}
	return names
}
