// Package datasource provides schema introspection adapters for the
// supported databases. The engine consumes catalogs and table schemas from
// here when building prompts; it never executes generated SQL itself.
package datasource

import (
	"context"
	"strconv"

	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
)

// SchemaProvider introspects one database connection.
// Each implementation owns its connection and must be closed when done.
type SchemaProvider interface {
	// TestConnection verifies the database is reachable with valid credentials.
	TestConnection(ctx context.Context) error

	// GetTableCatalog returns all user tables with their comments.
	GetTableCatalog(ctx context.Context) ([]models.TableInfo, error)

	// GetTableSchema returns the full schema of one table.
	GetTableSchema(ctx context.Context, table string) (*models.TableSchema, error)

	// GetDistinctValues returns up to limit distinct non-null values from a
	// column, as strings. Used to resolve enum column values before
	// generation.
	GetDistinctValues(ctx context.Context, table, column string, limit int) ([]string, error)

	// Close releases the database connection.
	Close() error
}

// Config holds the connection settings shared by all adapters.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string // postgres only
}

// FromConnectionParams converts parsed connection parameters into an adapter
// config. A missing or unparsable port is left zero for the adapter's
// default.
func FromConnectionParams(p *models.ConnectionParams) *Config {
	port := 0
	if p.Port != "" {
		if n, err := strconv.Atoi(p.Port); err == nil {
			port = n
		}
	}
	return &Config{
		Host:     p.Host,
		Port:     port,
		Database: p.Database,
		User:     p.Username,
		Password: p.Password,
	}
}
