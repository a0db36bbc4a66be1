// Package mssql implements schema introspection for SQL Server.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/sqlgrip/sqlgrip-engine/pkg/adapters/datasource"
	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
)

// Provider introspects a SQL Server database.
type Provider struct {
	db     *sql.DB
	logger *zap.Logger
}

func buildConnectionString(cfg *datasource.Config) string {
	port := cfg.Port
	if port == 0 {
		port = 1433
	}

	query := url.Values{}
	query.Set("database", cfg.Database)

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, port),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// NewProvider connects to SQL Server and returns a schema provider.
func NewProvider(cfg *datasource.Config, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlserver", buildConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlserver: %w", err)
	}

	return &Provider{
		db:     db,
		logger: logger.Named("mssql"),
	}, nil
}

// TestConnection verifies the database is reachable.
func (p *Provider) TestConnection(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlserver: %w", err)
	}
	return nil
}

// GetTableCatalog returns all user tables with their comments.
func (p *Provider) GetTableCatalog(ctx context.Context) ([]models.TableInfo, error) {
	const query = `
		SELECT t.name,
		       COALESCE(CAST(ep.value AS NVARCHAR(4000)), '')
		FROM sys.tables t
		LEFT JOIN sys.extended_properties ep
		  ON ep.major_id = t.object_id AND ep.minor_id = 0 AND ep.name = 'MS_Description'
		WHERE t.is_ms_shipped = 0
		ORDER BY t.name
	`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var catalog []models.TableInfo
	for rows.Next() {
		var info models.TableInfo
		if err := rows.Scan(&info.Name, &info.Comment); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		catalog = append(catalog, info)
	}
	return catalog, rows.Err()
}

// GetTableSchema returns the full schema of one table.
func (p *Provider) GetTableSchema(ctx context.Context, table string) (*models.TableSchema, error) {
	const query = `
		SELECT c.name,
		       ty.name,
		       c.is_nullable,
		       COALESCE(CAST(ep.value AS NVARCHAR(4000)), ''),
		       CASE WHEN ic.column_id IS NOT NULL THEN 1 ELSE 0 END
		FROM sys.columns c
		JOIN sys.tables t ON t.object_id = c.object_id
		JOIN sys.types ty ON ty.user_type_id = c.user_type_id
		LEFT JOIN sys.extended_properties ep
		  ON ep.major_id = c.object_id AND ep.minor_id = c.column_id AND ep.name = 'MS_Description'
		LEFT JOIN sys.indexes i ON i.object_id = t.object_id AND i.is_primary_key = 1
		LEFT JOIN sys.index_columns ic
		  ON ic.object_id = i.object_id AND ic.index_id = i.index_id AND ic.column_id = c.column_id
		WHERE t.name = @p1
		ORDER BY c.column_id
	`

	rows, err := p.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	schema := &models.TableSchema{Name: table}
	for rows.Next() {
		var col models.ColumnSchema
		var isPK bool
		if err := rows.Scan(&col.Name, &col.DataType, &col.Nullable, &col.Comment, &isPK); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		schema.Columns = append(schema.Columns, col)
		if isPK {
			schema.PKColumns = append(schema.PKColumns, col.Name)
		}
	}
	return schema, rows.Err()
}

// GetDistinctValues returns up to limit distinct non-null values from a column.
func (p *Provider) GetDistinctValues(ctx context.Context, table, column string, limit int) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT DISTINCT TOP (%d) CAST(%s AS NVARCHAR(256)) FROM %s WHERE %s IS NOT NULL ORDER BY 1",
		limit, quoteIdentifier(column), quoteIdentifier(table), quoteIdentifier(column),
	)

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query distinct values: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Close releases the database handle.
func (p *Provider) Close() error {
	return p.db.Close()
}

// quoteIdentifier bracket-quotes a SQL Server identifier, doubling embedded
// closing brackets.
func quoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

var _ datasource.SchemaProvider = (*Provider)(nil)
