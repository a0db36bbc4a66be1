// Package postgres implements schema introspection for PostgreSQL using pgx.
package postgres

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/sqlgrip/sqlgrip-engine/pkg/adapters/datasource"
	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
)

// Provider introspects a PostgreSQL database.
type Provider struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// buildConnectionString builds a PostgreSQL URL with proper escaping.
// All user-provided fields are URL-escaped so special characters in
// passwords do not break URL parsing.
func buildConnectionString(cfg *datasource.Config) string {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		port,
		url.QueryEscape(cfg.Database),
		sslMode,
	)
}

// NewProvider connects to PostgreSQL and returns a schema provider.
func NewProvider(ctx context.Context, cfg *datasource.Config, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, buildConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &Provider{
		pool:   pool,
		logger: logger.Named("postgres"),
	}, nil
}

// TestConnection verifies the database is reachable.
func (p *Provider) TestConnection(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// GetTableCatalog returns all user tables with their comments.
func (p *Provider) GetTableCatalog(ctx context.Context) ([]models.TableInfo, error) {
	const query = `
		SELECT
			t.table_name,
			COALESCE(obj_description(c.oid), '') AS table_comment
		FROM information_schema.tables t
		LEFT JOIN pg_class c ON c.relname = t.table_name
		LEFT JOIN pg_namespace n ON n.oid = c.relnamespace AND n.nspname = t.table_schema
		WHERE t.table_type = 'BASE TABLE'
		  AND t.table_schema NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
		ORDER BY t.table_name
	`

	rows, err := p.pool.Query(ctx, query)
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
	const columnQuery = `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable = 'YES',
			COALESCE(col_description(pgc.oid, c.ordinal_position), '')
		FROM information_schema.columns c
		LEFT JOIN pg_class pgc ON pgc.relname = c.table_name
		LEFT JOIN pg_namespace n ON n.oid = pgc.relnamespace AND n.nspname = c.table_schema
		WHERE c.table_name = $1
		  AND c.table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY c.ordinal_position
	`

	rows, err := p.pool.Query(ctx, columnQuery, table)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	schema := &models.TableSchema{Name: table}
	for rows.Next() {
		var col models.ColumnSchema
		if err := rows.Scan(&col.Name, &col.DataType, &col.Nullable, &col.Comment); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		schema.Columns = append(schema.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const pkQuery = `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name
		 AND kcu.table_schema = tc.table_schema
		WHERE tc.table_name = $1 AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position
	`

	pkRows, err := p.pool.Query(ctx, pkQuery, table)
	if err != nil {
		return nil, fmt.Errorf("query primary key: %w", err)
	}
	defer pkRows.Close()

	for pkRows.Next() {
		var name string
		if err := pkRows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan primary key: %w", err)
		}
		schema.PKColumns = append(schema.PKColumns, name)
	}
	return schema, pkRows.Err()
}

// GetDistinctValues returns up to limit distinct non-null values from a column.
func (p *Provider) GetDistinctValues(ctx context.Context, table, column string, limit int) ([]string, error) {
	query := fmt.Sprintf(
		`SELECT DISTINCT %s::text FROM %s WHERE %s IS NOT NULL ORDER BY 1 LIMIT $1`,
		pgx.Identifier{column}.Sanitize(),
		pgx.Identifier{table}.Sanitize(),
		pgx.Identifier{column}.Sanitize(),
	)

	rows, err := p.pool.Query(ctx, query, limit)
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

// Close releases the connection pool.
func (p *Provider) Close() error {
	p.pool.Close()
	return nil
}

var _ datasource.SchemaProvider = (*Provider)(nil)
