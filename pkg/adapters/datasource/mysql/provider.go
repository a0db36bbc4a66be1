// Package mysql implements schema introspection for MySQL and MariaDB.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/sqlgrip/sqlgrip-engine/pkg/adapters/datasource"
	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
)

// Provider introspects a MySQL or MariaDB database.
type Provider struct {
	db       *sql.DB
	database string
	logger   *zap.Logger
}

func buildDSN(cfg *datasource.Config) string {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, port)
	mc.DBName = cfg.Database
	mc.ParseTime = true
	return mc.FormatDSN()
}

// NewProvider connects to MySQL and returns a schema provider.
func NewProvider(cfg *datasource.Config, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	return &Provider{
		db:       db,
		database: cfg.Database,
		logger:   logger.Named("mysql"),
	}, nil
}

// TestConnection verifies the database is reachable.
func (p *Provider) TestConnection(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping mysql: %w", err)
	}
	return nil
}

// GetTableCatalog returns all user tables with their comments.
func (p *Provider) GetTableCatalog(ctx context.Context) ([]models.TableInfo, error) {
	const query = `
		SELECT TABLE_NAME, COALESCE(TABLE_COMMENT, '')
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME
	`

	rows, err := p.db.QueryContext(ctx, query, p.database)
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
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE = 'YES',
		       COALESCE(COLUMN_COMMENT, ''), COLUMN_KEY = 'PRI'
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`

	rows, err := p.db.QueryContext(ctx, query, p.database, table)
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
		"SELECT DISTINCT CAST(%s AS CHAR) FROM %s WHERE %s IS NOT NULL ORDER BY 1 LIMIT ?",
		quoteIdentifier(column), quoteIdentifier(table), quoteIdentifier(column),
	)

	rows, err := p.db.QueryContext(ctx, query, limit)
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

// quoteIdentifier backtick-quotes a MySQL identifier, doubling embedded
// backticks.
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

var _ datasource.SchemaProvider = (*Provider)(nil)
