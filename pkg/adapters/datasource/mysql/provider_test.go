package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sqlgrip/sqlgrip-engine/pkg/adapters/datasource"
)

func newMockProvider(t *testing.T) (*Provider, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Provider{db: db, database: "shop", logger: zap.NewNop()}, mock
}

func TestGetTableCatalog(t *testing.T) {
	provider, mock := newMockProvider(t)

	rows := sqlmock.NewRows([]string{"TABLE_NAME", "TABLE_COMMENT"}).
		AddRow("orders", "order headers").
		AddRow("users", "")
	mock.ExpectQuery("SELECT TABLE_NAME").
		WithArgs("shop").
		WillReturnRows(rows)

	catalog, err := provider.GetTableCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, "orders", catalog[0].Name)
	assert.Equal(t, "order headers", catalog[0].Comment)
	assert.Equal(t, "users", catalog[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableSchema(t *testing.T) {
	provider, mock := newMockProvider(t)

	rows := sqlmock.NewRows([]string{"COLUMN_NAME", "DATA_TYPE", "nullable", "COLUMN_COMMENT", "pk"}).
		AddRow("id", "char", false, "", true).
		AddRow("status", "varchar", false, "order state", false).
		AddRow("note", "text", true, "", false)
	mock.ExpectQuery("SELECT COLUMN_NAME").
		WithArgs("shop", "orders").
		WillReturnRows(rows)

	schema, err := provider.GetTableSchema(context.Background(), "orders")
	require.NoError(t, err)

	assert.Equal(t, "orders", schema.Name)
	assert.Equal(t, []string{"id"}, schema.PKColumns)
	require.Len(t, schema.Columns, 3)
	assert.Equal(t, "status", schema.Columns[1].Name)
	assert.Equal(t, "order state", schema.Columns[1].Comment)
	assert.True(t, schema.Columns[2].Nullable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDistinctValues(t *testing.T) {
	provider, mock := newMockProvider(t)

	rows := sqlmock.NewRows([]string{"value"}).
		AddRow("open").
		AddRow("shipped")
	mock.ExpectQuery("SELECT DISTINCT").
		WithArgs(20).
		WillReturnRows(rows)

	values, err := provider.GetDistinctValues(context.Background(), "orders", "status", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "shipped"}, values)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableCatalog_QueryError(t *testing.T) {
	provider, mock := newMockProvider(t)

	mock.ExpectQuery("SELECT TABLE_NAME").
		WithArgs("shop").
		WillReturnError(assert.AnError)

	_, err := provider.GetTableCatalog(context.Background())
	assert.Error(t, err)
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "`status`", quoteIdentifier("status"))
	assert.Equal(t, "`we``ird`", quoteIdentifier("we`ird"))
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(&datasource.Config{
		Host:     "db.internal",
		Database: "shop",
		User:     "app",
		Password: "pw",
	})

	assert.Contains(t, dsn, "tcp(db.internal:3306)")
	assert.Contains(t, dsn, "/shop")
	assert.Contains(t, dsn, "parseTime=true")
}
