package datasource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
)

type stubProvider struct{}

func (s *stubProvider) TestConnection(ctx context.Context) error { return nil }
func (s *stubProvider) GetTableCatalog(ctx context.Context) ([]models.TableInfo, error) {
	return nil, nil
}
func (s *stubProvider) GetTableSchema(ctx context.Context, table string) (*models.TableSchema, error) {
	return &models.TableSchema{Name: table}, nil
}
func (s *stubProvider) GetDistinctValues(ctx context.Context, table, column string, limit int) ([]string, error) {
	return nil, nil
}
func (s *stubProvider) Close() error { return nil }

func TestRegisterAndResolve(t *testing.T) {
	Register(Registration{
		Type:        "stubdb",
		DisplayName: "Stub DB",
		Factory: func(ctx context.Context, cfg *Config, logger *zap.Logger) (SchemaProvider, error) {
			return &stubProvider{}, nil
		},
	})

	assert.True(t, IsRegistered("stubdb"))
	assert.Contains(t, RegisteredTypes(), "stubdb")

	provider, err := NewSchemaProvider(context.Background(), "stubdb", &Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, provider.Close())
}

func TestNewSchemaProvider_UnknownType(t *testing.T) {
	_, err := NewSchemaProvider(context.Background(), "hbase", &Config{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hbase")
}

func TestResolveAlias(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mariadb", "mysql"},
		{"postgres", "postgresql"},
		{"mssql", "sqlserver"},
		{"mysql", "mysql"},
		{"sqlite", "sqlite"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveAlias(tt.in))
	}
}

func TestFromConnectionParams(t *testing.T) {
	cfg := FromConnectionParams(&models.ConnectionParams{
		Host:     "db.internal",
		Port:     "5432",
		Database: "shop",
		Username: "app",
		Password: "pw",
	})

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "shop", cfg.Database)
	assert.Equal(t, "app", cfg.User)

	cfg = FromConnectionParams(&models.ConnectionParams{Host: "h", Port: "not-a-number"})
	assert.Zero(t, cfg.Port, "unparseable port stays zero and the adapter default applies")
}
