package datasource

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ProviderFactory creates a schema provider for one database type.
type ProviderFactory func(ctx context.Context, cfg *Config, logger *zap.Logger) (SchemaProvider, error)

// Registration describes an adapter for UI discovery plus its factory.
type Registration struct {
	Type        string // "postgresql", "mysql", "sqlserver"
	DisplayName string
	Factory     ProviderFactory
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Registration)
)

// Register is called by each adapter's init() function.
// Thread-safe for concurrent init() calls.
func Register(reg Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[reg.Type] = reg
}

// RegisteredTypes returns the database types with an available adapter.
func RegisteredTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	return types
}

// IsRegistered checks if an adapter type is available.
func IsRegistered(dbType string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[dbType]
	return ok
}

// NewSchemaProvider creates a provider for the database type. Aliases like
// "mariadb" resolve to the adapter that serves them.
func NewSchemaProvider(ctx context.Context, dbType string, cfg *Config, logger *zap.Logger) (SchemaProvider, error) {
	registryMu.RLock()
	reg, ok := registry[resolveAlias(dbType)]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no adapter registered for database type %q", dbType)
	}
	return reg.Factory(ctx, cfg, logger)
}

func resolveAlias(dbType string) string {
	switch dbType {
	case "mariadb":
		return "mysql"
	case "postgres":
		return "postgresql"
	case "mssql":
		return "sqlserver"
	default:
		return dbType
	}
}
