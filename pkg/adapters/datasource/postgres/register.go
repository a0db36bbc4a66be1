package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/sqlgrip/sqlgrip-engine/pkg/adapters/datasource"
)

func init() {
	datasource.Register(datasource.Registration{
		Type:        "postgresql",
		DisplayName: "PostgreSQL",
		Factory: func(ctx context.Context, cfg *datasource.Config, logger *zap.Logger) (datasource.SchemaProvider, error) {
			return NewProvider(ctx, cfg, logger)
		},
	})
}
