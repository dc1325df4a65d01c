package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterGormTracing registers the otelgorm plugin on the GORM instance.
// Query variables are always excluded from spans; cart and checkout traffic
// carries client identifiers that must not leak into trace storage.
func RegisterGormTracing(db *gorm.DB, dbName string, logger *zap.Logger) error {
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(dbName),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}

	logger.Info("Database tracing enabled", zap.String("db_name", dbName))
	return nil
}
