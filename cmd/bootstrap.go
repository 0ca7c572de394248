package cmd

import (
	"context"
	"fmt"

	"media-catalog/core/config"
	"media-catalog/core/database"
	"media-catalog/core/logger"
	"media-catalog/feature/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what every command needs.
type runtime struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	store *catalog.Store
}

// bootstrap loads the configuration, builds the logger and opens the catalog.
// The catalog tables are migrated unless migrate is false.
func bootstrap(ctx context.Context, migrate bool) (*runtime, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := catalog.NewStore(db, logg)
	if migrate {
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
	}

	return &runtime{cfg: cfg, log: logg, db: db, store: store}, nil
}
