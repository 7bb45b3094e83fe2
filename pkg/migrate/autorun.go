package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// MaybeRun prepares the schema at startup. SQLite databases are always built
// from the models; Postgres runs goose up only in dev with the feature flag on.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if client == nil {
		return fmt.Errorf("db client is required")
	}
	meta := map[string]any{"env": cfg.App.Env, "driver": client.Driver()}

	if cfg.DB.IsSQLite() {
		logg.Info(logg.WithFields(ctx, meta), "migrate.auto_schema")
		return AutoMigrate(ctx, client)
	}

	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta["dir"] = DefaultDir
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "migrate.goose_up")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "migrate.goose_done")
	return nil
}

// AutoMigrate creates or updates the tables straight from the gorm models.
func AutoMigrate(ctx context.Context, client *db.Client) error {
	if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
