package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/kitchenboard/pkg/config"
	"github.com/angelmondragon/kitchenboard/pkg/db"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
)

// ShouldAutoRun reports whether the service migrates the ticket archive itself at startup. An
// embedded sqlite archive has no separate deploy step, so it always does.
func ShouldAutoRun(cfg *config.Config) bool {
	return cfg.FeatureFlags.AutoMigrate || cfg.DB.IsSQLite()
}

// MaybeRun applies pending migrations when ShouldAutoRun allows it.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !ShouldAutoRun(cfg) {
		return nil
	}
	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	if err := Run(ctx, sqlDB, cfg.DB.Driver, "up"); err != nil {
		return err
	}
	version, err := Version(ctx, sqlDB, cfg.DB.Driver)
	if err != nil {
		return err
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"driver":  cfg.DB.Driver,
		"version": version,
	}), "ticket archive migrated at startup")
	return nil
}
