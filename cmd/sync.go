package cmd

import (
	"context"
	"fmt"

	"maintenance-manager/core/config"
	"maintenance-manager/core/database"
	"maintenance-manager/core/glpi"
	"maintenance-manager/core/logger"
	"maintenance-manager/feature/inventory/models"
	syncfeature "maintenance-manager/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd runs a single foreground sync pass against GLPI.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one GLPI sync pass and exit",
	Long: `Fetches every computer from GLPI, reconciles it against the local
database, and replaces each computer's component list. Intended for cron
jobs and first-time imports; the server exposes the same operation over
HTTP at POST /api/sync/glpi.`,
	RunE: runSync,
}

func init() {
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	client := glpi.NewClient(cfg.Glpi)
	svc := syncfeature.NewFeature(client, db, l, cfg.Sync.PageSize).Service()

	l.Info("Starting GLPI sync", zap.Int("page_size", cfg.Sync.PageSize))

	result, err := svc.RunExclusive(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	l.Info("Sync finished",
		zap.Int("computers_synced", result.ComputersSynced),
		zap.Int("components_synced", result.ComponentsSynced),
	)
	return nil
}
