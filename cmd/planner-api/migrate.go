package main

import (
	"github.com/kubev2v/migration-scenario-planner/internal/config"
	"github.com/kubev2v/migration-scenario-planner/internal/store"
	"github.com/kubev2v/migration-scenario-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		defer setupLogging(cfg)()
		defer zap.S().Info("Db migrated")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		store := store.NewStore(db)
		defer store.Close()

		if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
			zap.S().Fatalw("running migrations", "error", err)
		}

		version, err := migrations.Version(db)
		if err != nil {
			zap.S().Fatalw("reading schema version", "error", err)
		}
		zap.S().Infow("schema migrated", "version", version)

		return nil
	},
}
