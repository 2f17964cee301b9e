package main

import (
	"github.com/kubev2v/migration-scenario-planner/internal/config"
	"github.com/kubev2v/migration-scenario-planner/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "planner-api",
	Short: "Migration scenario planner api",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
}

// setupLogging replaces the global zap logger with one at the configured level.
// The returned function flushes it and restores the previous logger.
func setupLogging(cfg *config.Config) func() {
	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	undo := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		undo()
	}
}
