package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/kubev2v/migration-scenario-planner/internal/api_server"
	"github.com/kubev2v/migration-scenario-planner/internal/config"
	"github.com/kubev2v/migration-scenario-planner/internal/events"
	"github.com/kubev2v/migration-scenario-planner/internal/store"
	"github.com/kubev2v/migration-scenario-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the planner api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		defer setupLogging(cfg)()

		zap.S().Info("Starting API service...")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		store := store.NewStore(db)
		defer store.Close()

		if cfg.Database.Type == "pgsql" {
			if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
				zap.S().Fatalw("running migrations", "error", err)
			}
		} else if err := store.InitialMigration(cmd.Context()); err != nil {
			zap.S().Fatalw("running initial migration", "error", err)
		}

		producer, err := newEventProducer(cfg)
		if err != nil {
			zap.S().Fatalw("creating event producer", "error", err)
		}
		defer producer.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, store, producer, listener)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("Error running server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener, store)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("failed to run metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

// newEventProducer sends the scenario events to the configured CloudEvents sink, or to the log.
func newEventProducer(cfg *config.Config) (*events.EventProducer, error) {
	var w events.Writer = &events.StdoutWriter{}
	if cfg.Service.EventsSink != "" {
		httpWriter, err := events.NewHTTPWriter(cfg.Service.EventsSink)
		if err != nil {
			return nil, err
		}
		w = httpWriter
	}
	return events.NewEventProducer(w, events.WithOutputTopic(cfg.Service.EventsTopic), events.WithSource("planner-api")), nil
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
