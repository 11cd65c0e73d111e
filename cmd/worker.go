package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	authpg "github.com/mohspitality/hospitality-management/internal/auth/postgres"
	"github.com/mohspitality/hospitality-management/internal/core/events"
	"github.com/mohspitality/hospitality-management/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers like token cleanup and event processing.`,
}

// Token cleanup worker command
var tokenWorkerCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Start the expired token cleanup worker",
	Long:  `Periodically deletes refresh tokens and password reset tokens that are past their expiry`,
	Run: func(cmd *cobra.Command, args []string) {
		startTokenWorker()
	},
}

// Event Bus worker command
var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus `,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

var (
	purgeInterval  time.Duration
	purgeRetention time.Duration
)

func startTokenWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logger.LoggerWrapper()

	pool, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	db, err := initGorm(pool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize orm: %v\n", err)
		os.Exit(1)
	}

	repo := authpg.NewRepository(db)

	logger.Info("starting token cleanup worker",
		"interval", purgeInterval,
		"retention", purgeRetention)

	// Expired tokens are kept for a grace window so a support engineer can
	// still inspect them shortly after expiry.
	purge := func() {
		cutoff := time.Now().Add(-purgeRetention)
		deleted, err := repo.DeleteExpiredTokens(cutoff)
		if err != nil {
			logger.Error("token purge failed", "error", err)
			return
		}
		if deleted > 0 {
			logger.Info("purged expired tokens", "deleted", deleted)
		}
	}
	purge()

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("token cleanup worker is running. Press Ctrl+C to stop.")

	for {
		select {
		case <-ticker.C:
			purge()
		case sig := <-sigChan:
			logger.Info("received signal, shutting down token cleanup worker", "signal", sig)
			if err := pool.Close(); err != nil {
				logger.Error("database close error", "error", err)
			}
			logger.Info("token cleanup worker shutdown complete")
			return
		}
	}
}

func startEventWorker() {
	_, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(logger)

	logEvent := func(ctx context.Context, event events.Event) error {
		logger.Info("received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	}
	eventBus.Subscribe(events.EventTypePasswordResetRequested, logEvent)
	eventBus.Subscribe(events.EventTypeStaffCreated, logEvent)

	logger.Info("event bus worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("event bus is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	logger.Info("received signal, shutting down event bus", "signal", sig)
	logger.Info("event bus shutdown complete")
}

func init() {
	tokenWorkerCmd.Flags().DurationVar(&purgeInterval, "interval", time.Hour, "How often to run the purge")
	tokenWorkerCmd.Flags().DurationVar(&purgeRetention, "retention", 24*time.Hour, "How long expired tokens are kept before deletion")

	workerCmd.AddCommand(tokenWorkerCmd)
	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
