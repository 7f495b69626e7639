package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"storerate/internal/app"
	"storerate/internal/config"
	"storerate/internal/database"
	"storerate/internal/services"
	"storerate/pkg/rabbitmq"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the CLI. Running it without a subcommand serves the API.
func newRootCmd() *cobra.Command {
	var consumeEvents bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), consumeEvents)
		},
	}
	serveCmd.Flags().BoolVar(&consumeEvents, "consume-events", false, "Also log domain events from the RabbitMQ queue")

	rootCmd := &cobra.Command{
		Use:          "storerate",
		Short:        "Store rating platform API",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd, newSeedAdminCmd())
	return rootCmd
}

func runServe(ctx context.Context, consumeEvents bool) error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer closeDB(db)

	// --- Initialize RabbitMQ Client ---
	// Events are optional; without RABBITMQ_URL the services run with a nil publisher.
	var events services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.EventsExchange,
			Queue:    cfg.EventsQueue,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
		events = mqClient

		if consumeEvents {
			if err := mqClient.ConsumeEvents(ctx, rabbitmq.LogEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	} else if consumeEvents {
		log.Println("--consume-events ignored: RABBITMQ_URL is not set")
	}

	fiberApp := app.New(cfg, db, events)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- fiberApp.Listen(cfg.AppPort)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Println("Shutting down server...")
	if err := fiberApp.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
