package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"uptask-api/infrastructure/postgres"
	"uptask-api/interfaces/api/handlers"
	"uptask-api/interfaces/api/middleware"
	"uptask-api/interfaces/api/routes"
	"uptask-api/pkg/config"
	"uptask-api/pkg/di"
	"uptask-api/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "uptask",
		Short: "UpTask project management API",
	}

	rootCmd.AddCommand(newServeCmd(), newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var apiMode bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP + WebSocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(apiMode)
		},
	}
	// --api: รับ request ที่ไม่มี Origin header (Postman, curl)
	cmd.Flags().BoolVar(&apiMode, "api", false, "allow requests without an Origin header")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			container := di.NewContainer()
			if err := container.InitializeForMigrate(); err != nil {
				return fmt.Errorf("failed to initialize container: %w", err)
			}
			defer container.Cleanup()

			if err := postgres.Migrate(container.DB); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			logger.Info("Migration completed")
			return nil
		},
	}
}

func serve(apiMode bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if apiMode {
		cfg.CORS.AllowNoOrigin = true
	}

	// Initialize DI container
	container := di.NewContainer()
	container.Config = cfg

	// Initialize all dependencies (including logger)
	if err := container.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	// Setup graceful shutdown
	setupGracefulShutdown(container)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
	})

	// Setup middleware (order matters!)
	app.Use(middleware.RequestIDMiddleware()) // ต้องมาก่อน logger
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.OriginGuard(cfg.CORS))
	app.Use(middleware.CorsMiddleware(cfg.CORS))

	h := handlers.NewHandlers(container.GetHandlerServices())
	routes.SetupRoutes(app, h)

	port := cfg.App.Port
	logger.Info("Server starting",
		"port", port,
		"env", cfg.App.Env,
		"api_mode", apiMode,
	)
	logger.Info("Endpoints available",
		"health", "http://localhost:"+port+"/health",
		"api", "http://localhost:"+port+"/api",
		"websocket", "ws://localhost:"+port+"/ws/projects/:projectId",
	)

	if err := app.Listen(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		return err
	}
	return nil
}

func setupGracefulShutdown(container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")

		if err := container.Cleanup(); err != nil {
			logger.Error("Error during cleanup", "error", err)
		}

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}
