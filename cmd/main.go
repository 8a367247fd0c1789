package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"opsbridge/internal/di"
	"opsbridge/internal/shared/contextkeys"
	"opsbridge/internal/shared/logger"
	synchttp "opsbridge/internal/sync/adapter/http"
	"opsbridge/internal/sync/config"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Host      string `env:"SERVER_HOST" envDefault:"localhost"`
	Port      string `env:"SERVER_PORT" envDefault:"3000"`
	JWTSecret string `env:"AUTH_JWT_SECRET"`
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	serverCfg := &ServerConfig{}
	if err := env.Parse(serverCfg); err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}
	if serverCfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET must be set")
	}

	appLogger := logger.NewLogger()
	appLogger.Info("Application configuration loaded successfully")

	// Load and validate sync configuration; a broken configuration is fatal at
	// startup rather than a 503 on every request.
	syncCfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load sync configuration: %v", err)
	}
	if err := syncCfg.Validate(); err != nil {
		log.Fatalf("Invalid sync configuration: %v", err)
	}

	container := di.NewContainer(appLogger)
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Error("Failed to close container: %v", err)
		}
	}()

	if err := container.InitializeSync(syncCfg); err != nil {
		log.Fatalf("Failed to initialize sync module: %v", err)
	}
	appLogger.Info("Sync module initialized successfully")

	app := fiber.New(fiber.Config{
		AppName:      "OpsBridge API v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			appLogger.Error("HTTP Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: string(contextkeys.RequestIDKey),
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "HEALTHY",
			"message":   "OpsBridge API is running",
			"timestamp": time.Now().UTC(),
		})
	})

	api := app.Group("/api/v1", synchttp.RequireAuth(serverCfg.JWTSecret, appLogger))
	container.Handler.RegisterRoutes(api)
	appLogger.Info("Sync routes registered")

	serverAddr := fmt.Sprintf("%s:%s", serverCfg.Host, serverCfg.Port)
	appLogger.Info("Starting HTTP server on %s", serverAddr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			log.Fatalf("Server startup failed: %v", err)
		}
	case sig := <-quit:
		appLogger.Info("Received shutdown signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Error("Server forced to shutdown: %v", err)
		}
		appLogger.Info("HTTP server stopped")
	}
}
