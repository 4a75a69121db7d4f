package main

import (
	"context"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"productstore/internal/config"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.StartConsumer(); err != nil {
		// The HTTP API keeps serving without the consumer.
		log.Printf("Failed to start RabbitMQ consumer: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s (driver: %s)", cfg.AppPort, cfg.DBDriver)
	go func() {
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"app": func(ctx context.Context) error {
				log.Println("Shutting down server...")
				return app.Shutdown(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Server stopped with code %d", exitCode)
	os.Exit(exitCode)
}
