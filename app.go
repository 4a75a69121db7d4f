package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"productstore/internal/config"
	"productstore/internal/database"
	"productstore/internal/handlers"
	"productstore/internal/middleware"
	"productstore/internal/models"
	"productstore/internal/repositories"
	"productstore/internal/services"
	"productstore/pkg/rabbitmq"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Fiber *fiber.App
	db    *gorm.DB
	mq    *rabbitmq.Client
}

// NewApp wires configuration, storage, the optional event broker and the HTTP routes.
func NewApp(cfg config.Config) (*App, error) {
	a := &App{}

	// --- Storage ---
	var productRepo repositories.ProductRepository
	if cfg.DBDriver == config.DriverMemory {
		log.Println("Using in-memory product repository")
		productRepo = repositories.NewMemoryProductRepository()
	} else {
		db, err := database.Open(cfg)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, models.Schema()...); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		a.db = db
		productRepo = repositories.NewGORMProductRepository(db)
	}

	// --- Events ---
	var publisher services.EventPublisher
	if cfg.RabbitMQEnabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:        cfg.RabbitMQURL,
			Exchange:   cfg.RabbitMQExchange,
			Queue:      cfg.RabbitMQQueue,
			BindingKey: "product.#",
		})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		a.mq = mqClient
		publisher = mqClient
	}

	productService := services.NewProductService(productRepo, publisher)

	// --- HTTP ---
	app := fiber.New(fiber.Config{
		AppName:               "productstore",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	handlers.NewHealthHandler(a.checkDatabase).RegisterRoutes(app)
	handlers.NewProductHandler(productService, cfg.LegacyStatusCodes).RegisterRoutes(app)

	a.Fiber = app
	return a, nil
}

// StartConsumer logs every product event delivered to the configured queue.
// It is a no-op when the broker is disabled.
func (a *App) StartConsumer() error {
	if a.mq == nil {
		return nil
	}
	log.Println("Starting RabbitMQ consumer for product events...")
	return a.mq.ConsumeEvents(rabbitmq.LogEvent)
}

func (a *App) checkDatabase(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return database.Ping(ctx, a.db)
}

// Shutdown stops the HTTP server and then releases the broker and the database.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Fiber != nil {
		if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
		}
	}
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

// Close releases the broker connection and the database pool.
func (a *App) Close() error {
	var errs []error
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, err)
		}
		a.mq = nil
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			errs = append(errs, err)
		}
		a.db = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
