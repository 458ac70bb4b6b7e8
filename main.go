package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Logging ---
	level, err := zerolog.ParseLevel(viper.GetString("LOG_LEVEL"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().Level(level)

	// --- Product Store ---
	productRepo, err := newProductRepository(log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize product store")
	}
	if err := seedProducts(productRepo, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed product store")
	}

	// --- Services and Handlers ---
	productService := services.NewProductService(productRepo, log)
	productHandler := handlers.NewProductHandler(productService, log)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(middleware.RequestLogger(log))

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Info().Str("port", appPort).Msg("Starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")
	}
	log.Info().Msg("Server gracefully stopped")
}

// newProductRepository selects the store backend from configuration:
// postgres when DATABASE_URL is set, a sqlite file when SQLITE_PATH is
// set, an in-memory store otherwise.
func newProductRepository(log zerolog.Logger) (repositories.ProductRepository, error) {
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&models.Product{}); err != nil {
			return nil, err
		}
		log.Info().Msg("Using postgres product store")
		return repositories.NewGormProductRepository(db, log), nil
	}

	if path := viper.GetString("SQLITE_PATH"); path != "" {
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&models.Product{}); err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("Using sqlite product store")
		return repositories.NewGormProductRepository(db, log), nil
	}

	log.Info().Msg("No database configured, using in-memory product store")
	return repositories.NewInMemoryProductRepository(), nil
}

// seedProducts populates an empty store with the initial catalog.
func seedProducts(repo repositories.ProductRepository, log zerolog.Logger) error {
	ctx := context.Background()

	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Advisory Services", Brand: models.BrandGHDWoodhead.String(), Price: 100.00},
		{Name: "Architecture & Design", Brand: models.BrandGHDWoodhead.String(), Price: 55.00},
		{Name: "Engineering & Construction", Brand: models.BrandGHDWoodhead.String(), Price: 71.00},
		{Name: "Environmental Services", Brand: models.BrandGHDWoodhead.String(), Price: 1000.00},
		{Name: "Digital Solutions", Brand: models.BrandGHDDigital.String(), Price: 88.00},
		{Name: "Energy & Resources", Brand: models.BrandGHDDigital.String(), Price: 666.00},
		{Name: "Transportation", Brand: models.BrandMovementStrategies.String(), Price: 10545.00},
		{Name: "Water Services", Brand: models.BrandOlssonFireAndRisk.String(), Price: 888.00},
	}
	for i := range products {
		if err := repo.Insert(ctx, &products[i]); err != nil {
			return err
		}
		log.Info().Int("id", products[i].ID).Str("name", products[i].Name).Msg("Seeded product")
	}
	return nil
}
