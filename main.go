package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lmcmotors/internal/handlers"
	"lmcmotors/internal/models"
	"lmcmotors/internal/repositories"
	"lmcmotors/internal/services"
	"lmcmotors/pkg/discord"
	"lmcmotors/pkg/genai"
	"lmcmotors/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "lmcmotors.db")
	viper.SetDefault("GALLERY_FILE", "placeholder-images.json")
	viper.SetDefault("OPENAI_BASE_URL", "")
	viper.SetDefault("OPENAI_MODEL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SEED_DATA", false)
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	managerSecret := viper.GetString("MANAGER_SECRET")
	if managerSecret == "" {
		log.Println("Warning: MANAGER_SECRET is not set; the command API will reject every request.")
	}

	// --- Initialize Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DB_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&repositories.VehicleDocument{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	// Lead events are best-effort; the site runs without a broker.
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: Failed to initialize RabbitMQ client, lead events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Initialize Repositories and Stores ---
	vehicleRepo := repositories.NewGORMVehicleRepository(db)
	galleryStore := repositories.NewGalleryStore(viper.GetString("GALLERY_FILE"))

	// --- Initialize Services ---
	catalogService := services.NewCatalogService(vehicleRepo)
	modelClient := genai.NewClient(
		viper.GetString("OPENAI_BASE_URL"),
		viper.GetString("OPENAI_API_KEY"),
		viper.GetString("OPENAI_MODEL"),
	)
	recommendationService := services.NewRecommendationService(catalogService, modelClient)
	notifier := discord.NewNotifier(viper.GetString("DISCORD_WEBHOOK_URL"))
	leadService := services.NewLeadService(notifier, mqClient)
	authService := services.NewAuthService(
		viper.GetString("ADMIN_PASSWORD_HASH"),
		viper.GetString("JWT_SECRET"),
	)

	if viper.GetBool("SEED_DATA") {
		seedVehicles(catalogService)
	}

	// --- Initialize Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	galleryHandler := handlers.NewGalleryHandler(galleryStore)
	finderHandler := handlers.NewFinderHandler(recommendationService)
	leadHandler := handlers.NewLeadHandler(leadService)
	authHandler := handlers.NewAuthHandler(authService)
	managerHandler := handlers.NewManagerHandler(catalogService, galleryStore)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	catalogHandler.RegisterRoutes(apiV1)
	galleryHandler.RegisterRoutes(apiV1)
	finderHandler.RegisterRoutes(apiV1)
	leadHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)

	// The command API lives outside the versioned group; external bot
	// integrations post to /api/vehicle-manager.
	managerHandler.RegisterRoutes(app.Group("/api"), managerSecret)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start Lead Event Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for lead events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Lead Event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeLeadEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase selects the GORM driver from config. sqlite is the dev and
// test default; postgres serves deployments.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// seedVehicles populates an empty catalog with a small starter inventory.
func seedVehicles(catalog *services.CatalogService) {
	existing, err := catalog.List(nil)
	if err != nil {
		log.Printf("Error checking catalog before seeding: %v", err)
		return
	}
	if len(existing) > 0 {
		log.Println("Catalog already contains vehicles. Skipping seeding.")
		return
	}

	vehicles := []models.VehicleData{
		{
			Make: "Toyota", Model: "Camry", Year: 2021, Price: 24500, Mileage: 28000,
			Description: "A dependable mid-size sedan with excellent fuel economy.",
			Type:        models.TypeSedan,
			Specifications: []models.Specification{
				{Name: "Engine", Value: "2.5L 4-Cylinder"},
				{Name: "Transmission", Value: "8-Speed Automatic"},
			},
		},
		{
			Make: "Ford", Model: "F-150", Year: 2020, Price: 38900, Mileage: 41000,
			Description: "America's best-selling truck, ready for work or play.",
			Type:        models.TypeTruck,
			Specifications: []models.Specification{
				{Name: "Engine", Value: "3.5L EcoBoost V6"},
				{Name: "Towing Capacity", Value: "13,200 lbs"},
			},
		},
		{
			Make: "Honda", Model: "CR-V", Year: 2022, Price: 29800, Mileage: 15000,
			Description: "A spacious compact SUV with top safety ratings.",
			Type:        models.TypeSUV,
			Specifications: []models.Specification{
				{Name: "Engine", Value: "1.5L Turbocharged"},
				{Name: "Drivetrain", Value: "AWD"},
			},
		},
	}

	for _, data := range vehicles {
		vehicle, err := catalog.Create(data)
		if err != nil {
			log.Printf("Error seeding vehicle %s %s: %v", data.Make, data.Model, err)
		} else {
			log.Printf("Seeded vehicle: %s %s (ID: %d)", vehicle.Make, vehicle.Model, vehicle.ID)
		}
	}
}
