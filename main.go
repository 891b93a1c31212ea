package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"

	"localforum/internal/handlers"
	"localforum/internal/middleware"
	"localforum/internal/repositories"
	"localforum/internal/services"
	"localforum/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables.
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dataDir := viper.GetString("DATA_DIR")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// The session secret has no default on purpose: it must come from
	// the environment.
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// --- Initialize Persistence ---
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory %s: %v", dataDir, err)
	}

	// A malformed data file is a startup failure, not something to
	// limp along with.
	messageRepo, err := repositories.NewFileMessageRepository(filepath.Join(dataDir, "messages.json"))
	if err != nil {
		log.Fatalf("Failed to load message store: %v", err)
	}
	userRepo, err := repositories.NewFileUserRepository(filepath.Join(dataDir, "users.json"))
	if err != nil {
		log.Fatalf("Failed to load user store: %v", err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
	} else {
		log.Println("RABBITMQ_URL not set, board events disabled")
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, jwtSecret)
	messageService := services.NewMessageService(messageRepo, userRepo, mqClient)
	profileService := services.NewProfileService(userRepo)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	messageHandler := handlers.NewMessageHandler(messageService)
	profileHandler := handlers.NewProfileHandler(profileService, messageService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Registration and login are public.
	authHandler.RegisterRoutes(apiV1)

	// Everything touching the board requires an authenticated actor.
	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	messageHandler.RegisterRoutes(protectedRoutes)
	profileHandler.RegisterRoutes(protectedRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// The consumer just logs board events; downstream workers would
	// hook in here.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for board events...")
			messageHandlerFn := func(msg amqp.Delivery) error {
				log.Printf("Received board event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeBoardEvents(messageHandlerFn); consumerErr != nil {
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
