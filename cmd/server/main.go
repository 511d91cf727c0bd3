// backend/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casaplan/casaplan/backend/internal/api"
	"github.com/casaplan/casaplan/backend/internal/api/handlers"
	"github.com/casaplan/casaplan/backend/internal/cloudinary"
	"github.com/casaplan/casaplan/backend/internal/config"
	"github.com/casaplan/casaplan/backend/internal/database"
	"github.com/casaplan/casaplan/backend/internal/drive"
	"github.com/casaplan/casaplan/backend/internal/health"
	"github.com/casaplan/casaplan/backend/internal/llm"
	"github.com/casaplan/casaplan/backend/internal/middleware"
	"github.com/casaplan/casaplan/backend/internal/repository"
	"github.com/casaplan/casaplan/backend/internal/services"
	"github.com/casaplan/casaplan/backend/pkg/utils"
	"github.com/joho/godotenv"
)

const requestsPerMinute = 120

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()

	logger.Info("Starting floor plan backend...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.ValidateCloudinary(); err != nil {
		logger.WithError(err).Fatal("Cloudinary configuration validation failed")
	}
	if err := cfg.ValidateLLM(); err != nil {
		logger.WithError(err).Fatal("LLM configuration validation failed")
	}

	// Initialize database manager
	dbConfig := &database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	repoManager := repository.NewRepositoryManager(dbManager.DB)

	// Media host client
	cloudinaryClient := cloudinary.NewClient(
		cloudinary.DefaultBaseURL,
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
		logger,
	)
	uploader := cloudinary.NewService(cloudinaryClient, logger)

	// LLM providers and router
	openaiClient := llm.NewOpenAIClient(cfg.LLM.OpenAIBaseURL, cfg.LLM.APIKey, logger)
	anthropicClient := llm.NewAnthropicClient(cfg.LLM.AnthropicBaseURL, cfg.LLM.APIKey, logger)
	router := llm.NewRouter(openaiClient, anthropicClient)

	chatService := services.NewChatService(repoManager, router, logger)

	// Drive integration is auxiliary; the server runs without credentials.
	driveService := drive.NewService(context.Background(), cfg.Drive.CredentialsFile, logger)
	logger.WithField("enabled", driveService.Enabled()).Info("Drive service initialized")

	healthChecker := health.NewHealthChecker(dbManager, logger)

	h := &api.Handlers{
		FloorPlans:    handlers.NewFloorPlanHandler(repoManager, uploader, logger),
		Conversations: handlers.NewConversationHandler(repoManager, logger),
		Chat:          handlers.NewChatHandler(chatService, logger),
		Preferences:   handlers.NewPreferencesHandler(repoManager, logger),
		Feedback:      handlers.NewFeedbackHandler(repoManager, logger),
		Render:        handlers.NewRenderHandler(repoManager, logger),
		Health:        handlers.NewHealthHandler(healthChecker),
	}

	limiter := middleware.NewRateLimiter(dbManager.Redis, requestsPerMinute, logger)
	engine := api.NewRouter(h, cfg.CORS.Origins, limiter)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second, // uploads and LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited gracefully")
}
