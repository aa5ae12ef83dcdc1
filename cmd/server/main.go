package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pedebot/internal/config"
	"pedebot/internal/database"
	"pedebot/internal/handlers"
	"pedebot/internal/migrations"
	"pedebot/internal/monitoring"
	"pedebot/internal/redis"
	"pedebot/internal/repository"
	"pedebot/internal/services"
	"pedebot/pkg/orders"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := migrations.RunMigrations(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	monitoring.Register()

	catalogRepo := repository.NewCatalogRepository(db)
	storeRepo := repository.NewStoreRepository(db)

	orderClient := orders.NewClient(cfg.OrderAPIURL, cfg.OrderAPIToken)
	assistant := services.NewAssistant(cfg.OpenAIAPIKey, cfg.AssistantModel)
	if !assistant.Enabled() {
		logger.Info("external assistant disabled, deterministic replies only")
	}

	chatService := services.NewChatService(
		redisClient,
		catalogRepo,
		storeRepo,
		orderClient,
		assistant,
		cfg.StoreSlug,
		time.Duration(cfg.SessionTimeout)*time.Second,
		logger,
	)

	chatHandler := handlers.NewChatHandler(chatService, logger)

	router := gin.Default()

	router.POST("/api/chat/webhook", chatHandler.HandleWebhook)
	router.DELETE("/api/chat/session/:conversation_id", chatHandler.EndSession)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
