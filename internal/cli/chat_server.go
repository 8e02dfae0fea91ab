package cli

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/adapter/client"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/adapter/http/router"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/adapter/repository/postgres"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/repository"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/cache"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/database"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/logger"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/usecase"
)

func newChatServerCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat-server",
		Short: "Start the chat relay",
		Long:  "Start the HTTP chat relay that forwards farmer questions to the configured generative model.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runChatServer(cmd)
		},
	}
}

func (a *app) runChatServer(cmd *cobra.Command) error {
	cfg := a.cfg

	log, err := logger.NewLogger(&cfg.Log, "chat")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.ChatServer.Mode)

	// Chat history (optional)
	var db *gorm.DB
	var chatRepo repository.ChatRepository
	if cfg.Database.Enabled {
		db, err = database.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Error("Failed to connect to database", zap.Error(err))
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Connected to database")

		if err := database.AutoMigrate(db); err != nil {
			log.Error("Failed to run migrations", zap.Error(err))
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Database migrations completed")
		chatRepo = postgres.NewChatRepository(db)
	}

	// Redis (optional, continue without it)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without it", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
		}
	}

	generator, err := client.NewGenerator(cmd.Context(), &cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize generator: %w", err)
	}
	log.Info("Generator ready", zap.String("provider", generator.Name()))

	r := router.SetupChat(router.ChatDeps{
		ChatUC:    usecase.NewChatUsecase(generator, chatRepo, log),
		Generator: generator,
		DB:        db,
		Redis:     redisClient,
		CORS:      cfg.CORS,
		Logger:    log,
	})

	err = serve(log, cfg.ChatServer.Addr(), r)

	if db != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil && sqlDB != nil {
			_ = sqlDB.Close()
		}
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	return err
}
