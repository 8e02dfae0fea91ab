package cli

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	predictioncache "github.com/SukarnBharadwaj/Krishi-Mitra/internal/adapter/cache"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/adapter/http/router"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/cache"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/logger"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/modelstore"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/usecase"
)

func newModelServerCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "model-server",
		Short: "Start the crop prediction server",
		Long:  "Load the configured pipeline artifact and serve top-k crop predictions over HTTP.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runModelServer()
		},
	}
}

func (a *app) runModelServer() error {
	cfg := a.cfg

	log, err := logger.NewLogger(&cfg.Log, "model")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.ModelServer.Mode)

	// A failed startup load leaves the server up without a model
	registry := modelstore.NewRegistry(cfg.Pipeline.Path, modelstore.NewLoader(nil, log), log)
	registry.LoadInitial()

	// Prediction cache (optional, continue without it)
	var redisClient *redis.Client
	var predictions usecase.PredictionCache
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
			predictions = predictioncache.NewPredictionCache(redisClient)
		}
	}

	r := router.SetupModel(router.ModelDeps{
		PredictionUC:  usecase.NewPredictionUsecase(registry, predictions, cfg.Pipeline.CacheTTL, log),
		VerboseErrors: cfg.Pipeline.VerboseErrors,
		CORS:          cfg.CORS,
		Logger:        log,
	})

	err = serve(log, cfg.ModelServer.Addr(), r)

	if redisClient != nil {
		_ = redisClient.Close()
	}
	return err
}
