package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/adapter/http/handler"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/adapter/http/middleware"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/service"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/config"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/usecase"
)

// ChatDeps are the dependencies of the chat relay router
type ChatDeps struct {
	ChatUC    usecase.ChatUsecase
	Generator service.TextGenerator
	DB        *gorm.DB
	Redis     *redis.Client
	CORS      config.CORSConfig
	Logger    *zap.Logger
}

// ModelDeps are the dependencies of the prediction service router
type ModelDeps struct {
	PredictionUC  usecase.PredictionUsecase
	VerboseErrors bool
	CORS          config.CORSConfig
	Logger        *zap.Logger
}

func newEngine(service string, origins config.CORSConfig, onPanic middleware.PanicResponder, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger, onPanic))
	router.Use(middleware.CORS(origins))
	router.Use(middleware.Metrics(service))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// SetupChat creates and configures the chat relay router
func SetupChat(deps ChatDeps) *gin.Engine {
	router := newEngine("chat", deps.CORS, middleware.EnvelopePanic, deps.Logger)

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis, deps.Generator)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	chatHandler := handler.NewChatHandler(deps.ChatUC)

	api := router.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)
		api.GET("/chat/history", chatHandler.History)
	}

	return router
}

// SetupModel creates and configures the prediction service router
func SetupModel(deps ModelDeps) *gin.Engine {
	router := newEngine("model", deps.CORS, middleware.DetailPanic, deps.Logger)

	modelHandler := handler.NewModelHandler(deps.PredictionUC, deps.VerboseErrors)
	router.GET("/", modelHandler.Status)
	router.POST("/predict", modelHandler.Predict)
	router.POST("/reload-model", modelHandler.Reload)

	return router
}
