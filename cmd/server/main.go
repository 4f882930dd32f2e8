package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/kindled/kindled/adapters/event"
	httpAdapter "github.com/kindled/kindled/adapters/http"
	"github.com/kindled/kindled/adapters/media_storage"
	"github.com/kindled/kindled/adapters/persistence"
	authUC "github.com/kindled/kindled/internal/application/usecase/auth"
	clientUC "github.com/kindled/kindled/internal/application/usecase/client"
	matchUC "github.com/kindled/kindled/internal/application/usecase/match"
	"github.com/kindled/kindled/internal/config"
	"github.com/kindled/kindled/pkg/auth"
	"github.com/kindled/kindled/pkg/geo"
	"github.com/kindled/kindled/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	clientRepo := persistence.NewPostgresClientRepo(dbPool)
	voteLedger := persistence.NewPostgresVoteLedger(dbPool)
	quotaCounter := persistence.NewRedisQuotaCounter(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	distanceCache, err := geo.NewDistanceCache(cfg.Geo.CacheSize)
	if err != nil {
		appLogger.Fatal("Failed to initialize distance cache", err)
	}

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(clientRepo, jwtSvc, appLogger)
	registerUseCase := clientUC.NewRegisterClientUseCase(clientRepo, uploader, appLogger)
	getClientUseCase := clientUC.NewGetClientUseCase(clientRepo)
	updateClientUseCase := clientUC.NewUpdateClientUseCase(clientRepo, uploader, appLogger)
	deleteClientUseCase := clientUC.NewDeleteClientUseCase(clientRepo, uploader, appLogger)
	listClientsUseCase := clientUC.NewListClientsUseCase(clientRepo, distanceCache)
	castVoteUseCase := matchUC.NewCastVoteUseCase(
		clientRepo, voteLedger, quotaCounter, kafkaClient, appLogger, cfg.Match.DailyVoteLimit,
	)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, registerUseCase)
	clientHandler := httpAdapter.NewClientHandler(
		getClientUseCase,
		updateClientUseCase,
		deleteClientUseCase,
		listClientsUseCase,
	)
	matchHandler := httpAdapter.NewMatchHandler(castVoteUseCase)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), errorMiddleware)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/token", authHandler.Login)
	}

	api := router.Group("/api")
	api.Use(authMiddleware)
	{
		clients := api.Group("/clients")
		{
			clients.GET("", clientHandler.ListClients)
			clients.GET("/:id", clientHandler.GetClient)
			clients.PUT("/:id", clientHandler.UpdateClient)
			clients.DELETE("/:id", clientHandler.DeleteClient)
			clients.POST("/:id/vote", matchHandler.CastVote)
		}
	}

	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "UP"}) })

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
