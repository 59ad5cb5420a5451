package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"traffic-dashboard-api/config"
	"traffic-dashboard-api/dataset"
	"traffic-dashboard-api/handlers"
	"traffic-dashboard-api/middleware"
	"traffic-dashboard-api/models"
	"traffic-dashboard-api/predictor"
	"traffic-dashboard-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Dataset and model load once at startup; either failing is fatal to the
	// session, there is no degraded mode without them.
	provider := dataset.NewProvider(cfg.Dataset.Path)
	table, err := provider.Get()
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	handlers.SetDatasetRows(table.Len())
	log.Printf("dataset loaded: %d records, %d road types", table.Len(), len(table.RoadTypes()))

	model, err := predictor.LoadArtifact(cfg.Model.Path)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	log.Printf("model loaded: %s", model.Version())

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get sql db handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.PredictionLog{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("redis unavailable, running without response cache: %v", err)
	}
	defer cache.Close()

	authService := services.NewAuthService(cfg.JWT)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "UP",
			"message": "Traffic Dashboard API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(db, authService)
	roadsHandler := handlers.NewRoadsHandler(table, cache)
	recordsHandler := handlers.NewRecordsHandler(table, cache)
	summaryHandler := handlers.NewSummaryHandler(table, cache)
	mapHandler := handlers.NewMapHandler(table)
	predictHandler := handlers.NewPredictHandler(db, cache, model)
	importanceHandler := handlers.NewImportanceHandler(model)
	historyHandler := handlers.NewPredictionHistoryHandler(db, cache)

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/roads", roadsHandler.GetRoadTypes)
		api.GET("/records", recordsHandler.GetRecords)
		api.GET("/summary", summaryHandler.GetSummary)
		api.GET("/map", mapHandler.GetMapPoints)
		api.GET("/importances", importanceHandler.GetImportances)

		protected := api.Group("", middleware.RequireAuth(authService))
		protected.POST("/predict", predictHandler.Predict)
		protected.GET("/predictions", historyHandler.GetHistory)
	}

	router.GET("/ws/predictions", handlers.PredictionsWebSocket(cache, authService))

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}
