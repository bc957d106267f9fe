package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"property-expert/internal/auth"
	"property-expert/internal/config"
	"property-expert/internal/handlers"
	"property-expert/internal/middleware"
	"property-expert/internal/report"
	"property-expert/internal/search"
	"property-expert/internal/seed"
	"property-expert/internal/store"
)

var (
	appConfig     *config.Config
	recordStore   store.RecordStore
	searchClient  *search.SearchClient
	authService   *auth.Service
	reportService *report.Service
	appScheduler  *report.Scheduler
)

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "/app/config/config.yaml")
	var err error
	appConfig, err = config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		appConfig.Auth.JWTSecret = secret
	}
	if appConfig.Auth.JWTSecret == "" {
		log.Fatal("JWT secret is not set (auth.jwt_secret or JWT_SECRET)")
	}

	// Connect to the document store
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoURI := getEnvOrConfig(appConfig.Database.Mongo.URI, "MONGO_URI", "mongodb://localhost:27017")
	mongoDB := getEnvOrConfig(appConfig.Database.Mongo.Database, "MONGO_DB", "property_expert")

	mongoStore, err := store.NewMongoStore(ctx, mongoURI, mongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoStore.Close(context.Background()); err != nil {
			log.Printf("Warning: Failed to disconnect from MongoDB: %v", err)
		}
	}()
	recordStore = mongoStore
	log.Printf("Connected to MongoDB database %q", mongoDB)

	// Seed demo listings on an empty install
	if appConfig.SeedDemo {
		if _, err := seed.DemoPropertiesIfEmpty(ctx, recordStore); err != nil {
			log.Printf("Warning: Demo seeding failed: %v", err)
		}
	}

	// Initialize Meilisearch when enabled
	if appConfig.Search.Meilisearch.Enabled {
		host := getEnvOrConfig(appConfig.Search.Meilisearch.Host, "MEILISEARCH_HOST", "http://meilisearch:7700")
		apiKey := getEnvOrConfig(appConfig.Search.Meilisearch.APIKey, "MEILISEARCH_KEY", "masterKey123")
		searchClient = search.NewSearchClient(host, apiKey)

		if err := searchClient.InitIndex(); err != nil {
			log.Printf("Warning: Failed to initialize search index: %v", err)
		}
	}

	// Auth and report services
	authService = auth.NewService(recordStore, appConfig.Auth)
	reportService = report.NewService(recordStore)

	// Scheduled report pipeline
	appScheduler = report.NewScheduler(reportService, appConfig.Report.IntervalMinutes)
	if appConfig.Report.Enabled {
		if err := appScheduler.Start(); err != nil {
			log.Printf("Warning: Failed to start report scheduler: %v", err)
		}
		defer appScheduler.Stop()
	} else {
		log.Println("Report scheduler is disabled in configuration")
	}

	// Setup Gin router
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	authHandler := handlers.NewAuthHandler(authService)
	propertyHandler := handlers.NewPropertyHandler(recordStore, searchClient)
	adminHandler := handlers.NewAdminHandler(recordStore, reportService, appScheduler)

	// Routes
	r.GET("/health", healthCheck)

	r.POST("/api/auth/signup", authHandler.SignUp)
	r.POST("/api/auth/login", authHandler.SignIn)

	r.GET("/api/properties", propertyHandler.List)
	r.GET("/api/properties/:id", propertyHandler.Get)
	r.GET("/api/search", propertyHandler.Search)

	// Manage-properties routes (owner only)
	authed := r.Group("/api", middleware.RequireAuth(authService))
	{
		authed.POST("/properties", propertyHandler.Create)
		authed.GET("/properties/mine", propertyHandler.Mine)
		authed.PUT("/properties/:id", propertyHandler.Update)
		authed.DELETE("/properties/:id", propertyHandler.Delete)
	}

	// Admin routes gated on the configured email allowlist
	admin := r.Group("/api/admin",
		middleware.RequireAuth(authService),
		middleware.RequireAdmin(authService))
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)
		admin.GET("/report", adminHandler.GetLatestReport)
		admin.POST("/report/generate", adminHandler.GenerateReport)
		admin.GET("/properties/search", adminHandler.SearchProperties)
		admin.GET("/users/search", adminHandler.SearchUsers)
	}

	log.Println("Admin API routes registered at /api/admin/*")

	port := getEnvOrConfig(appConfig.Server.Port, "PORT", "8084")
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func getEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, defaultValue)
}
