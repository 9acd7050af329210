// Package main is the entry point for the Widget Service.
// @title Widget Service API
// @version 1.0
// @description Multi-tenant chatbot widget backend: session identity, prompt rule matching, engagement triggers, and lead capture
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/vcro/widget-service
// @contact.email support@vcro.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token authentication for the admin API
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vcro/widget-service/docs"
	"github.com/vcro/widget-service/internal/api/handlers"
	"github.com/vcro/widget-service/internal/api/middleware"
	"github.com/vcro/widget-service/internal/api/routes"
	"github.com/vcro/widget-service/internal/config"
	"github.com/vcro/widget-service/internal/core/cache"
	"github.com/vcro/widget-service/internal/core/docdb"
	"github.com/vcro/widget-service/internal/core/vault"
	rediscache "github.com/vcro/widget-service/internal/infrastructure/cache/redis"
	"github.com/vcro/widget-service/internal/infrastructure/docdb/mongodb"
	dotenvvault "github.com/vcro/widget-service/internal/infrastructure/vault/dotenv"
	"github.com/vcro/widget-service/internal/pkg/encryption"
	"github.com/vcro/widget-service/internal/services/completion"
	"github.com/vcro/widget-service/internal/services/conversation"
	"github.com/vcro/widget-service/internal/services/engagement"
	"github.com/vcro/widget-service/internal/services/leads"
	"github.com/vcro/widget-service/internal/services/prompts"
	"github.com/vcro/widget-service/internal/services/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize vault client using factory pattern
	vaultClient, err := createVaultClient(cfg.Vault)
	if err != nil {
		log.Fatalf("failed to initialize vault client: %v", err)
	}
	defer vaultClient.Close()

	// Initialize cache client using factory pattern
	cacheClient, err := createCacheClient(cfg.Cache)
	if err != nil {
		log.Fatalf("failed to initialize cache client: %v", err)
	}
	defer cacheClient.Close()

	// Initialize document db client using factory pattern
	docDBClient, err := createDocDBClient(ctx, cfg.DocDB)
	if err != nil {
		log.Fatalf("failed to initialize document db client: %v", err)
	}
	defer docDBClient.Close(ctx)

	// Ensure database indexes
	if err := docDBClient.EnsureIndexes(ctx); err != nil {
		log.Printf("warning: failed to ensure indexes: %v", err)
	}

	// Initialize encryptor
	encryptor, err := createEncryptor(cfg.Vault, vaultClient)
	if err != nil {
		log.Fatalf("failed to initialize encryptor: %v", err)
	}

	// Initialize the session counters store
	countersStore, err := session.NewCountersStore(&session.CountersConfig{
		CacheClient: cacheClient,
		Encryptor:   encryptor,
		TTL:         cfg.Widget.SessionTTL,
	})
	if err != nil {
		log.Fatalf("failed to initialize counters store: %v", err)
	}

	// Initialize the completion client
	completionClient, err := completion.NewClient(&completion.ClientConfig{
		URL:     cfg.Completion.URL,
		APIKey:  cfg.Completion.APIKey,
		Timeout: cfg.Completion.Timeout,
	})
	if err != nil {
		log.Fatalf("failed to initialize completion client: %v", err)
	}
	defer completionClient.Close()

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Setup router
	router, err := setupRouter(cfg, cacheClient, docDBClient, countersStore, completionClient)
	if err != nil {
		log.Fatalf("failed to setup router: %v", err)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// createVaultClient creates a vault client based on the configuration.
func createVaultClient(cfg config.VaultConfig) (vault.Client, error) {
	vaultType := vault.Type(cfg.Type)

	switch vaultType {
	case vault.TypeDotEnv:
		return dotenvvault.NewClient()
	default:
		log.Fatalf("unsupported vault type: %s", cfg.Type)
		return nil, nil
	}
}

// createCacheClient creates a cache client based on the configuration.
func createCacheClient(cfg config.CacheConfig) (cache.Client, error) {
	cacheType := cache.Type(cfg.Type)

	switch cacheType {
	case cache.TypeRedis:
		return rediscache.NewClient(rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: cfg.TTL,
		})
	default:
		log.Fatalf("unsupported cache type: %s", cfg.Type)
		return nil, nil
	}
}

// createDocDBClient creates a document database client based on the configuration.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	docDBType := docdb.Type(cfg.Type)

	switch docDBType {
	case docdb.TypeMongoDB:
		return mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:          cfg.URI,
			DatabaseName: cfg.Database,
		})
	case docdb.TypeCosmosDB:
		// CosmosDB uses MongoDB protocol, so we can use the same client
		return mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:          cfg.URI,
			DatabaseName: cfg.Database,
		})
	default:
		log.Fatalf("unsupported docdb type: %s", cfg.Type)
		return nil, nil
	}
}

// createEncryptor creates an encryptor based on the configuration.
func createEncryptor(cfg config.VaultConfig, vaultClient vault.Client) (encryption.Encryptor, error) {
	// Try to get encryption key from vault/env
	encryptionKey := cfg.EncryptionKey
	if encryptionKey == "" {
		// Try to get from vault
		key, err := vaultClient.GetSecret(context.Background(), "dotenv://SECRETS_ENCRYPTION_KEY", false)
		if err == nil && key != "" {
			encryptionKey = key
		}
	}

	if encryptionKey == "" {
		// Use NoOp encryptor in development
		log.Println("warning: SECRETS_ENCRYPTION_KEY not set, using NoOp encryptor")
		return encryption.NewNoOpEncryptor(), nil
	}

	return encryption.NewAESEncryptor(encryptionKey)
}

// setupRouter creates and configures the Gin router.
func setupRouter(cfg *config.Config, cacheClient cache.Client, docDBClient docdb.Client, countersStore session.CountersStore, completionClient completion.Client) (*gin.Engine, error) {
	router := gin.New()

	// CORS first so preflight requests short-circuit before auth.
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	}
	router.Use(middleware.NewCORSMiddleware(corsCfg))
	middleware.SetupCORSRoutes(router, corsCfg)

	// Create middleware
	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware()
	authMw := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret)
	tenantMw := middleware.NewTenantMiddleware()

	// Create services
	identity := session.NewIdentityManager(cfg.Widget.SessionCookieName, cfg.Widget.SessionTTL)

	promptsSvc, err := prompts.NewService(&prompts.Config{
		DocDBClient: docDBClient,
		CacheClient: cacheClient,
	})
	if err != nil {
		return nil, err
	}

	engagementSvc, err := engagement.NewService(docDBClient)
	if err != nil {
		return nil, err
	}

	leadsSvc, err := leads.NewService(&leads.ServiceConfig{
		Leads:    docDBClient.Leads(),
		Counters: countersStore,
		Logger:   zlog.Logger,
	})
	if err != nil {
		return nil, err
	}

	conversationSvc, err := conversation.NewService(&conversation.ServiceConfig{
		DocDBClient: docDBClient,
		Counters:    countersStore,
		Prompts:     promptsSvc,
		Engagement:  engagementSvc,
		Completion:  completionClient,
		Logger:      zlog.Logger,
	})
	if err != nil {
		return nil, err
	}

	// Create handlers
	healthHandler := handlers.NewHealthHandler(cacheClient, docDBClient)
	widgetHandler := handlers.NewWidgetHandler(identity, conversationSvc, leadsSvc)
	adminHandler := handlers.NewAdminHandler(promptsSvc, engagementSvc, leadsSvc)

	// Setup routes
	routesCfg := &routes.Config{
		HealthHandler:    healthHandler,
		WidgetHandler:    widgetHandler,
		AdminHandler:     adminHandler,
		AuthMiddleware:   authMw,
		TenantMiddleware: tenantMw,
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw)

	// Swagger documentation endpoint
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router, nil
}
