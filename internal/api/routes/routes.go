// Package routes defines the HTTP routes for the Widget Service.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vcro/widget-service/internal/api/handlers"
	"github.com/vcro/widget-service/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler    *handlers.HealthHandler
	WidgetHandler    *handlers.WidgetHandler
	AdminHandler     *handlers.AdminHandler
	AuthMiddleware   *middleware.AuthMiddleware
	TenantMiddleware *middleware.TenantMiddleware
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	// API v1 routes - all routes under /api/v1/widget-service
	v1 := r.Group("/api/v1/widget-service")
	{
		// Health check routes (no auth required)
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		// Public widget routes. The embedded widget authenticates with
		// nothing but its session cookie.
		widget := v1.Group("/tenants/:tenantId/agents/:agentId")
		widget.Use(cfg.TenantMiddleware.ExtractTenant())
		{
			widget.GET("/session", cfg.WidgetHandler.GetSession)
			widget.DELETE("/session", cfg.WidgetHandler.ClearSession)

			widget.GET("/messages", cfg.WidgetHandler.GetHistory)
			widget.POST("/messages", cfg.WidgetHandler.SendMessage)

			widget.POST("/leads", cfg.WidgetHandler.SubmitLead)
		}

		// Admin routes require a tenant-scoped JWT.
		admin := v1.Group("/tenants/:tenantId/agents/:agentId")
		admin.Use(cfg.TenantMiddleware.ExtractTenant(), cfg.AuthMiddleware.Authenticate())
		{
			rules := admin.Group("/prompt-rules")
			{
				rules.GET("", cfg.AdminHandler.ListPromptRules)
				rules.POST("", cfg.AdminHandler.CreatePromptRule)
				rules.PUT("/:ruleId", cfg.AdminHandler.UpdatePromptRule)
				rules.DELETE("/:ruleId", cfg.AdminHandler.DeletePromptRule)
			}

			triggers := admin.Group("/triggers")
			{
				triggers.GET("", cfg.AdminHandler.ListTriggers)
				triggers.POST("", cfg.AdminHandler.CreateTrigger)
				triggers.PUT("/:triggerId", cfg.AdminHandler.UpdateTrigger)
				triggers.DELETE("/:triggerId", cfg.AdminHandler.DeleteTrigger)
			}

			admin.GET("/backup-trigger", cfg.AdminHandler.GetBackupTrigger)
			admin.PUT("/backup-trigger", cfg.AdminHandler.SetBackupTrigger)

			admin.GET("/leads", cfg.AdminHandler.ListLeads)
		}
	}
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	// Apply global middleware
	r.Use(loggingMw.RequestLogger())
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(gin.Recovery())

	// Setup routes
	Setup(r, cfg)
}
