package main

import (
	"github.com/gin-gonic/gin"
	"github.com/inventorysoft/backend/internal/handlers"
	"github.com/inventorysoft/backend/internal/middleware"
	"github.com/inventorysoft/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(svc.db)
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, login rate limited)
		loginLimiter := middleware.NewRateLimiter(5, 10)
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Custom fields
			customFieldHandler := handlers.NewCustomFieldHandler(svc.db)
			protected.GET("/custom-fields", customFieldHandler.List)
			protected.POST("/custom-fields", customFieldHandler.Create)
			protected.POST("/custom-fields/purge-orphaned", customFieldHandler.PurgeOrphaned)
			protected.GET("/custom-fields/:id", customFieldHandler.Get)
			protected.PUT("/custom-fields/:id", customFieldHandler.Update)
			protected.DELETE("/custom-fields/:id", customFieldHandler.Delete)
			protected.POST("/custom-fields/:id/values", customFieldHandler.SetValue)
			protected.GET("/entities/:id/values", customFieldHandler.GetEntityValues)
			protected.DELETE("/entities/:id/values", customFieldHandler.DeleteEntityValues)

			// Table columns
			columnHandler := handlers.NewColumnConfigHandler(svc.db)
			protected.GET("/columns/:tableType", columnHandler.Get)
			protected.PUT("/columns/:tableType", columnHandler.Replace)
			protected.POST("/columns/:tableType/reset", columnHandler.Reset)
			protected.POST("/columns/:tableType/custom-field", columnHandler.AddCustomField)

			// Analytics charts
			analyticsHandler := handlers.NewAnalyticsHandler(svc.db)
			protected.GET("/charts", analyticsHandler.ListCharts)
			protected.POST("/charts", analyticsHandler.CreateChart)
			protected.POST("/charts/order", analyticsHandler.UpdateOrder)
			protected.POST("/charts/reset", analyticsHandler.ResetCharts)
			protected.PUT("/charts/:id", analyticsHandler.UpdateChart)
			protected.DELETE("/charts/:id", analyticsHandler.DeleteChart)
			protected.POST("/charts/:id/duplicate", analyticsHandler.DuplicateChart)
			protected.GET("/charts/:id/data", analyticsHandler.ChartData)

			// Preferences
			preferencesHandler := handlers.NewPreferencesHandler(svc.db)
			protected.GET("/preferences", preferencesHandler.Get)
			protected.PUT("/preferences", preferencesHandler.Update)

			// Inventory entities
			inventoryHandler := handlers.NewInventoryHandler(svc.db)
			protected.GET("/items", inventoryHandler.ListItems)
			protected.POST("/items", inventoryHandler.CreateItem)
			protected.GET("/items/:id", inventoryHandler.GetItem)
			protected.PUT("/items/:id", inventoryHandler.UpdateItem)
			protected.DELETE("/items/:id", inventoryHandler.DeleteItem)
			protected.GET("/sales", inventoryHandler.ListSales)
			protected.POST("/sales", inventoryHandler.CreateSale)
			protected.DELETE("/sales/:id", inventoryHandler.DeleteSale)
			protected.GET("/purchases", inventoryHandler.ListPurchases)
			protected.POST("/purchases", inventoryHandler.CreatePurchase)
			protected.DELETE("/purchases/:id", inventoryHandler.DeletePurchase)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			systemLogHandler := handlers.NewSystemLogHandler(svc.db)
			admin.GET("/system-logs", systemLogHandler.List)
		}
	}
}
