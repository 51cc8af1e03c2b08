package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/complysort/complysort/internal/api/handlers"
	"github.com/complysort/complysort/internal/api/middleware"
	"github.com/complysort/complysort/internal/config"
	"github.com/complysort/complysort/internal/database"
	"github.com/complysort/complysort/internal/joplin"
	"github.com/complysort/complysort/internal/metrics"
	"github.com/complysort/complysort/internal/organizer"
	"github.com/complysort/complysort/internal/services"
)

// Register wires up API routes and performs automatic migrations.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) (*services.RunService, error) {
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics.Register(registry)

	var joplinClient *joplin.Client
	var annotator organizer.Annotator
	if cfg.JoplinToken != "" {
		joplinClient = joplin.NewClient(cfg.JoplinURL, cfg.JoplinToken)
		annotator = joplinClient
	}

	authService := services.NewAuthService(db, cfg)
	notificationService := services.NewNotificationService(db)
	runService := services.NewRunService(db, cfg, annotator, notificationService)

	authHandler := handlers.NewAuthHandler(authService)
	frameworkHandler := handlers.NewFrameworkHandler(db)
	runHandler := handlers.NewRunHandler(runService)
	recordHandler := handlers.NewRecordHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db)
	healthHandler := handlers.NewHealthHandler(db, joplinClient)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	{
		api.GET("/healthz", healthHandler.Healthz)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/logout", authHandler.Logout)

		protected := api.Group("")
		protected.Use(middleware.Auth(authService))
		{
			protected.GET("/auth/me", authHandler.Me)

			protected.GET("/frameworks", frameworkHandler.List)
			protected.GET("/frameworks/:uuid", frameworkHandler.Get)
			protected.POST("/frameworks", frameworkHandler.Create)
			protected.PUT("/frameworks/:uuid", frameworkHandler.Update)
			protected.DELETE("/frameworks/:uuid", middleware.RequireAdmin(), frameworkHandler.Delete)

			protected.POST("/runs/classify", runHandler.Classify)
			protected.POST("/runs/rollback", middleware.RequireAdmin(), runHandler.Rollback)
			protected.GET("/runs", runHandler.List)
			protected.GET("/runs/:uuid", runHandler.Get)

			protected.GET("/records", recordHandler.List)

			protected.GET("/settings", settingsHandler.GetSettings)
			protected.PUT("/settings", middleware.RequireAdmin(), settingsHandler.UpdateSetting)
		}
	}

	return runService, nil
}
