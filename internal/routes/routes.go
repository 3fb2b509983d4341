package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-device-tracker/internal/config"
	"fleet-device-tracker/internal/delivery/http/handler"
	"fleet-device-tracker/internal/infrastructure/database/postgres"
	"fleet-device-tracker/internal/ingestion"
	"fleet-device-tracker/internal/logger"
	"fleet-device-tracker/internal/middleware"
	"fleet-device-tracker/internal/usecase/device"
	"fleet-device-tracker/internal/usecase/movement"
	"fleet-device-tracker/internal/usecase/telemetry"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, processor *ingestion.Processor) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers, CORS, request size limit, rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	router.GET("/metrics/ingestion", func(c *gin.Context) {
		c.JSON(http.StatusOK, processor.GetMetrics())
	})

	deviceRepository := postgres.NewDeviceRepository(db)
	refdataRepository := postgres.NewRefdataRepository(db)

	movementRepository := postgres.NewMovementRepository(db)
	movementService := movement.NewService(movementRepository, deviceRepository, refdataRepository)
	movementHandler := handler.NewMovementHandler(movementService)

	telemetryRepository := postgres.NewTelemetryRepository(db)
	telemetryService := telemetry.NewService(telemetryRepository, deviceRepository)
	telemetryHandler := handler.NewTelemetryHandler(telemetryService)

	deviceService := device.NewService(deviceRepository)
	deviceHandler := handler.NewDeviceHandler(deviceService)

	v1 := router.Group("/api/v1")
	{
		movementHandler.RegisterRoutes(v1)
		telemetryHandler.RegisterRoutes(v1)
		deviceHandler.RegisterRoutes(v1)
	}

	logger.Info("All routes initialized")
	return router
}
