package router

import (
	"github.com/gin-gonic/gin"

	"s2j/internal/handler"
	"s2j/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	exportH *handler.ExportHandler,
	syncH *handler.SyncHandler,
	catalogH *handler.CatalogHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Manifest routes
	exports := v1.Group("/saberis-exports")
	exports.GET("", exportH.List)
	exports.POST("/ingest", exportH.Ingest)
	exports.POST("/prune", exportH.Prune)

	// Target system routes
	v1.GET("/jobber-items", syncH.ListTargets)
	v1.POST("/send-to-jobber", syncH.Send)
	v1.POST("/clear-s2j-entries", syncH.Clear)

	// Catalog pricing routes
	catalogs := v1.Group("/catalogs")
	catalogs.GET("", catalogH.List)
	catalogs.GET("/:catalogId", catalogH.Get)
	catalogs.PUT("/:catalogId", catalogH.Upsert)

	return r
}
