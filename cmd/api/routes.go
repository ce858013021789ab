package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Map surface endpoints
	m := app.router.Group("/map")
	m.GET("/frame", app.handleGetFrame)
	m.GET("/ws", app.handleFrameStream)
	m.POST("/clicks", app.handleMapClick)
	m.POST("/markers/:id/select", app.handleMarkerClick)
	m.DELETE("/selection", app.handleOverlayClose)
	m.DELETE("/markers/:id", app.handleRemoveMarker)
	m.DELETE("/markers", app.handleClearMarkers)
	m.POST("/navigate", app.handleNavigate)
	m.GET("/markers", app.handleGetMarkers)
	m.GET("/markers/nearby", app.handleMarkersNearby)
	m.GET("/markers/within", app.handleMarkersWithin)
	m.GET("/markers/nearest", app.handleNearestMarkers)

	// Search endpoints
	app.router.PUT("/search/input", app.handleSearchInput)
	app.router.POST("/search/suggestions/:id/select", app.handleSuggestionSelected)

	// Geolocation
	app.router.POST("/locate", app.handleLocate)

	// Report form endpoints
	r := app.router.Group("/report")
	r.POST("/open", app.handleReportOpen)
	r.POST("/categories/:category/toggle", app.handleToggleCategory)
	r.PUT("/notes", app.handleSetNotes)
	r.POST("/submit", app.handleSubmitReport)
	r.POST("/cancel", app.handleCancelReport)

	// Prometheus metrics
	app.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{})))

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(301, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
