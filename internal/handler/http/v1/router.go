package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты приема и просмотра инцидентов
	incidents := api.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/nearby", h.nearbyIncidents)
		incidents.GET("/:id", h.getIncident)
	}

	// Маршруты детекции и управления хотспотами
	hotspots := api.Group("/hotspots")
	{
		hotspots.POST("/detect", h.detectHotspots)
		hotspots.GET("/active", h.getActiveHotspots)
		hotspots.PUT("/:id/status", h.updateHotspotStatus)
	}

	// Маршруты оповещений
	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.PUT("/:id/acknowledge", h.acknowledgeAlert)
	}

	// Маршруты геопозиций и проксимити-запросов
	location := api.Group("/location")
	{
		location.POST("/update", h.updateLocation)
		location.GET("/nearby", h.nearbyResponders)
		location.GET("/routes/optimized", h.optimizedRoutes)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
