package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/emsgrid/hotspot_detection_system/internal/config"
	"github.com/emsgrid/hotspot_detection_system/internal/models"
	"github.com/emsgrid/hotspot_detection_system/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService service.IncidentService
	hotspotService  service.HotspotService
	locationService service.LocationService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(incidentService service.IncidentService, hotspotService service.HotspotService, locationService service.LocationService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		hotspotService:  hotspotService,
		locationService: locationService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Report a new incident
// @Description Register a new incident. The engine correlates it with nearby recent incidents and may trigger hotspot detection. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body CreateIncidentRequest true "Incident report"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToIncidentModel(input)
	if err := h.incidentService.CreateIncident(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(model))
}

// @Summary Get a list of incidents
// @Description Get a paginated list of all incidents. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Find incidents near a point
// @Description Get active incidents within a radius of a point, closest first. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius_km query number false "Search radius in kilometers" default(5)
// @Success 200 {array} models.NearbyIncident
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/nearby [get]
func (h *Handler) nearbyIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "nearbyIncidents")

	lat, lon, radiusKm, err := parseGeoQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidents, err := h.locationService.NearbyIncidents(c.Request.Context(), lat, lon, radiusKm)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCoordinate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
		log.WithError(err).Error("Failed to find nearby incidents")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, incidents)
}

// @Summary Run hotspot detection sweep
// @Description Re-scan recent active incidents and create or update hotspots for groups that crossed the threshold. Requires API key.
// @Tags Hotspots
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param utility_type query string false "Filter incidents by utility type"
// @Success 200 {array} HotspotResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /hotspots/detect [post]
func (h *Handler) detectHotspots(c *gin.Context) {
	log := h.logger.WithField("method", "detectHotspots")

	hotspots, err := h.hotspotService.SweepDetect(c.Request.Context(), c.Query("utility_type"))
	if err != nil {
		log.WithError(err).Error("Hotspot detection sweep failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToHotspotResponses(hotspots))
}

// @Summary Get active hotspots
// @Description Get active hotspots sorted by severity, Critical first. Requires API key.
// @Tags Hotspots
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param utility_type query string false "Filter by utility type"
// @Success 200 {array} HotspotResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /hotspots/active [get]
func (h *Handler) getActiveHotspots(c *gin.Context) {
	log := h.logger.WithField("method", "getActiveHotspots")

	hotspots, err := h.hotspotService.GetActiveHotspots(c.Request.Context(), c.Query("utility_type"))
	if err != nil {
		log.WithError(err).Error("Failed to get active hotspots")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToHotspotResponses(hotspots))
}

// @Summary Update hotspot status
// @Description Transition a hotspot to a new status. Resolved hotspots stop appearing in active queries. Requires API key.
// @Tags Hotspots
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Hotspot ID"
// @Param status body UpdateHotspotStatusRequest true "New status"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid hotspot ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Hotspot not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /hotspots/{id}/status [put]
func (h *Handler) updateHotspotStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hotspot ID"})
		return
	}
	log := h.logger.WithField("method", "updateHotspotStatus").WithField("id", id)

	var input UpdateHotspotStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.hotspotService.UpdateHotspotStatus(c.Request.Context(), id, models.HotspotStatus(input.Status)); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hotspot not found"})
			return
		}
		log.WithError(err).Error("Failed to update hotspot status in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Get hotspot alerts
// @Description Get all hotspot alerts, newest first. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} AlertResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")

	alerts, err := h.hotspotService.ListAlerts(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list alerts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Acknowledge an alert
// @Description Mark a hotspot alert as acknowledged. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Param ack body AcknowledgeAlertRequest true "Acknowledgement"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid alert ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id}/acknowledge [put]
func (h *Handler) acknowledgeAlert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert ID"})
		return
	}
	log := h.logger.WithField("method", "acknowledgeAlert").WithField("id", id)

	var input AcknowledgeAlertRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.hotspotService.AcknowledgeAlert(c.Request.Context(), id, input.AcknowledgedBy); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		log.WithError(err).Error("Failed to acknowledge alert in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Update entity location
// @Description Upsert the last known position of a responder or unit. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param location body LocationUpdateRequest true "Location update"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid request body or coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /location/update [post]
func (h *Handler) updateLocation(c *gin.Context) {
	var input LocationUpdateRequest
	log := h.logger.WithField("method", "updateLocation")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.locationService.UpdateLocation(c.Request.Context(), input.EntityID, input.Label, input.Latitude, input.Longitude); err != nil {
		if errors.Is(err, models.ErrInvalidCoordinate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
		log.WithError(err).Error("Failed to update location in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Find responders near a point
// @Description Get responders within a radius of a point, closest first, with derived online status. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius_km query number false "Search radius in kilometers" default(5)
// @Success 200 {array} models.ResponderStatus
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /location/nearby [get]
func (h *Handler) nearbyResponders(c *gin.Context) {
	log := h.logger.WithField("method", "nearbyResponders")

	lat, lon, radiusKm, err := parseGeoQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responders, err := h.locationService.NearbyResponders(c.Request.Context(), lat, lon, radiusKm)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCoordinate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
		log.WithError(err).Error("Failed to find nearby responders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, responders)
}

// @Summary Get optimized dispatch routes
// @Description For every active incident, recommend the nearest responders by straight-line distance. Road network is not considered. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param max_responders query int false "Responders per incident" default(5)
// @Success 200 {array} models.RouteRecommendation
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/routes/optimized [get]
func (h *Handler) optimizedRoutes(c *gin.Context) {
	log := h.logger.WithField("method", "optimizedRoutes")
	maxResponders, _ := strconv.Atoi(c.DefaultQuery("max_responders", "5"))

	routes, err := h.locationService.OptimizedRoutes(c.Request.Context(), maxResponders)
	if err != nil {
		log.WithError(err).Error("Failed to build optimized routes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, routes)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseGeoQuery разбирает координаты и радиус из query-параметров
func parseGeoQuery(c *gin.Context) (lat, lon, radiusKm float64, err error) {
	lat, err = strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return 0, 0, 0, errors.New("invalid lat parameter")
	}
	lon, err = strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return 0, 0, 0, errors.New("invalid lon parameter")
	}
	radiusKm, err = strconv.ParseFloat(c.DefaultQuery("radius_km", "5"), 64)
	if err != nil || radiusKm <= 0 {
		return 0, 0, 0, errors.New("invalid radius_km parameter")
	}
	return lat, lon, radiusKm, nil
}
