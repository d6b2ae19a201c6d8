package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateIncidentRequest DTO для регистрации инцидента
// @Description DTO для регистрации инцидента
type CreateIncidentRequest struct {
	Type          string   `json:"type" validate:"required,min=2,max=100"`
	Description   string   `json:"description,omitempty"`
	Location      string   `json:"location" validate:"required,min=2,max=200"`
	UtilityType   string   `json:"utility_type" validate:"required,max=50"`
	Category      string   `json:"category" validate:"required,max=100"`
	Zone          string   `json:"zone,omitempty" validate:"max=50"`
	Priority      string   `json:"priority" validate:"required,oneof=Low Medium High"`
	SeverityLevel int      `json:"severity_level" validate:"required,gte=1,lte=5"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	Description   string    `json:"description,omitempty"`
	Location      string    `json:"location"`
	UtilityType   string    `json:"utility_type"`
	Category      string    `json:"category"`
	Zone          string    `json:"zone,omitempty"`
	ClusterID     *string   `json:"cluster_id,omitempty"`
	Priority      string    `json:"priority"`
	SeverityLevel int       `json:"severity_level"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HotspotResponse DTO для ответа с информацией о хотспоте
// @Description DTO для ответа с информацией о хотспоте
type HotspotResponse struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	UtilityType       string     `json:"utility_type"`
	Location          string     `json:"location"`
	Latitude          float64    `json:"latitude"`
	Longitude         float64    `json:"longitude"`
	RadiusMeters      int        `json:"radius_meters"`
	Severity          string     `json:"severity"`
	Description       string     `json:"description,omitempty"`
	IncidentCount     int        `json:"incident_count"`
	Threshold         int        `json:"threshold"`
	TimeWindowMinutes int        `json:"time_window_minutes"`
	Status            string     `json:"status"`
	FirstDetected     time.Time  `json:"first_detected"`
	LastUpdated       time.Time  `json:"last_updated"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
}

// UpdateHotspotStatusRequest DTO для обновления статуса хотспота
// @Description DTO для обновления статуса хотспота
type UpdateHotspotStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Active Monitoring Resolved"`
}

// AlertResponse DTO для ответа с информацией об оповещении
// @Description DTO для ответа с информацией об оповещении
type AlertResponse struct {
	ID             uuid.UUID  `json:"id"`
	HotspotID      uuid.UUID  `json:"hotspot_id"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	AlertLevel     string     `json:"alert_level"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	AcknowledgedBy *string    `json:"acknowledged_by,omitempty"`
}

// AcknowledgeAlertRequest DTO для подтверждения оповещения
// @Description DTO для подтверждения оповещения
type AcknowledgeAlertRequest struct {
	AcknowledgedBy string `json:"acknowledged_by" validate:"required,max=100"`
}

// LocationUpdateRequest DTO для обновления позиции сущности
// @Description DTO для обновления позиции сущности
type LocationUpdateRequest struct {
	EntityID  string  `json:"entity_id" validate:"required,max=100"`
	Label     string  `json:"label,omitempty" validate:"max=100"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}
