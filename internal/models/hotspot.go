package models

import (
	"time"

	"github.com/google/uuid"
)

// Severity - уровень эскалации хотспота
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Rank возвращает порядковый номер уровня для сравнения и сортировки
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// HotspotStatus - статус жизненного цикла хотспота
type HotspotStatus string

const (
	HotspotStatusActive     HotspotStatus = "Active"
	HotspotStatusMonitoring HotspotStatus = "Monitoring"
	HotspotStatusResolved   HotspotStatus = "Resolved"
)

func (s HotspotStatus) Valid() bool {
	switch s {
	case HotspotStatusActive, HotspotStatusMonitoring, HotspotStatusResolved:
		return true
	}
	return false
}

// Hotspot - зона концентрации связанных инцидентов, требующая усиленного реагирования.
// Создается движком при превышении порога, закрывается только явным обновлением статуса.
type Hotspot struct {
	ID                uuid.UUID     `json:"id"`
	Name              string        `json:"name"`
	UtilityType       string        `json:"utility_type"`
	Location          string        `json:"location"`
	Latitude          float64       `json:"latitude"`
	Longitude         float64       `json:"longitude"`
	RadiusMeters      int           `json:"radius_meters"`
	Severity          Severity      `json:"severity"`
	Description       string        `json:"description,omitempty"`
	IncidentCount     int           `json:"incident_count"`
	Threshold         int           `json:"threshold"`
	TimeWindowMinutes int           `json:"time_window_minutes"`
	Status            HotspotStatus `json:"status"`
	FirstDetected     time.Time     `json:"first_detected"`
	LastUpdated       time.Time     `json:"last_updated"`
	ResolvedAt        *time.Time    `json:"resolved_at,omitempty"`
}

// AlertLevel - уровень оповещения, производный от серьезности хотспота
type AlertLevel string

const (
	AlertLevelInfo     AlertLevel = "Info"
	AlertLevelWarning  AlertLevel = "Warning"
	AlertLevelCritical AlertLevel = "Critical"
)

// AlertLevelForSeverity отображает серьезность хотспота в уровень оповещения
func AlertLevelForSeverity(s Severity) AlertLevel {
	switch s {
	case SeverityCritical:
		return AlertLevelCritical
	case SeverityHigh:
		return AlertLevelWarning
	default:
		return AlertLevelInfo
	}
}

// AlertStatus - статус оповещения
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "Active"
	AlertStatusAcknowledged AlertStatus = "Acknowledged"
	AlertStatusResolved     AlertStatus = "Resolved"
)

// HotspotAlert - оповещение, созданное при переходе состояния хотспота.
// Неизменяемо после создания, кроме полей подтверждения.
type HotspotAlert struct {
	ID             uuid.UUID   `json:"id"`
	HotspotID      uuid.UUID   `json:"hotspot_id"`
	Title          string      `json:"title"`
	Message        string      `json:"message"`
	AlertLevel     AlertLevel  `json:"alert_level"`
	Status         AlertStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	AcknowledgedAt *time.Time  `json:"acknowledged_at,omitempty"`
	AcknowledgedBy *string     `json:"acknowledged_by,omitempty"`
}
