package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority - закрытое перечисление приоритетов инцидента
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid проверяет, что значение входит в перечисление
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// IncidentStatus - статус жизненного цикла инцидента
type IncidentStatus string

const (
	IncidentStatusActive   IncidentStatus = "Active"
	IncidentStatusResolved IncidentStatus = "Resolved"
)

func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentStatusActive, IncidentStatusResolved:
		return true
	}
	return false
}

// Incident представляет зарегистрированный инцидент.
// Координаты и зона опциональны: часть заявок приходит без геопривязки,
// такие инциденты не участвуют в кластеризации по расстоянию.
type Incident struct {
	ID            uuid.UUID      `json:"id"`
	Type          string         `json:"type"`
	Description   string         `json:"description,omitempty"`
	Location      string         `json:"location"`
	UtilityType   string         `json:"utility_type"`
	Category      string         `json:"category"`
	Zone          string         `json:"zone,omitempty"`
	ClusterID     *string        `json:"cluster_id,omitempty"`
	Priority      Priority       `json:"priority"`
	SeverityLevel int            `json:"severity_level"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	Status        IncidentStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// HasCoordinates сообщает, есть ли у инцидента геопривязка
func (i *Incident) HasCoordinates() bool {
	return i.Latitude != nil && i.Longitude != nil
}

// IncidentFilter - параметры выборки инцидентов из хранилища
type IncidentFilter struct {
	UtilityType  string
	Category     string
	Zone         string
	Status       IncidentStatus
	CreatedAfter time.Time
}
