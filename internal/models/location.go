package models

import (
	"time"
)

// ResponderLocation - последняя известная позиция сущности (ответчика, бригады).
// Хранится только в памяти, история не ведется: каждое обновление затирает предыдущее.
type ResponderLocation struct {
	EntityID    string    `json:"entity_id"`
	Label       string    `json:"label,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	LastUpdated time.Time `json:"last_updated"`
}

// ResponderStatus - позиция ответчика с производными полями.
// Online не хранится, а вычисляется по давности последнего обновления.
type ResponderStatus struct {
	ResponderLocation
	DistanceKm float64 `json:"distance_km"`
	Online     bool    `json:"online"`
}

// NearbyIncident - активный инцидент с расстоянием до точки поиска
type NearbyIncident struct {
	Incident   *Incident `json:"incident"`
	DistanceKm float64   `json:"distance_km"`
}

// RecommendedResponder - кандидат на выезд к инциденту
type RecommendedResponder struct {
	EntityID                string  `json:"entity_id"`
	Label                   string  `json:"label,omitempty"`
	DistanceKm              float64 `json:"distance_km"`
	EstimatedArrivalMinutes float64 `json:"estimated_arrival_minutes"`
}

// RouteRecommendation - ближайшие ответчики для одного инцидента.
// Маршрутизация наивная, по прямой: дорожная сеть не учитывается.
type RouteRecommendation struct {
	Incident   *Incident              `json:"incident"`
	Responders []RecommendedResponder `json:"recommended_responders"`
}
