package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/emsgrid/hotspot_detection_system/internal/config"
	"github.com/emsgrid/hotspot_detection_system/internal/geo"
	"github.com/emsgrid/hotspot_detection_system/internal/locationstore"
	"github.com/emsgrid/hotspot_detection_system/internal/models"
	"github.com/sirupsen/logrus"
)

// LocationService определяет контракт геозапросов и учета позиций
type LocationService interface {
	UpdateLocation(ctx context.Context, entityID, label string, lat, lon float64) error
	GetLocation(ctx context.Context, entityID string) (models.ResponderStatus, error)
	NearbyResponders(ctx context.Context, lat, lon, radiusKm float64) ([]models.ResponderStatus, error)
	NearbyIncidents(ctx context.Context, lat, lon, radiusKm float64) ([]models.NearbyIncident, error)
	OptimizedRoutes(ctx context.Context, maxResponders int) ([]models.RouteRecommendation, error)
}

type locationService struct {
	store     *locationstore.Store
	incidents IncidentRepository
	logger    *logrus.Logger
	cfg       *config.Config
}

// NewLocationService создает сервис геозапросов
func NewLocationService(store *locationstore.Store, incidents IncidentRepository, logger *logrus.Logger, cfg *config.Config) LocationService {
	return &locationService{
		store:     store,
		incidents: incidents,
		logger:    logger,
		cfg:       cfg,
	}
}

// UpdateLocation сохраняет позицию сущности
func (s *locationService) UpdateLocation(ctx context.Context, entityID, label string, lat, lon float64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "location",
		"method":    "UpdateLocation",
		"entity_id": entityID,
	})

	if err := s.store.Update(entityID, label, lat, lon, time.Now().UTC()); err != nil {
		log.WithError(err).Warn("Rejected location update")
		return fmt.Errorf("service: could not update location: %w", err)
	}
	log.Debug("Location updated")
	return nil
}

// GetLocation возвращает последнюю известную позицию сущности
func (s *locationService) GetLocation(ctx context.Context, entityID string) (models.ResponderStatus, error) {
	loc, err := s.store.Get(entityID)
	if err != nil {
		return models.ResponderStatus{}, fmt.Errorf("service: could not get location: %w", err)
	}
	return models.ResponderStatus{
		ResponderLocation: loc,
		Online:            s.isOnline(loc.LastUpdated),
	}, nil
}

// NearbyResponders возвращает ответчиков в радиусе, по возрастанию расстояния
func (s *locationService) NearbyResponders(ctx context.Context, lat, lon, radiusKm float64) ([]models.ResponderStatus, error) {
	if !geo.ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("%w: lat=%f lon=%f", models.ErrInvalidCoordinate, lat, lon)
	}

	locations := s.store.Nearby(lat, lon, radiusKm)
	result := make([]models.ResponderStatus, 0, len(locations))
	for _, loc := range locations {
		result = append(result, models.ResponderStatus{
			ResponderLocation: loc,
			DistanceKm:        round2(geo.DistanceKm(lat, lon, loc.Latitude, loc.Longitude)),
			Online:            s.isOnline(loc.LastUpdated),
		})
	}
	return result, nil
}

// NearbyIncidents возвращает активные инциденты с координатами в радиусе точки
func (s *locationService) NearbyIncidents(ctx context.Context, lat, lon, radiusKm float64) ([]models.NearbyIncident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "NearbyIncidents",
	})

	if !geo.ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("%w: lat=%f lon=%f", models.ErrInvalidCoordinate, lat, lon)
	}

	incidents, err := s.incidents.QueryIncidents(ctx, models.IncidentFilter{
		Status: models.IncidentStatusActive,
	})
	if err != nil {
		log.WithError(err).Error("Failed to query active incidents")
		return nil, fmt.Errorf("service: could not find nearby incidents: %w", err)
	}

	var result []models.NearbyIncident
	for _, inc := range incidents {
		if !inc.HasCoordinates() {
			continue
		}
		d := geo.DistanceKm(lat, lon, *inc.Latitude, *inc.Longitude)
		if d <= radiusKm {
			result = append(result, models.NearbyIncident{Incident: inc, DistanceKm: round2(d)})
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].DistanceKm < result[j].DistanceKm })
	return result, nil
}

// OptimizedRoutes подбирает для каждого активного инцидента maxResponders
// ближайших ответчиков по прямой. Оценка прибытия грубая: ~2 минуты на километр.
func (s *locationService) OptimizedRoutes(ctx context.Context, maxResponders int) ([]models.RouteRecommendation, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "OptimizedRoutes",
	})

	if maxResponders < 1 {
		maxResponders = 5
	}

	incidents, err := s.incidents.QueryIncidents(ctx, models.IncidentFilter{
		Status: models.IncidentStatusActive,
	})
	if err != nil {
		log.WithError(err).Error("Failed to query active incidents")
		return nil, fmt.Errorf("service: could not build routes: %w", err)
	}

	responders := s.store.All()

	var routes []models.RouteRecommendation
	for _, inc := range incidents {
		if !inc.HasCoordinates() {
			continue
		}

		recommended := make([]models.RecommendedResponder, 0, len(responders))
		for _, r := range responders {
			d := geo.DistanceKm(*inc.Latitude, *inc.Longitude, r.Latitude, r.Longitude)
			recommended = append(recommended, models.RecommendedResponder{
				EntityID:                r.EntityID,
				Label:                   r.Label,
				DistanceKm:              round2(d),
				EstimatedArrivalMinutes: math.Round(d*2*10) / 10,
			})
		}
		sort.Slice(recommended, func(i, j int) bool {
			if recommended[i].DistanceKm != recommended[j].DistanceKm {
				return recommended[i].DistanceKm < recommended[j].DistanceKm
			}
			return recommended[i].EntityID < recommended[j].EntityID
		})
		if len(recommended) > maxResponders {
			recommended = recommended[:maxResponders]
		}

		routes = append(routes, models.RouteRecommendation{Incident: inc, Responders: recommended})
	}

	return routes, nil
}

func (s *locationService) isOnline(lastUpdated time.Time) bool {
	return time.Since(lastUpdated) < time.Duration(s.cfg.ResponderOnlineMinutes)*time.Minute
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
