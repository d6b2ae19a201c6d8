package service

import (
	"context"
	"fmt"

	"github.com/emsgrid/hotspot_detection_system/internal/config"
	"github.com/emsgrid/hotspot_detection_system/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error)
	QueryIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	// AssignClusterID присваивает cluster id набору инцидентов одним
	// обновлением: либо всем, либо никому
	AssignClusterID(ctx context.Context, clusterID string, incidentIDs []uuid.UUID) error
}

// IncidentService определяет контракт для приема и обогащения инцидентов
type IncidentService interface {
	CreateIncident(ctx context.Context, incident *models.Incident) error
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error)
}

type incidentService struct {
	repo       IncidentRepository
	correlator Correlator
	hotspots   HotspotService
	logger     *logrus.Logger
	cfg        *config.Config
}

// NewIncidentService создает сервис приема инцидентов
func NewIncidentService(repo IncidentRepository, correlator Correlator, hotspots HotspotService, logger *logrus.Logger, cfg *config.Config) IncidentService {
	return &incidentService{
		repo:       repo,
		correlator: correlator,
		hotspots:   hotspots,
		logger:     logger,
		cfg:        cfg,
	}
}

// CreateIncident сохраняет инцидент и затем запускает корреляцию и немедленную
// проверку порога хотспота. Корреляция - best-effort обогащение: ее сбой или
// таймаут логируются, инцидент остается сохраненным и некластеризованным.
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "CreateIncident",
		"category": incident.Category,
	})
	log.Info("Attempting to create a new incident")

	incident.Status = models.IncidentStatusActive
	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}
	log = log.WithField("incident_id", incident.ID)
	log.Info("Incident created successfully")

	cctx, cancel := context.WithTimeout(ctx, s.cfg.CorrelationTimeout)
	defer cancel()

	clusterID, related, err := s.correlator.Correlate(cctx, incident)
	if err != nil {
		log.WithError(err).Warn("Correlation failed, incident left unclustered")
		return nil
	}
	if clusterID == "" {
		return nil
	}

	if _, err := s.hotspots.EvaluateImmediate(ctx, incident, related); err != nil {
		log.WithError(err).Warn("Immediate hotspot evaluation failed")
	}
	return nil
}

// GetIncident получает инцидент по ID
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// ListIncidents возвращает список инцидентов с пагинацией
func (s *incidentService) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "incident",
		"method":    "ListIncidents",
		"page":      page,
		"page_size": pageSize,
	})

	incidents, err := s.repo.ListIncidents(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}
