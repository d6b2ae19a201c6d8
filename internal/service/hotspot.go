package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/emsgrid/hotspot_detection_system/internal/alert"
	"github.com/emsgrid/hotspot_detection_system/internal/config"
	"github.com/emsgrid/hotspot_detection_system/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HotspotRepository определяет контракт для работы с бд хотспотов и оповещений
type HotspotRepository interface {
	FindActive(ctx context.Context, location, utilityType string) (*models.Hotspot, error)
	Save(ctx context.Context, hotspot *models.Hotspot) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.HotspotStatus, resolvedAt *time.Time) (bool, error)
	ListActive(ctx context.Context, utilityType string) ([]*models.Hotspot, error)
	SaveAlert(ctx context.Context, a *models.HotspotAlert) error
	ListAlerts(ctx context.Context) ([]*models.HotspotAlert, error)
	AcknowledgeAlert(ctx context.Context, id uuid.UUID, by string) (bool, error)
	GetActiveHotspotsFromCache(ctx context.Context, utilityType string) ([]*models.Hotspot, error)
	SetActiveHotspotsCache(ctx context.Context, utilityType string, hotspots []*models.Hotspot) error
	InvalidateActiveHotspotsCache(ctx context.Context) error
}

// HotspotService определяет контракт движка детекции хотспотов
type HotspotService interface {
	EvaluateImmediate(ctx context.Context, incident *models.Incident, related []*models.Incident) (*models.Hotspot, error)
	SweepDetect(ctx context.Context, utilityType string) ([]*models.Hotspot, error)
	GetActiveHotspots(ctx context.Context, utilityType string) ([]*models.Hotspot, error)
	UpdateHotspotStatus(ctx context.Context, id uuid.UUID, status models.HotspotStatus) error
	ListAlerts(ctx context.Context) ([]*models.HotspotAlert, error)
	AcknowledgeAlert(ctx context.Context, id uuid.UUID, by string) error
}

type hotspotService struct {
	repo      HotspotRepository
	incidents IncidentRepository
	publisher alert.Publisher
	logger    *logrus.Logger
	cfg       *config.Config
	// Сериализация find-or-create по ключу location+utilityType:
	// без нее конкурентные sweep и immediate-проверка создают дубли
	upsertLock *keyedMutex
}

// NewHotspotService создает движок детекции хотспотов
func NewHotspotService(repo HotspotRepository, incidents IncidentRepository, publisher alert.Publisher, logger *logrus.Logger, cfg *config.Config) HotspotService {
	return &hotspotService{
		repo:       repo,
		incidents:  incidents,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
		upsertLock: newKeyedMutex(),
	}
}

// hotspotCandidate - агрегат группы инцидентов, претендующей на хотспот
type hotspotCandidate struct {
	utilityType       string
	category          string
	zone              string
	location          string
	latitude          float64
	longitude         float64
	incidentCount     int
	maxSeverityLevel  int
	highPriorityCount int
}

// EvaluateImmediate проверяет порог сразу после кластеризации нового инцидента:
// сам инцидент плюс связанные. Ниже порога - хотспота нет, возвращается nil.
func (s *hotspotService) EvaluateImmediate(ctx context.Context, incident *models.Incident, related []*models.Incident) (*models.Hotspot, error) {
	if len(related)+1 < s.cfg.HotspotThreshold {
		return nil, nil
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":     "hotspot",
		"method":      "EvaluateImmediate",
		"incident_id": incident.ID,
	})
	log.Info("Cluster crossed hotspot threshold")

	group := append([]*models.Incident{incident}, related...)
	candidate := buildCandidate(incident, group)
	return s.createOrUpdateHotspot(ctx, candidate)
}

// SweepDetect - периодический проход: перечитывает недавние активные инциденты,
// группирует по (utilityType, category, zone) и проверяет порог для каждой группы
func (s *hotspotService) SweepDetect(ctx context.Context, utilityType string) ([]*models.Hotspot, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "hotspot",
		"method":       "SweepDetect",
		"utility_type": utilityType,
	})
	log.Info("Starting hotspot detection sweep")

	cutoff := time.Now().UTC().Add(-time.Duration(s.cfg.HotspotTimeWindowMinutes) * time.Minute)
	incidents, err := s.incidents.QueryIncidents(ctx, models.IncidentFilter{
		UtilityType:  utilityType,
		Status:       models.IncidentStatusActive,
		CreatedAfter: cutoff,
	})
	if err != nil {
		log.WithError(err).Error("Failed to load recent incidents for sweep")
		return nil, wrapSweepErr(err)
	}

	groups := make(map[string][]*models.Incident)
	for _, inc := range incidents {
		key := groupKey(inc.UtilityType, inc.Category, inc.Zone)
		groups[key] = append(groups[key], inc)
	}

	var hotspots []*models.Hotspot
	for _, group := range groups {
		if len(group) < s.cfg.HotspotThreshold {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].CreatedAt.Before(group[j].CreatedAt) })
		first := group[0]

		candidate := buildCandidate(first, group)
		hotspot, err := s.createOrUpdateHotspot(ctx, candidate)
		if err != nil {
			if errors.Is(err, models.ErrSweepTimeout) || errors.Is(err, context.DeadlineExceeded) {
				return hotspots, wrapSweepErr(err)
			}
			// Одна неудавшаяся группа не прерывает проход
			log.WithError(err).WithField("location", candidate.location).
				Error("Failed to upsert hotspot for group")
			continue
		}
		hotspots = append(hotspots, hotspot)
	}

	log.WithField("hotspots", len(hotspots)).Info("Hotspot detection sweep completed")
	return hotspots, nil
}

// createOrUpdateHotspot обновляет существующий активный хотспот той же локации
// и типа либо создает новый. Оповещение уходит при создании и при росте
// серьезности; инкременты счетчика на том же уровне оповещений не плодят.
func (s *hotspotService) createOrUpdateHotspot(ctx context.Context, candidate hotspotCandidate) (*models.Hotspot, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "hotspot",
		"method":       "createOrUpdateHotspot",
		"location":     candidate.location,
		"utility_type": candidate.utilityType,
	})

	unlock := s.upsertLock.Lock(candidate.location + "|" + candidate.utilityType)
	defer unlock()

	severity := determineSeverity(candidate.incidentCount, candidate.maxSeverityLevel, candidate.highPriorityCount)

	existing, err := s.repo.FindActive(ctx, candidate.location, candidate.utilityType)
	if err != nil {
		return nil, fmt.Errorf("service: could not look up existing hotspot: %w", err)
	}

	now := time.Now().UTC()
	if existing != nil {
		prevRank := existing.Severity.Rank()
		existing.IncidentCount = candidate.incidentCount
		existing.Severity = severity
		existing.LastUpdated = now
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, fmt.Errorf("service: could not update hotspot: %w", err)
		}
		s.invalidateCache(ctx, log)
		if severity.Rank() > prevRank {
			log.WithField("severity", severity).Info("Hotspot severity escalated")
			s.emitAlert(ctx, existing)
		}
		return existing, nil
	}

	zone := candidate.zone
	if zone == "" {
		zone = "Unknown Zone"
	}
	hotspot := &models.Hotspot{
		ID:                uuid.New(),
		Name:              fmt.Sprintf("Hotspot - %s in %s", candidate.category, zone),
		UtilityType:       candidate.utilityType,
		Location:          candidate.location,
		Latitude:          candidate.latitude,
		Longitude:         candidate.longitude,
		RadiusMeters:      s.cfg.HotspotRadiusMeters,
		Severity:          severity,
		Description:       fmt.Sprintf("Multiple %s incidents detected in %s", candidate.category, zone),
		IncidentCount:     candidate.incidentCount,
		Threshold:         s.cfg.HotspotThreshold,
		TimeWindowMinutes: s.cfg.HotspotTimeWindowMinutes,
		Status:            models.HotspotStatusActive,
		FirstDetected:     now,
		LastUpdated:       now,
	}
	if err := s.repo.Save(ctx, hotspot); err != nil {
		return nil, fmt.Errorf("service: could not create hotspot: %w", err)
	}
	s.invalidateCache(ctx, log)

	log.WithFields(logrus.Fields{"hotspot_id": hotspot.ID, "severity": severity}).
		Info("New hotspot detected")
	s.emitAlert(ctx, hotspot)
	return hotspot, nil
}

// emitAlert создает оповещение и публикует его подписчикам. Доставка
// fire-and-forget: сбой публикации логируется и не влияет на вызывающего.
func (s *hotspotService) emitAlert(ctx context.Context, hotspot *models.Hotspot) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "hotspot",
		"method":     "emitAlert",
		"hotspot_id": hotspot.ID,
	})

	a := &models.HotspotAlert{
		ID:        uuid.New(),
		HotspotID: hotspot.ID,
		Title:     fmt.Sprintf("Hotspot Detected: %s", hotspot.Name),
		Message: fmt.Sprintf(
			"A %s priority hotspot has been detected in %s. This area has experienced %d incidents in the last %d minutes. Immediate attention is required.",
			strings.ToLower(string(hotspot.Severity)), hotspot.Location, hotspot.IncidentCount, hotspot.TimeWindowMinutes),
		AlertLevel: models.AlertLevelForSeverity(hotspot.Severity),
		Status:     models.AlertStatusActive,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.SaveAlert(ctx, a); err != nil {
		log.WithError(err).Error("Failed to persist hotspot alert")
	}

	if err := s.publisher.Publish(ctx, alert.Event{
		AlertID:       a.ID,
		HotspotID:     hotspot.ID,
		Title:         a.Title,
		Message:       a.Message,
		AlertLevel:    a.AlertLevel,
		Severity:      hotspot.Severity,
		Location:      hotspot.Location,
		IncidentCount: hotspot.IncidentCount,
		Timestamp:     a.CreatedAt,
	}); err != nil {
		log.WithError(err).Error("Failed to publish hotspot alert")
	}
}

// GetActiveHotspots возвращает активные хотспоты, отсортированные по серьезности
// (Critical первым), с кешированием списка
func (s *hotspotService) GetActiveHotspots(ctx context.Context, utilityType string) ([]*models.Hotspot, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "hotspot",
		"method":       "GetActiveHotspots",
		"utility_type": utilityType,
	})

	if cached, err := s.repo.GetActiveHotspotsFromCache(ctx, utilityType); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.WithError(err).Warn("Active hotspots cache lookup failed")
	}

	hotspots, err := s.repo.ListActive(ctx, utilityType)
	if err != nil {
		log.WithError(err).Error("Failed to list active hotspots")
		return nil, fmt.Errorf("service: could not list active hotspots: %w", err)
	}

	sort.SliceStable(hotspots, func(i, j int) bool {
		return hotspots[i].Severity.Rank() > hotspots[j].Severity.Rank()
	})

	if err := s.repo.SetActiveHotspotsCache(ctx, utilityType, hotspots); err != nil {
		log.WithError(err).Warn("Failed to cache active hotspots")
	}
	return hotspots, nil
}

// UpdateHotspotStatus переводит хотспот в новый статус. Resolved фиксирует
// resolvedAt, после чего хотспот исчезает из активных выборок и обновлений
// больше не получает. Движок сам статусы не меняет.
func (s *hotspotService) UpdateHotspotStatus(ctx context.Context, id uuid.UUID, status models.HotspotStatus) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "hotspot",
		"method":     "UpdateHotspotStatus",
		"hotspot_id": id,
		"status":     status,
	})

	var resolvedAt *time.Time
	if status == models.HotspotStatusResolved {
		now := time.Now().UTC()
		resolvedAt = &now
	}

	ok, err := s.repo.UpdateStatus(ctx, id, status, resolvedAt)
	if err != nil {
		log.WithError(err).Error("Failed to update hotspot status")
		return fmt.Errorf("service: could not update hotspot status: %w", err)
	}
	if !ok {
		log.Warn("Attempted to update status of unknown hotspot")
		return fmt.Errorf("%w: hotspot %s", models.ErrNotFound, id)
	}

	s.invalidateCache(ctx, log)
	log.Info("Hotspot status updated")
	return nil
}

// ListAlerts возвращает все оповещения, новые первыми
func (s *hotspotService) ListAlerts(ctx context.Context) ([]*models.HotspotAlert, error) {
	alerts, err := s.repo.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}
	return alerts, nil
}

// AcknowledgeAlert помечает оповещение подтвержденным
func (s *hotspotService) AcknowledgeAlert(ctx context.Context, id uuid.UUID, by string) error {
	ok, err := s.repo.AcknowledgeAlert(ctx, id, by)
	if err != nil {
		return fmt.Errorf("service: could not acknowledge alert: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: alert %s", models.ErrNotFound, id)
	}
	return nil
}

func (s *hotspotService) invalidateCache(ctx context.Context, log *logrus.Entry) {
	if err := s.repo.InvalidateActiveHotspotsCache(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate active hotspots cache")
	}
}

// buildCandidate агрегирует группу инцидентов: центроид по инцидентам с
// координатами (0 если таких нет), максимальный уровень ущерба и число
// высокоприоритетных. Метки берутся с опорного инцидента.
func buildCandidate(ref *models.Incident, group []*models.Incident) hotspotCandidate {
	var latSum, lonSum float64
	var withCoords int
	maxSeverity := 0
	highPriority := 0
	for _, inc := range group {
		if inc.HasCoordinates() {
			latSum += *inc.Latitude
			lonSum += *inc.Longitude
			withCoords++
		}
		if inc.SeverityLevel > maxSeverity {
			maxSeverity = inc.SeverityLevel
		}
		if inc.Priority == models.PriorityHigh {
			highPriority++
		}
	}

	candidate := hotspotCandidate{
		utilityType:       ref.UtilityType,
		category:          ref.Category,
		zone:              ref.Zone,
		location:          ref.Location,
		incidentCount:     len(group),
		maxSeverityLevel:  maxSeverity,
		highPriorityCount: highPriority,
	}
	if withCoords > 0 {
		candidate.latitude = latSum / float64(withCoords)
		candidate.longitude = lonSum / float64(withCoords)
	}
	return candidate
}

// determineSeverity - детерминированное правило серьезности.
// Ветви проверяются по порядку, побеждает первая подошедшая.
func determineSeverity(incidentCount, maxSeverityLevel, highPriorityCount int) models.Severity {
	switch {
	case incidentCount >= 10 || maxSeverityLevel >= 5 || highPriorityCount >= 3:
		return models.SeverityCritical
	case incidentCount >= 5 || maxSeverityLevel >= 4 || highPriorityCount >= 2:
		return models.SeverityHigh
	case incidentCount >= 3 || maxSeverityLevel >= 3:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// wrapSweepErr отображает ошибки прохода в таксономию движка
func wrapSweepErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", models.ErrSweepTimeout, err)
	}
	return fmt.Errorf("service: sweep failed: %w", err)
}
