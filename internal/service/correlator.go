package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/emsgrid/hotspot_detection_system/internal/config"
	"github.com/emsgrid/hotspot_detection_system/internal/geo"
	"github.com/emsgrid/hotspot_detection_system/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Correlator определяет контракт кластеризации инцидентов
type Correlator interface {
	// Correlate решает, относится ли новый инцидент к уже существующим,
	// и при совпадении объединяет их под одним cluster id.
	// Возвращает пустой id и nil-срез, если похожих инцидентов нет.
	Correlate(ctx context.Context, incident *models.Incident) (string, []*models.Incident, error)
}

type clusterCorrelator struct {
	repo      IncidentRepository
	logger    *logrus.Logger
	cfg       *config.Config
	groupLock *keyedMutex
}

// NewClusterCorrelator создает коррелятор поверх хранилища инцидентов
func NewClusterCorrelator(repo IncidentRepository, logger *logrus.Logger, cfg *config.Config) Correlator {
	return &clusterCorrelator{
		repo:      repo,
		logger:    logger,
		cfg:       cfg,
		groupLock: newKeyedMutex(),
	}
}

// Correlate ищет активные инциденты того же типа и категории в радиусе и
// временном окне, и присваивает им общий cluster id одним атомарным обновлением.
// Ошибка хранилища не роняет вызывающего: инцидент остается некластеризованным.
func (c *clusterCorrelator) Correlate(ctx context.Context, incident *models.Incident) (string, []*models.Incident, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service":     "correlator",
		"method":      "Correlate",
		"incident_id": incident.ID,
	})

	if !incident.HasCoordinates() {
		log.Debug("Incident has no coordinates, skipping correlation")
		return "", nil, nil
	}

	// Сериализуем read-modify-write по ключу группировки, иначе два одновременных
	// похожих инцидента могут породить два независимых кластера
	unlock := c.groupLock.Lock(groupKey(incident.UtilityType, incident.Category, incident.Zone))
	defer unlock()

	window := time.Duration(c.cfg.ClusterTimeWindowMinutes) * time.Minute
	candidates, err := c.repo.QueryIncidents(ctx, models.IncidentFilter{
		UtilityType:  incident.UtilityType,
		Category:     incident.Category,
		Status:       models.IncidentStatusActive,
		CreatedAfter: time.Now().UTC().Add(-window),
	})
	if err != nil {
		log.WithError(err).Error("Failed to query candidate incidents")
		return "", nil, wrapCorrelationErr(err)
	}

	matches := c.filterSimilar(incident, candidates, window)
	if len(matches) == 0 {
		log.Debug("No similar incidents found")
		return "", nil, nil
	}

	clusterID := c.pickClusterID(matches, log)

	ids := make([]uuid.UUID, 0, len(matches)+1)
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	ids = append(ids, incident.ID)

	// Одно обновление на весь набор: либо все инциденты получают cluster id, либо никто
	if err := c.repo.AssignClusterID(ctx, clusterID, ids); err != nil {
		log.WithError(err).Error("Failed to assign cluster id")
		return "", nil, wrapCorrelationErr(err)
	}

	for _, m := range matches {
		m.ClusterID = &clusterID
	}
	incident.ClusterID = &clusterID

	log.WithFields(logrus.Fields{"cluster_id": clusterID, "matches": len(matches)}).
		Info("Incident correlated into cluster")
	return clusterID, matches, nil
}

// filterSimilar оставляет кандидатов в радиусе, во временном окне и с совместимой зоной
func (c *clusterCorrelator) filterSimilar(incident *models.Incident, candidates []*models.Incident, window time.Duration) []*models.Incident {
	var matches []*models.Incident
	for _, cand := range candidates {
		if cand.ID == incident.ID {
			continue
		}
		// Кандидаты без координат в кластеризации не участвуют
		if !cand.HasCoordinates() {
			continue
		}
		if math.Abs(incident.CreatedAt.Sub(cand.CreatedAt).Minutes()) > window.Minutes() {
			continue
		}
		if incident.Zone != "" && cand.Zone != "" && incident.Zone != cand.Zone {
			continue
		}
		distance := geo.DistanceKm(*incident.Latitude, *incident.Longitude, *cand.Latitude, *cand.Longitude)
		if distance > c.cfg.ClusterRadiusKm {
			continue
		}
		matches = append(matches, cand)
	}
	return matches
}

// pickClusterID берет первый непустой cluster id в естественном порядке выборки,
// либо синтезирует новый. Если совпадения несут разные id (два независимых кластера
// пересеклись), побеждает первый найденный - члены второго кластера вне текущей
// выборки остаются со старым id. Случай логируется для разбора оператором.
func (c *clusterCorrelator) pickClusterID(matches []*models.Incident, log *logrus.Entry) string {
	var clusterID string
	for _, m := range matches {
		if m.ClusterID == nil || *m.ClusterID == "" {
			continue
		}
		if clusterID == "" {
			clusterID = *m.ClusterID
			continue
		}
		if *m.ClusterID != clusterID {
			log.WithFields(logrus.Fields{
				"winning_cluster_id":  clusterID,
				"stranded_cluster_id": *m.ClusterID,
			}).Warn("Overlapping clusters detected, first cluster id wins")
		}
	}
	if clusterID == "" {
		clusterID = fmt.Sprintf("CLUSTER_%s", time.Now().UTC().Format("20060102150405"))
	}
	return clusterID
}

// groupKey - ключ сериализации кластеризации
func groupKey(utilityType, category, zone string) string {
	return strings.Join([]string{utilityType, category, zone}, "|")
}

// wrapCorrelationErr отображает ошибки хранилища в таксономию движка
func wrapCorrelationErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", models.ErrCorrelationTimeout, err)
	}
	return fmt.Errorf("%w: %v", models.ErrCorrelationFailed, err)
}
