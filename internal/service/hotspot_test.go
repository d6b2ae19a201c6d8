package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/emsgrid/hotspot_detection_system/internal/alert"
	alert_mocks "github.com/emsgrid/hotspot_detection_system/internal/alert/mocks"
	"github.com/emsgrid/hotspot_detection_system/internal/config"
	"github.com/emsgrid/hotspot_detection_system/internal/models"
	"github.com/emsgrid/hotspot_detection_system/internal/service/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHotspotService — вспомогательная функция для создания движка с моками.
func newTestHotspotService(t *testing.T) (*hotspotService, *mocks.MockHotspotRepository, *mocks.MockIncidentRepository, *alert_mocks.MockPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockHotspotRepository(ctrl)
	incidentsMock := mocks.NewMockIncidentRepository(ctrl)
	publisherMock := alert_mocks.NewMockPublisher(ctrl)

	cfg := &config.Config{
		HotspotThreshold:         3,
		HotspotTimeWindowMinutes: 120,
		HotspotRadiusMeters:      500,
	}

	service := NewHotspotService(repoMock, incidentsMock, publisherMock, newTestLogger(), cfg)
	return service.(*hotspotService), repoMock, incidentsMock, publisherMock
}

func TestEvaluateImmediate_BelowThreshold(t *testing.T) {
	// Подготовка
	service, repoMock, _, publisherMock := newTestHotspotService(t)
	ctx := context.Background()
	now := time.Now().UTC()
	incident := newActiveIncident(27.9506, -82.4572, now)
	related := []*models.Incident{newActiveIncident(27.9530, -82.4580, now)}

	// Ожидания: два инцидента при пороге 3 — хранилище не трогается
	repoMock.EXPECT().FindActive(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	hotspot, err := service.EvaluateImmediate(ctx, incident, related)

	// Проверки
	require.NoError(t, err)
	assert.Nil(t, hotspot)
}

func TestEvaluateImmediate_CreatesHotspotAndAlert(t *testing.T) {
	// Подготовка
	service, repoMock, _, publisherMock := newTestHotspotService(t)
	ctx := context.Background()
	now := time.Now().UTC()
	incident := newActiveIncident(27.9506, -82.4572, now)
	related := []*models.Incident{
		newActiveIncident(27.9510, -82.4575, now.Add(-5*time.Minute)),
		newActiveIncident(27.9512, -82.4570, now.Add(-10*time.Minute)),
	}

	// Ожидания
	repoMock.EXPECT().
		FindActive(ctx, incident.Location, incident.UtilityType).
		Return(nil, nil).
		Times(1)
	repoMock.EXPECT().
		Save(ctx, gomock.Any()).
		Do(func(ctx context.Context, h *models.Hotspot) {
			assert.Equal(t, "Hotspot - Leak in North", h.Name)
			assert.Equal(t, "water", h.UtilityType)
			assert.Equal(t, incident.Location, h.Location)
			assert.Equal(t, 3, h.IncidentCount)
			assert.Equal(t, models.SeverityMedium, h.Severity)
			assert.Equal(t, models.HotspotStatusActive, h.Status)
			assert.Equal(t, 500, h.RadiusMeters)
			assert.Equal(t, 3, h.Threshold)
			assert.Equal(t, 120, h.TimeWindowMinutes)
			// Центроид трех точек лежит между ними
			assert.InDelta(t, 27.9509, h.Latitude, 0.001)
			assert.InDelta(t, -82.4572, h.Longitude, 0.001)
		}).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateActiveHotspotsCache(ctx).Return(nil).Times(1)
	repoMock.EXPECT().
		SaveAlert(ctx, gomock.Any()).
		Do(func(ctx context.Context, a *models.HotspotAlert) {
			assert.Contains(t, a.Message, "A medium priority hotspot has been detected in")
			assert.Contains(t, a.Message, "3 incidents in the last 120 minutes")
			assert.Equal(t, models.AlertLevelInfo, a.AlertLevel)
			assert.Equal(t, models.AlertStatusActive, a.Status)
		}).Return(nil).Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(ctx context.Context, event alert.Event) {
			assert.Equal(t, models.SeverityMedium, event.Severity)
			assert.Equal(t, incident.Location, event.Location)
			assert.Equal(t, 3, event.IncidentCount)
		}).Return(nil).Times(1)

	// Действие
	hotspot, err := service.EvaluateImmediate(ctx, incident, related)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, hotspot)
	assert.NotEqual(t, uuid.Nil, hotspot.ID)
}

func TestEvaluateImmediate_UpdatesExistingWithoutReAlert(t *testing.T) {
	// Подготовка
	service, repoMock, _, publisherMock := newTestHotspotService(t)
	ctx := context.Background()
	now := time.Now().UTC()
	incident := newActiveIncident(27.9506, -82.4572, now)
	related := []*models.Incident{
		newActiveIncident(27.9510, -82.4575, now),
		newActiveIncident(27.9512, -82.4570, now),
		newActiveIncident(27.9514, -82.4568, now),
	}

	existing := &models.Hotspot{
		ID:            uuid.New(),
		Location:      incident.Location,
		UtilityType:   incident.UtilityType,
		Severity:      models.SeverityMedium,
		IncidentCount: 3,
		Status:        models.HotspotStatusActive,
	}

	// Ожидания: серьезность осталась Medium — повторного оповещения нет
	repoMock.EXPECT().
		FindActive(ctx, incident.Location, incident.UtilityType).
		Return(existing, nil).
		Times(1)
	repoMock.EXPECT().Save(ctx, existing).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateActiveHotspotsCache(ctx).Return(nil).Times(1)
	repoMock.EXPECT().SaveAlert(gomock.Any(), gomock.Any()).Times(0)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	hotspot, err := service.EvaluateImmediate(ctx, incident, related)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, hotspot)
	assert.Equal(t, existing.ID, hotspot.ID)
	assert.Equal(t, 4, hotspot.IncidentCount)
	assert.Equal(t, models.SeverityMedium, hotspot.Severity)
}

func TestEvaluateImmediate_ReAlertsOnEscalation(t *testing.T) {
	// Подготовка
	service, repoMock, _, publisherMock := newTestHotspotService(t)
	ctx := context.Background()
	now := time.Now().UTC()
	incident := newActiveIncident(27.9506, -82.4572, now)
	var related []*models.Incident
	for i := 0; i < 4; i++ {
		related = append(related, newActiveIncident(27.9510, -82.4575, now))
	}

	existing := &models.Hotspot{
		ID:            uuid.New(),
		Location:      incident.Location,
		UtilityType:   incident.UtilityType,
		Severity:      models.SeverityMedium,
		IncidentCount: 3,
		Status:        models.HotspotStatusActive,
	}

	// Ожидания: пять инцидентов поднимают серьезность до High — оповещение уходит
	repoMock.EXPECT().
		FindActive(ctx, incident.Location, incident.UtilityType).
		Return(existing, nil).
		Times(1)
	repoMock.EXPECT().Save(ctx, existing).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateActiveHotspotsCache(ctx).Return(nil).Times(1)
	repoMock.EXPECT().
		SaveAlert(ctx, gomock.Any()).
		Do(func(ctx context.Context, a *models.HotspotAlert) {
			assert.Equal(t, models.AlertLevelWarning, a.AlertLevel)
			assert.Contains(t, a.Message, "A high priority hotspot has been detected in")
		}).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	hotspot, err := service.EvaluateImmediate(ctx, incident, related)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, hotspot)
	assert.Equal(t, models.SeverityHigh, hotspot.Severity)
	assert.Equal(t, 5, hotspot.IncidentCount)
}

func TestSweepDetect_GroupsAndAppliesThreshold(t *testing.T) {
	// Подготовка
	service, repoMock, incidentsMock, publisherMock := newTestHotspotService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// Группа Leak/North проходит порог, Outage/South — нет
	var recent []*models.Incident
	for i := 0; i < 3; i++ {
		inc := newActiveIncident(27.9510, -82.4575, now.Add(-time.Duration(i)*time.Minute))
		recent = append(recent, inc)
	}
	outage := newActiveIncident(27.9600, -82.4600, now)
	outage.Category = "Outage"
	outage.Zone = "South"
	recent = append(recent, outage)

	// Ожидания
	incidentsMock.EXPECT().
		QueryIncidents(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
			assert.Equal(t, models.IncidentStatusActive, filter.Status)
			assert.False(t, filter.CreatedAfter.IsZero())
			return recent, nil
		}).Times(1)
	repoMock.EXPECT().
		FindActive(ctx, gomock.Any(), "water").
		Return(nil, nil).
		Times(1)
	repoMock.EXPECT().
		Save(ctx, gomock.Any()).
		Do(func(ctx context.Context, h *models.Hotspot) {
			assert.Equal(t, "Hotspot - Leak in North", h.Name)
			assert.Equal(t, 3, h.IncidentCount)
		}).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateActiveHotspotsCache(ctx).Return(nil).Times(1)
	repoMock.EXPECT().SaveAlert(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	hotspots, err := service.SweepDetect(ctx, "")

	// Проверки
	require.NoError(t, err)
	require.Len(t, hotspots, 1)
	assert.Equal(t, models.SeverityMedium, hotspots[0].Severity)
}

func TestSweepDetect_QueryError(t *testing.T) {
	// Подготовка
	service, _, incidentsMock, _ := newTestHotspotService(t)
	ctx := context.Background()

	// Ожидания
	incidentsMock.EXPECT().
		QueryIncidents(ctx, gomock.Any()).
		Return(nil, fmt.Errorf("соединение потеряно")).
		Times(1)

	// Действие
	hotspots, err := service.SweepDetect(ctx, "water")

	// Проверки
	require.Error(t, err)
	assert.ErrorContains(t, err, "sweep failed")
	assert.Nil(t, hotspots)
}

func TestSweepDetect_DeadlineExceeded(t *testing.T) {
	// Подготовка
	service, _, incidentsMock, _ := newTestHotspotService(t)
	ctx := context.Background()

	// Ожидания
	incidentsMock.EXPECT().
		QueryIncidents(ctx, gomock.Any()).
		Return(nil, context.DeadlineExceeded).
		Times(1)

	// Действие
	_, err := service.SweepDetect(ctx, "")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrSweepTimeout)
}

func TestGetActiveHotspots_SortsBySeverityAndCaches(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestHotspotService(t)
	ctx := context.Background()
	low := &models.Hotspot{ID: uuid.New(), Severity: models.SeverityLow}
	critical := &models.Hotspot{ID: uuid.New(), Severity: models.SeverityCritical}
	high := &models.Hotspot{ID: uuid.New(), Severity: models.SeverityHigh}

	// Ожидания
	// 1. Промах кеша
	repoMock.EXPECT().
		GetActiveHotspotsFromCache(ctx, "water").
		Return(nil, nil).
		Times(1)
	// 2. Чтение из БД
	repoMock.EXPECT().
		ListActive(ctx, "water").
		Return([]*models.Hotspot{low, critical, high}, nil).
		Times(1)
	// 3. Запись в кеш уже отсортированного списка
	repoMock.EXPECT().
		SetActiveHotspotsCache(ctx, "water", gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	hotspots, err := service.GetActiveHotspots(ctx, "water")

	// Проверки
	require.NoError(t, err)
	require.Len(t, hotspots, 3)
	assert.Equal(t, critical.ID, hotspots[0].ID)
	assert.Equal(t, high.ID, hotspots[1].ID)
	assert.Equal(t, low.ID, hotspots[2].ID)
}

func TestGetActiveHotspots_FromCache(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestHotspotService(t)
	ctx := context.Background()
	cached := []*models.Hotspot{{ID: uuid.New(), Severity: models.SeverityHigh}}

	// Ожидания: попадание в кеш, БД не трогается
	repoMock.EXPECT().
		GetActiveHotspotsFromCache(ctx, "").
		Return(cached, nil).
		Times(1)
	repoMock.EXPECT().ListActive(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	hotspots, err := service.GetActiveHotspots(ctx, "")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, cached, hotspots)
}

func TestUpdateHotspotStatus_ResolvedSetsTimestamp(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestHotspotService(t)
	ctx := context.Background()
	hotspotID := uuid.New()

	// Ожидания
	repoMock.EXPECT().
		UpdateStatus(ctx, hotspotID, models.HotspotStatusResolved, gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uuid.UUID, status models.HotspotStatus, resolvedAt *time.Time) (bool, error) {
			require.NotNil(t, resolvedAt)
			return true, nil
		}).Times(1)
	repoMock.EXPECT().InvalidateActiveHotspotsCache(ctx).Return(nil).Times(1)

	// Действие
	err := service.UpdateHotspotStatus(ctx, hotspotID, models.HotspotStatusResolved)

	// Проверки
	require.NoError(t, err)
}

func TestUpdateHotspotStatus_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestHotspotService(t)
	ctx := context.Background()
	hotspotID := uuid.New()

	// Ожидания
	repoMock.EXPECT().
		UpdateStatus(ctx, hotspotID, models.HotspotStatusMonitoring, nil).
		Return(false, nil).
		Times(1)

	// Действие
	err := service.UpdateHotspotStatus(ctx, hotspotID, models.HotspotStatusMonitoring)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAcknowledgeAlert_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestHotspotService(t)
	ctx := context.Background()
	alertID := uuid.New()

	// Ожидания
	repoMock.EXPECT().
		AcknowledgeAlert(ctx, alertID, "operator-1").
		Return(false, nil).
		Times(1)

	// Действие
	err := service.AcknowledgeAlert(ctx, alertID, "operator-1")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDetermineSeverity(t *testing.T) {
	tests := []struct {
		name              string
		incidentCount     int
		maxSeverityLevel  int
		highPriorityCount int
		expected          models.Severity
	}{
		{"десять инцидентов", 10, 1, 0, models.SeverityCritical},
		{"максимальный ущерб", 3, 5, 0, models.SeverityCritical},
		{"три высокоприоритетных", 3, 1, 3, models.SeverityCritical},
		{"пять инцидентов", 5, 1, 0, models.SeverityHigh},
		{"ущерб четвертого уровня", 3, 4, 0, models.SeverityHigh},
		{"два высокоприоритетных", 3, 1, 2, models.SeverityHigh},
		{"порог по количеству", 3, 1, 0, models.SeverityMedium},
		{"ущерб третьего уровня", 1, 3, 0, models.SeverityMedium},
		{"ниже всех порогов", 2, 2, 1, models.SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineSeverity(tt.incidentCount, tt.maxSeverityLevel, tt.highPriorityCount))
		})
	}
}

func TestBuildCandidate_CentroidAndAggregates(t *testing.T) {
	// Подготовка
	now := time.Now().UTC()
	ref := newActiveIncident(27.0, -82.0, now)
	ref.SeverityLevel = 2
	second := newActiveIncident(29.0, -84.0, now)
	second.SeverityLevel = 4
	second.Priority = models.PriorityHigh
	noCoords := newActiveIncident(0, 0, now)
	noCoords.Latitude = nil
	noCoords.Longitude = nil
	noCoords.SeverityLevel = 1

	// Действие
	candidate := buildCandidate(ref, []*models.Incident{ref, second, noCoords})

	// Проверки: центроид только по инцидентам с координатами
	assert.Equal(t, 3, candidate.incidentCount)
	assert.Equal(t, 4, candidate.maxSeverityLevel)
	assert.Equal(t, 1, candidate.highPriorityCount)
	assert.InDelta(t, 28.0, candidate.latitude, 0.0001)
	assert.InDelta(t, -83.0, candidate.longitude, 0.0001)
}
