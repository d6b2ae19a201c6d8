package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/emsgrid/hotspot_detection_system/internal/config"
	"github.com/emsgrid/hotspot_detection_system/internal/locationstore"
	"github.com/emsgrid/hotspot_detection_system/internal/models"
	"github.com/emsgrid/hotspot_detection_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestLocationService — сервис геозапросов поверх реального хранилища позиций.
func newTestLocationService(t *testing.T) (*locationService, *locationstore.Store, *mocks.MockIncidentRepository) {
	ctrl := gomock.NewController(t)
	incidentsMock := mocks.NewMockIncidentRepository(ctrl)
	store := locationstore.New()

	cfg := &config.Config{
		ResponderOnlineMinutes: 15,
	}

	service := NewLocationService(store, incidentsMock, newTestLogger(), cfg)
	return service.(*locationService), store, incidentsMock
}

func TestUpdateAndGetLocation(t *testing.T) {
	// Подготовка
	service, _, _ := newTestLocationService(t)
	ctx := context.Background()

	// Действие
	err := service.UpdateLocation(ctx, "unit-1", "Бригада 1", 27.9506, -82.4572)
	require.NoError(t, err)
	status, getErr := service.GetLocation(ctx, "unit-1")

	// Проверки: свежее обновление дает online
	require.NoError(t, getErr)
	assert.Equal(t, "unit-1", status.EntityID)
	assert.Equal(t, 27.9506, status.Latitude)
	assert.True(t, status.Online)
}

func TestGetLocation_OfflineAfterWindow(t *testing.T) {
	// Подготовка: позиция обновлялась полчаса назад при окне в 15 минут
	service, store, _ := newTestLocationService(t)
	ctx := context.Background()
	stale := time.Now().UTC().Add(-30 * time.Minute)
	require.NoError(t, store.Update("unit-2", "", 27.9506, -82.4572, stale))

	// Действие
	status, err := service.GetLocation(ctx, "unit-2")

	// Проверки
	require.NoError(t, err)
	assert.False(t, status.Online)
}

func TestGetLocation_NotFound(t *testing.T) {
	// Подготовка
	service, _, _ := newTestLocationService(t)
	ctx := context.Background()

	// Действие
	_, err := service.GetLocation(ctx, "ghost")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateLocation_InvalidCoordinates(t *testing.T) {
	// Подготовка
	service, store, _ := newTestLocationService(t)
	ctx := context.Background()

	// Действие
	err := service.UpdateLocation(ctx, "unit-3", "", 91.0, 0.0)

	// Проверки: ничего не записано
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
	_, getErr := store.Get("unit-3")
	assert.ErrorIs(t, getErr, models.ErrNotFound)
}

func TestNearbyResponders_SortedByDistance(t *testing.T) {
	// Подготовка
	service, store, _ := newTestLocationService(t)
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, store.Update("unit-far", "", 27.9706, -82.4572, now))
	require.NoError(t, store.Update("unit-near", "", 27.9516, -82.4572, now))
	require.NoError(t, store.Update("unit-out", "", 28.9506, -82.4572, now))

	// Действие
	responders, err := service.NearbyResponders(ctx, 27.9506, -82.4572, 5)

	// Проверки: unit-out вне радиуса, ближние отсортированы по расстоянию
	require.NoError(t, err)
	require.Len(t, responders, 2)
	assert.Equal(t, "unit-near", responders[0].EntityID)
	assert.Equal(t, "unit-far", responders[1].EntityID)
	assert.Less(t, responders[0].DistanceKm, responders[1].DistanceKm)
	assert.True(t, responders[0].Online)
}

func TestNearbyResponders_InvalidCoordinates(t *testing.T) {
	// Подготовка
	service, _, _ := newTestLocationService(t)
	ctx := context.Background()

	// Действие
	_, err := service.NearbyResponders(ctx, -120.0, 0.0, 5)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
}

func TestNearbyIncidents_FiltersAndSorts(t *testing.T) {
	// Подготовка
	service, _, incidentsMock := newTestLocationService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	far := newActiveIncident(27.9706, -82.4572, now)
	near := newActiveIncident(27.9516, -82.4572, now)
	outside := newActiveIncident(28.9506, -82.4572, now)
	noCoords := newActiveIncident(0, 0, now)
	noCoords.Latitude = nil
	noCoords.Longitude = nil

	// Ожидания
	incidentsMock.EXPECT().
		QueryIncidents(ctx, models.IncidentFilter{Status: models.IncidentStatusActive}).
		Return([]*models.Incident{far, near, outside, noCoords}, nil).
		Times(1)

	// Действие
	result, err := service.NearbyIncidents(ctx, 27.9506, -82.4572, 5)

	// Проверки
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, near.ID, result[0].Incident.ID)
	assert.Equal(t, far.ID, result[1].Incident.ID)
}

func TestOptimizedRoutes_NearestRespondersFirst(t *testing.T) {
	// Подготовка
	service, store, incidentsMock := newTestLocationService(t)
	ctx := context.Background()
	now := time.Now().UTC()
	incident := newActiveIncident(27.9506, -82.4572, now)

	require.NoError(t, store.Update("unit-a", "Бригада А", 27.9516, -82.4572, now))
	require.NoError(t, store.Update("unit-b", "Бригада Б", 27.9706, -82.4572, now))
	require.NoError(t, store.Update("unit-c", "Бригада В", 28.1006, -82.4572, now))

	// Ожидания
	incidentsMock.EXPECT().
		QueryIncidents(ctx, models.IncidentFilter{Status: models.IncidentStatusActive}).
		Return([]*models.Incident{incident}, nil).
		Times(1)

	// Действие
	routes, err := service.OptimizedRoutes(ctx, 2)

	// Проверки: два ближайших, оценка прибытия ~2 минуты на километр
	require.NoError(t, err)
	require.Len(t, routes, 1)
	require.Len(t, routes[0].Responders, 2)
	assert.Equal(t, "unit-a", routes[0].Responders[0].EntityID)
	assert.Equal(t, "unit-b", routes[0].Responders[1].EntityID)
	for _, r := range routes[0].Responders {
		assert.InDelta(t, r.DistanceKm*2, r.EstimatedArrivalMinutes, 0.1)
	}
}

func TestOptimizedRoutes_SkipsIncidentsWithoutCoordinates(t *testing.T) {
	// Подготовка
	service, _, incidentsMock := newTestLocationService(t)
	ctx := context.Background()
	noCoords := newActiveIncident(0, 0, time.Now().UTC())
	noCoords.Latitude = nil
	noCoords.Longitude = nil

	// Ожидания
	incidentsMock.EXPECT().
		QueryIncidents(ctx, gomock.Any()).
		Return([]*models.Incident{noCoords}, nil).
		Times(1)

	// Действие
	routes, err := service.OptimizedRoutes(ctx, 0)

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestOptimizedRoutes_QueryError(t *testing.T) {
	// Подготовка
	service, _, incidentsMock := newTestLocationService(t)
	ctx := context.Background()

	// Ожидания
	incidentsMock.EXPECT().
		QueryIncidents(ctx, gomock.Any()).
		Return(nil, fmt.Errorf("соединение потеряно")).
		Times(1)

	// Действие
	routes, err := service.OptimizedRoutes(ctx, 5)

	// Проверки
	require.Error(t, err)
	assert.ErrorContains(t, err, "could not build routes")
	assert.Nil(t, routes)
}
