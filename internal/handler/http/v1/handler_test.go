package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emsgrid/hotspot_detection_system/internal/config"
	"github.com/emsgrid/hotspot_detection_system/internal/models"
	"github.com/emsgrid/hotspot_detection_system/internal/service/mocks"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestRouter — роутер с моками сервисов для HTTP-тестов.
func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *mocks.MockIncidentService, *mocks.MockHotspotService, *mocks.MockLocationService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	incidentMock := mocks.NewMockIncidentService(ctrl)
	hotspotMock := mocks.NewMockHotspotService(ctrl)
	locationMock := mocks.NewMockLocationService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	if cfg == nil {
		cfg = &config.Config{}
	}

	handler := NewHandler(incidentMock, hotspotMock, locationMock, logger, cfg)

	router := gin.New()
	api := router.Group("/api/v1")
	if len(cfg.APIKeys) > 0 {
		api.Use(APIKeyAuthMiddleware(cfg, logger))
	}
	handler.RegisterRoutes(api)
	return router, incidentMock, hotspotMock, locationMock
}

func performRequest(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateIncident_Created(t *testing.T) {
	// Подготовка
	router, incidentMock, _, _ := newTestRouter(t, nil)
	input := CreateIncidentRequest{
		Type:          "Water Main Break",
		Location:      "Downtown Tampa",
		UtilityType:   "water",
		Category:      "Leak",
		Zone:          "North",
		Priority:      "High",
		SeverityLevel: 4,
	}

	// Ожидания
	incidentMock.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, inc *models.Incident) error {
			inc.ID = uuid.New()
			inc.Status = models.IncidentStatusActive
			return nil
		}).Times(1)

	// Действие
	w := performRequest(router, http.MethodPost, "/api/v1/incidents", input, nil)

	// Проверки
	require.Equal(t, http.StatusCreated, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "water", resp.UtilityType)
	assert.Equal(t, "Active", resp.Status)
}

func TestCreateIncident_InvalidBody(t *testing.T) {
	// Подготовка
	router, incidentMock, _, _ := newTestRouter(t, nil)

	// Ожидания: до сервиса запрос не доходит
	incidentMock.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	req := httptest.NewRequest(http.MethodPost, "/api/v1/incidents", bytes.NewReader([]byte("{не json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Проверки
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateIncident_ValidationFailure(t *testing.T) {
	// Подготовка: приоритет вне допустимого перечня
	router, incidentMock, _, _ := newTestRouter(t, nil)
	input := CreateIncidentRequest{
		Type:          "Water Main Break",
		Location:      "Downtown Tampa",
		UtilityType:   "water",
		Category:      "Leak",
		Priority:      "Urgent",
		SeverityLevel: 4,
	}

	// Ожидания
	incidentMock.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	w := performRequest(router, http.MethodPost, "/api/v1/incidents", input, nil)

	// Проверки
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetIncident_InvalidID(t *testing.T) {
	// Подготовка
	router, incidentMock, _, _ := newTestRouter(t, nil)

	// Ожидания
	incidentMock.EXPECT().GetIncident(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	w := performRequest(router, http.MethodGet, "/api/v1/incidents/not-a-uuid", nil, nil)

	// Проверки
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetActiveHotspots_OK(t *testing.T) {
	// Подготовка
	router, _, hotspotMock, _ := newTestRouter(t, nil)
	hotspots := []*models.Hotspot{
		{ID: uuid.New(), Name: "Hotspot - Leak in North", Severity: models.SeverityCritical},
		{ID: uuid.New(), Name: "Hotspot - Outage in South", Severity: models.SeverityLow},
	}

	// Ожидания
	hotspotMock.EXPECT().
		GetActiveHotspots(gomock.Any(), "water").
		Return(hotspots, nil).
		Times(1)

	// Действие
	w := performRequest(router, http.MethodGet, "/api/v1/hotspots/active?utility_type=water", nil, nil)

	// Проверки
	require.Equal(t, http.StatusOK, w.Code)
	var resp []HotspotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Critical", resp[0].Severity)
}

func TestDetectHotspots_OK(t *testing.T) {
	// Подготовка
	router, _, hotspotMock, _ := newTestRouter(t, nil)

	// Ожидания
	hotspotMock.EXPECT().
		SweepDetect(gomock.Any(), "").
		Return(nil, nil).
		Times(1)

	// Действие
	w := performRequest(router, http.MethodPost, "/api/v1/hotspots/detect", nil, nil)

	// Проверки
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateHotspotStatus_NotFound(t *testing.T) {
	// Подготовка
	router, _, hotspotMock, _ := newTestRouter(t, nil)
	hotspotID := uuid.New()

	// Ожидания
	hotspotMock.EXPECT().
		UpdateHotspotStatus(gomock.Any(), hotspotID, models.HotspotStatusResolved).
		Return(fmt.Errorf("%w: hotspot %s", models.ErrNotFound, hotspotID)).
		Times(1)

	// Действие
	w := performRequest(router, http.MethodPut, "/api/v1/hotspots/"+hotspotID.String()+"/status",
		UpdateHotspotStatusRequest{Status: "Resolved"}, nil)

	// Проверки
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateHotspotStatus_InvalidStatus(t *testing.T) {
	// Подготовка
	router, _, hotspotMock, _ := newTestRouter(t, nil)

	// Ожидания
	hotspotMock.EXPECT().UpdateHotspotStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	w := performRequest(router, http.MethodPut, "/api/v1/hotspots/"+uuid.NewString()+"/status",
		UpdateHotspotStatusRequest{Status: "Closed"}, nil)

	// Проверки
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAcknowledgeAlert_NotFoundResponse(t *testing.T) {
	// Подготовка
	router, _, hotspotMock, _ := newTestRouter(t, nil)
	alertID := uuid.New()

	// Ожидания
	hotspotMock.EXPECT().
		AcknowledgeAlert(gomock.Any(), alertID, "operator-1").
		Return(fmt.Errorf("%w: alert %s", models.ErrNotFound, alertID)).
		Times(1)

	// Действие
	w := performRequest(router, http.MethodPut, "/api/v1/alerts/"+alertID.String()+"/acknowledge",
		AcknowledgeAlertRequest{AcknowledgedBy: "operator-1"}, nil)

	// Проверки
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateLocation_InvalidCoordinates(t *testing.T) {
	// Подготовка
	router, _, _, locationMock := newTestRouter(t, nil)
	input := LocationUpdateRequest{
		EntityID:  "unit-1",
		Latitude:  45.0,
		Longitude: 45.0,
	}

	// Ожидания: валидатор пропускает, сервис отклоняет
	locationMock.EXPECT().
		UpdateLocation(gomock.Any(), "unit-1", "", 45.0, 45.0).
		Return(fmt.Errorf("%w: lat=45 lon=45", models.ErrInvalidCoordinate)).
		Times(1)

	// Действие
	w := performRequest(router, http.MethodPost, "/api/v1/location/update", input, nil)

	// Проверки
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNearbyResponders_BadRadius(t *testing.T) {
	// Подготовка
	router, _, _, locationMock := newTestRouter(t, nil)

	// Ожидания
	locationMock.EXPECT().NearbyResponders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	w := performRequest(router, http.MethodGet, "/api/v1/location/nearby?lat=27.95&lon=-82.45&radius_km=-1", nil, nil)

	// Проверки
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNearbyIncidents_OK(t *testing.T) {
	// Подготовка
	router, _, _, locationMock := newTestRouter(t, nil)
	found := []models.NearbyIncident{
		{Incident: &models.Incident{ID: uuid.New()}, DistanceKm: 0.42},
	}

	// Ожидания
	locationMock.EXPECT().
		NearbyIncidents(gomock.Any(), 27.95, -82.45, 5.0).
		Return(found, nil).
		Times(1)

	// Действие
	w := performRequest(router, http.MethodGet, "/api/v1/incidents/nearby?lat=27.95&lon=-82.45", nil, nil)

	// Проверки
	require.Equal(t, http.StatusOK, w.Code)
	var resp []models.NearbyIncident
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, 0.42, resp[0].DistanceKm)
}

func TestAPIKeyAuth_MissingKey(t *testing.T) {
	// Подготовка
	cfg := &config.Config{APIKeys: []string{"secret-key"}}
	router, incidentMock, _, _ := newTestRouter(t, cfg)

	// Ожидания
	incidentMock.EXPECT().ListIncidents(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	w := performRequest(router, http.MethodGet, "/api/v1/incidents", nil, nil)

	// Проверки
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	// Подготовка
	cfg := &config.Config{APIKeys: []string{"secret-key"}}
	router, incidentMock, _, _ := newTestRouter(t, cfg)

	// Ожидания
	incidentMock.EXPECT().
		ListIncidents(gomock.Any(), 1, 10).
		Return(nil, nil).
		Times(1)

	// Действие
	w := performRequest(router, http.MethodGet, "/api/v1/incidents", nil, map[string]string{"X-API-Key": "secret-key"})

	// Проверки
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuth_BearerToken(t *testing.T) {
	// Подготовка
	cfg := &config.Config{APIKeys: []string{"secret-key"}}
	router, incidentMock, _, _ := newTestRouter(t, cfg)

	// Ожидания
	incidentMock.EXPECT().
		ListIncidents(gomock.Any(), 1, 10).
		Return(nil, nil).
		Times(1)

	// Действие
	w := performRequest(router, http.MethodGet, "/api/v1/incidents", nil, map[string]string{"Authorization": "Bearer secret-key"})

	// Проверки
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck(t *testing.T) {
	// Подготовка
	router, _, _, _ := newTestRouter(t, nil)

	// Действие
	w := performRequest(router, http.MethodGet, "/api/v1/system/health", nil, nil)

	// Проверки
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
