package v1

import "github.com/emsgrid/hotspot_detection_system/internal/models"

// DTOToIncidentModel преобразует DTO регистрации в доменную модель
func DTOToIncidentModel(dto CreateIncidentRequest) *models.Incident {
	return &models.Incident{
		Type:          dto.Type,
		Description:   dto.Description,
		Location:      dto.Location,
		UtilityType:   dto.UtilityType,
		Category:      dto.Category,
		Zone:          dto.Zone,
		Priority:      models.Priority(dto.Priority),
		SeverityLevel: dto.SeverityLevel,
		Latitude:      dto.Latitude,
		Longitude:     dto.Longitude,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:            model.ID,
		Type:          model.Type,
		Description:   model.Description,
		Location:      model.Location,
		UtilityType:   model.UtilityType,
		Category:      model.Category,
		Zone:          model.Zone,
		ClusterID:     model.ClusterID,
		Priority:      string(model.Priority),
		SeverityLevel: model.SeverityLevel,
		Latitude:      model.Latitude,
		Longitude:     model.Longitude,
		Status:        string(model.Status),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(incidents []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(incidents))
	for i, model := range incidents {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToHotspotResponse преобразует доменную модель хотспота в DTO для ответа
func ModelToHotspotResponse(model *models.Hotspot) *HotspotResponse {
	return &HotspotResponse{
		ID:                model.ID,
		Name:              model.Name,
		UtilityType:       model.UtilityType,
		Location:          model.Location,
		Latitude:          model.Latitude,
		Longitude:         model.Longitude,
		RadiusMeters:      model.RadiusMeters,
		Severity:          string(model.Severity),
		Description:       model.Description,
		IncidentCount:     model.IncidentCount,
		Threshold:         model.Threshold,
		TimeWindowMinutes: model.TimeWindowMinutes,
		Status:            string(model.Status),
		FirstDetected:     model.FirstDetected,
		LastUpdated:       model.LastUpdated,
		ResolvedAt:        model.ResolvedAt,
	}
}

// ModelsToHotspotResponses преобразует слайс моделей в слайс DTO
func ModelsToHotspotResponses(hotspots []*models.Hotspot) []*HotspotResponse {
	responses := make([]*HotspotResponse, len(hotspots))
	for i, model := range hotspots {
		responses[i] = ModelToHotspotResponse(model)
	}
	return responses
}

// ModelToAlertResponse преобразует доменную модель оповещения в DTO для ответа
func ModelToAlertResponse(model *models.HotspotAlert) *AlertResponse {
	return &AlertResponse{
		ID:             model.ID,
		HotspotID:      model.HotspotID,
		Title:          model.Title,
		Message:        model.Message,
		AlertLevel:     string(model.AlertLevel),
		Status:         string(model.Status),
		CreatedAt:      model.CreatedAt,
		AcknowledgedAt: model.AcknowledgedAt,
		AcknowledgedBy: model.AcknowledgedBy,
	}
}

// ModelsToAlertResponses преобразует слайс моделей в слайс DTO
func ModelsToAlertResponses(alerts []*models.HotspotAlert) []*AlertResponse {
	responses := make([]*AlertResponse, len(alerts))
	for i, model := range alerts {
		responses[i] = ModelToAlertResponse(model)
	}
	return responses
}
