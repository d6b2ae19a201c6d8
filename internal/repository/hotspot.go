package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/emsgrid/hotspot_detection_system/internal/models"
	"github.com/emsgrid/hotspot_detection_system/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const activeHotspotsCachePrefix = "hotspots:active:"

type HotspotRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewHotspotRepository(db *pgxpool.Pool, redisClient *redis.Client) service.HotspotRepository {
	return &HotspotRepository{
		db:          db,
		redisClient: redisClient,
	}
}

const hotspotColumns = `
	id,
	name,
	utility_type,
	location,
	latitude,
	longitude,
	radius_meters,
	severity,
	description,
	incident_count,
	threshold,
	time_window_minutes,
	status,
	first_detected,
	last_updated,
	resolved_at`

// FindActive возвращает активный хотспот по локации и типу коммуникации.
// Возвращает nil без ошибки, если такого хотспота нет.
func (r *HotspotRepository) FindActive(ctx context.Context, location, utilityType string) (*models.Hotspot, error) {
	query := `SELECT ` + hotspotColumns + `
		FROM hotspots
		WHERE location = $1 AND utility_type = $2 AND status = 'Active'
		LIMIT 1;`

	hotspot, err := scanHotspot(r.db.QueryRow(ctx, query, location, utilityType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active hotspot: %w", err)
	}
	return hotspot, nil
}

// Save вставляет хотспот или обновляет существующую запись по id
func (r *HotspotRepository) Save(ctx context.Context, hotspot *models.Hotspot) error {
	query := `
		INSERT INTO hotspots (id, name, utility_type, location, latitude, longitude, radius_meters, severity, description, incident_count, threshold, time_window_minutes, status, first_detected, last_updated, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			severity = EXCLUDED.severity,
			incident_count = EXCLUDED.incident_count,
			status = EXCLUDED.status,
			last_updated = EXCLUDED.last_updated,
			resolved_at = EXCLUDED.resolved_at;
	`
	_, err := r.db.Exec(ctx, query,
		hotspot.ID,
		hotspot.Name,
		hotspot.UtilityType,
		hotspot.Location,
		hotspot.Latitude,
		hotspot.Longitude,
		hotspot.RadiusMeters,
		hotspot.Severity,
		hotspot.Description,
		hotspot.IncidentCount,
		hotspot.Threshold,
		hotspot.TimeWindowMinutes,
		hotspot.Status,
		hotspot.FirstDetected,
		hotspot.LastUpdated,
		hotspot.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save hotspot: %w", err)
	}
	return nil
}

// UpdateStatus переводит хотспот в новый статус. Возвращает false,
// если хотспота с таким id не существует.
func (r *HotspotRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.HotspotStatus, resolvedAt *time.Time) (bool, error) {
	query := `
		UPDATE hotspots SET
			status = $1,
			resolved_at = $2,
			last_updated = NOW()
		WHERE id = $3;
	`
	cmdTag, err := r.db.Exec(ctx, query, status, resolvedAt, id)
	if err != nil {
		return false, fmt.Errorf("failed to update hotspot status: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// ListActive возвращает активные хотспоты, опционально по типу коммуникации
func (r *HotspotRepository) ListActive(ctx context.Context, utilityType string) ([]*models.Hotspot, error) {
	query := `SELECT ` + hotspotColumns + ` FROM hotspots WHERE status = 'Active'`
	args := []any{}
	if utilityType != "" {
		args = append(args, utilityType)
		query += " AND utility_type = $1"
	}
	query += " ORDER BY first_detected DESC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active hotspots: %w", err)
	}
	defer rows.Close()

	hotspots := make([]*models.Hotspot, 0)
	for rows.Next() {
		hotspot, err := scanHotspot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotspot row: %w", err)
		}
		hotspots = append(hotspots, hotspot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error hotspots iteration: %w", err)
	}
	return hotspots, nil
}

// SaveAlert сохраняет оповещение о хотспоте
func (r *HotspotRepository) SaveAlert(ctx context.Context, a *models.HotspotAlert) error {
	query := `
		INSERT INTO hotspot_alerts (id, hotspot_id, title, message, alert_level, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.HotspotID,
		a.Title,
		a.Message,
		a.AlertLevel,
		a.Status,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save hotspot alert: %w", err)
	}
	return nil
}

// ListAlerts возвращает оповещения, новые первыми
func (r *HotspotRepository) ListAlerts(ctx context.Context) ([]*models.HotspotAlert, error) {
	query := `
		SELECT id, hotspot_id, title, message, alert_level, status, created_at, acknowledged_at, acknowledged_by
		FROM hotspot_alerts
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotspot alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*models.HotspotAlert, 0)
	for rows.Next() {
		a := &models.HotspotAlert{}
		err := rows.Scan(
			&a.ID,
			&a.HotspotID,
			&a.Title,
			&a.Message,
			&a.AlertLevel,
			&a.Status,
			&a.CreatedAt,
			&a.AcknowledgedAt,
			&a.AcknowledgedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotspot alert row: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error alerts iteration: %w", err)
	}
	return alerts, nil
}

// AcknowledgeAlert помечает оповещение подтвержденным. Возвращает false,
// если оповещения с таким id не существует.
func (r *HotspotRepository) AcknowledgeAlert(ctx context.Context, id uuid.UUID, by string) (bool, error) {
	query := `
		UPDATE hotspot_alerts SET
			status = 'Acknowledged',
			acknowledged_at = NOW(),
			acknowledged_by = $1
		WHERE id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, by, id)
	if err != nil {
		return false, fmt.Errorf("failed to acknowledge alert: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// GetActiveHotspotsFromCache пытается получить список активных хотспотов из Redis
func (r *HotspotRepository) GetActiveHotspotsFromCache(ctx context.Context, utilityType string) ([]*models.Hotspot, error) {
	key := activeHotspotsCachePrefix + cacheSuffix(utilityType)
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active hotspots from cache: %w", err)
	}

	hotspots := make([]*models.Hotspot, 0)
	if err := json.Unmarshal(val, &hotspots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active hotspots from cache: %w", err)
	}
	return hotspots, nil
}

// SetActiveHotspotsCache сохраняет список активных хотспотов в Redis
func (r *HotspotRepository) SetActiveHotspotsCache(ctx context.Context, utilityType string, hotspots []*models.Hotspot) error {
	key := activeHotspotsCachePrefix + cacheSuffix(utilityType)
	val, err := json.Marshal(hotspots)
	if err != nil {
		return fmt.Errorf("failed to marshal active hotspots for cache: %w", err)
	}
	// Короткий срок жизни: список меняется на каждом проходе детекции
	if err := r.redisClient.Set(ctx, key, val, time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set active hotspots in cache: %w", err)
	}
	return nil
}

// InvalidateActiveHotspotsCache удаляет все кешированные списки хотспотов
func (r *HotspotRepository) InvalidateActiveHotspotsCache(ctx context.Context) error {
	iter := r.redisClient.Scan(ctx, 0, activeHotspotsCachePrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan hotspot cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.redisClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate hotspot cache: %w", err)
	}
	return nil
}

func cacheSuffix(utilityType string) string {
	if utilityType == "" {
		return "all"
	}
	return utilityType
}

func scanHotspot(row rowScanner) (*models.Hotspot, error) {
	hotspot := &models.Hotspot{}
	err := row.Scan(
		&hotspot.ID,
		&hotspot.Name,
		&hotspot.UtilityType,
		&hotspot.Location,
		&hotspot.Latitude,
		&hotspot.Longitude,
		&hotspot.RadiusMeters,
		&hotspot.Severity,
		&hotspot.Description,
		&hotspot.IncidentCount,
		&hotspot.Threshold,
		&hotspot.TimeWindowMinutes,
		&hotspot.Status,
		&hotspot.FirstDetected,
		&hotspot.LastUpdated,
		&hotspot.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return hotspot, nil
}
