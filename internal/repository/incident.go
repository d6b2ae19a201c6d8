package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/emsgrid/hotspot_detection_system/internal/models"
	"github.com/emsgrid/hotspot_detection_system/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IncidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return &IncidentRepository{
		db: db,
	}
}

const incidentColumns = `
	id,
	type,
	description,
	location,
	utility_type,
	category,
	zone,
	cluster_id,
	priority,
	severity_level,
	latitude,
	longitude,
	status,
	created_at,
	updated_at`

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (type, description, location, utility_type, category, zone, priority, severity_level, latitude, longitude, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.Type,
		incident.Description,
		incident.Location,
		incident.UtilityType,
		incident.Category,
		incident.Zone,
		incident.Priority,
		incident.SeverityLevel,
		incident.Latitude,
		incident.Longitude,
		incident.Status,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: incident %s", models.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// ListIncidents возвращает список инцидентов с пагинацией
func (r *IncidentRepository) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := `SELECT ` + incidentColumns + `
		FROM incidents
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;`

	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	return collectIncidents(rows)
}

// QueryIncidents возвращает инциденты по фильтру корреляции в порядке создания.
// Порядок стабилен: от него зависит, какой cluster id побеждает при пересечении.
func (r *IncidentRepository) QueryIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE 1=1`
	args := []any{}

	if filter.UtilityType != "" {
		args = append(args, filter.UtilityType)
		query += fmt.Sprintf(" AND utility_type = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Zone != "" {
		args = append(args, filter.Zone)
		query += fmt.Sprintf(" AND zone = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !filter.CreatedAfter.IsZero() {
		args = append(args, filter.CreatedAfter)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	query += " ORDER BY created_at ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	return collectIncidents(rows)
}

// AssignClusterID присваивает cluster id набору инцидентов одним обновлением,
// чтобы при сбое не оставалось частично размеченных кластеров
func (r *IncidentRepository) AssignClusterID(ctx context.Context, clusterID string, incidentIDs []uuid.UUID) error {
	query := `
		UPDATE incidents SET
			cluster_id = $1,
			updated_at = NOW()
		WHERE id = ANY($2);
	`
	if _, err := r.db.Exec(ctx, query, clusterID, incidentIDs); err != nil {
		return fmt.Errorf("failed to assign cluster id: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner) (*models.Incident, error) {
	incident := &models.Incident{}
	err := row.Scan(
		&incident.ID,
		&incident.Type,
		&incident.Description,
		&incident.Location,
		&incident.UtilityType,
		&incident.Category,
		&incident.Zone,
		&incident.ClusterID,
		&incident.Priority,
		&incident.SeverityLevel,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Status,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return incident, nil
}

func collectIncidents(rows pgx.Rows) ([]*models.Incident, error) {
	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error incidents iteration: %w", err)
	}
	return incidents, nil
}
