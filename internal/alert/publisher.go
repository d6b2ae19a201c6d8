package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/emsgrid/hotspot_detection_system/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	alertQueueKey = "hotspot_alert_events"
)

// Event - структура события оповещения о хотспоте
type Event struct {
	AlertID       uuid.UUID         `json:"alert_id"`
	HotspotID     uuid.UUID         `json:"hotspot_id"`
	Title         string            `json:"title"`
	Message       string            `json:"message"`
	AlertLevel    models.AlertLevel `json:"alert_level"`
	Severity      models.Severity   `json:"severity"`
	Location      string            `json:"location"`
	IncidentCount int               `json:"incident_count"`
	Timestamp     time.Time         `json:"timestamp"`
}

// Publisher - интерфейс для публикации оповещений подписчикам.
// Публикация fire-and-forget: движок не ждет доставки и не ретраит сам.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher - реализация Publisher, использующая очередь Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие оповещения в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert event to Redis: %w", err)
	}
	return nil
}
