package locationstore

import (
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/emsgrid/hotspot_detection_system/internal/geo"
	"github.com/emsgrid/hotspot_detection_system/internal/models"
)

const shardCount = 16

// shard - сегмент карты позиций со своим мьютексом
type shard struct {
	mu        sync.RWMutex
	locations map[string]models.ResponderLocation
}

// Store - потокобезопасное хранилище последних известных позиций сущностей.
// Сегментировано по ключу, чтобы обновления разных сущностей не конкурировали
// за один мьютекс. Обновление атомарно на уровне сущности, межсущностная
// атомарность не гарантируется.
type Store struct {
	shards [shardCount]*shard
}

// New создает пустое хранилище позиций
func New() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i] = &shard{locations: make(map[string]models.ResponderLocation)}
	}
	return s
}

func (s *Store) shardFor(entityID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(entityID))
	return s.shards[h.Sum32()%shardCount]
}

// Update сохраняет позицию сущности, затирая предыдущую.
// Координаты вне диапазона отклоняются с ErrInvalidCoordinate.
func (s *Store) Update(entityID, label string, lat, lon float64, timestamp time.Time) error {
	if !geo.ValidCoordinates(lat, lon) {
		return fmt.Errorf("%w: lat=%f lon=%f", models.ErrInvalidCoordinate, lat, lon)
	}

	sh := s.shardFor(entityID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.locations[entityID] = models.ResponderLocation{
		EntityID:    entityID,
		Label:       label,
		Latitude:    lat,
		Longitude:   lon,
		LastUpdated: timestamp,
	}
	return nil
}

// Get возвращает последнюю известную позицию сущности
func (s *Store) Get(entityID string) (models.ResponderLocation, error) {
	sh := s.shardFor(entityID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	loc, ok := sh.locations[entityID]
	if !ok {
		return models.ResponderLocation{}, fmt.Errorf("%w: entity %s", models.ErrNotFound, entityID)
	}
	return loc, nil
}

// Nearby возвращает все позиции в радиусе radiusKm от точки, по возрастанию
// расстояния. Радиус включающий: расстояние, равное радиусу, проходит фильтр.
// При равных расстояниях порядок определяется по entity id.
func (s *Store) Nearby(lat, lon, radiusKm float64) []models.ResponderLocation {
	type scored struct {
		loc      models.ResponderLocation
		distance float64
	}

	var matched []scored
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, loc := range sh.locations {
			d := geo.DistanceKm(lat, lon, loc.Latitude, loc.Longitude)
			if d <= radiusKm {
				matched = append(matched, scored{loc: loc, distance: d})
			}
		}
		sh.mu.RUnlock()
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].distance != matched[j].distance {
			return matched[i].distance < matched[j].distance
		}
		return matched[i].loc.EntityID < matched[j].loc.EntityID
	})

	result := make([]models.ResponderLocation, len(matched))
	for i, m := range matched {
		result[i] = m.loc
	}
	return result
}

// All возвращает снимок всех позиций
func (s *Store) All() []models.ResponderLocation {
	var result []models.ResponderLocation
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, loc := range sh.locations {
			result = append(result, loc)
		}
		sh.mu.RUnlock()
	}
	return result
}
