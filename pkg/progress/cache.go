package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/inkpace/inkpace/internal/event_bus"
	"github.com/inkpace/inkpace/pkg/user"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

var _ Service = (*CachedService)(nil)

// CachedService keeps progress snapshots in redis for a short, explicit TTL.
// It is a pure performance layer: staleness is bounded by the TTL and writes
// to goals or documents invalidate eagerly.
type CachedService struct {
	next  Service
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedService(next Service, cache *redis.Client, ttl time.Duration, eventBus *event_bus.EventBus) *CachedService {
	service := &CachedService{next: next, cache: cache, ttl: ttl}

	event_bus.SubscribeTyped[event_bus.GoalChanged](
		eventBus,
		"goal.changed",
		func(e event_bus.EventT[event_bus.GoalChanged]) error {
			service.invalidate(e.Context(), e.Data.UserId, e.Data.ProjectId)
			return nil
		},
	)
	event_bus.SubscribeTyped[event_bus.DocumentsSynced](
		eventBus,
		"documents.synced",
		func(e event_bus.EventT[event_bus.DocumentsSynced]) error {
			service.invalidate(e.Context(), e.Data.UserId, e.Data.ProjectId)
			return nil
		},
	)
	return service
}

func (s *CachedService) cacheKey(userId, projectId int) string {
	return fmt.Sprintf("progress:%d:%d", userId, projectId)
}

func (s *CachedService) invalidate(ctx context.Context, userId, projectId int) {
	if err := s.cache.Del(ctx, s.cacheKey(userId, projectId)).Err(); err != nil {
		log.Warnf("failed to invalidate progress cache for project %d: %v", projectId, err)
	}
}

func (s *CachedService) GetProjectProgress(ctx context.Context, projectId int) (ProgressSnapshot, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return ProgressSnapshot{}, err
	}
	key := s.cacheKey(userId, projectId)

	val, err := s.cache.Get(ctx, key).Result()
	if err == nil {
		var snapshot ProgressSnapshot
		if err := json.Unmarshal([]byte(val), &snapshot); err == nil {
			return snapshot, nil
		}
		log.Warnf("corrupted progress cache entry %s, dropping it", key)
		s.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Warnf("redis read error, falling through to live computation: %v", err)
	}

	snapshot, err := s.next.GetProjectProgress(ctx, projectId)
	if err != nil {
		return ProgressSnapshot{}, err
	}

	if data, err := json.Marshal(snapshot); err == nil {
		if setErr := s.cache.Set(ctx, key, data, s.ttl).Err(); setErr != nil {
			log.Warnf("redis write error: %v", setErr)
		}
	}
	return snapshot, nil
}
