package cache

import (
	"context"
	"sync"
	"time"

	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"github.com/mentoapp/mentoapp-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	mentorsKey       = "mentors:all"
	mentorCacheName  = "mentor_directory"
	cacheCheckPeriod = time.Minute
)

// MentorSource loads the mentor directory from storage
type MentorSource interface {
	ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

// MentorCacheInterface is the read-through mentor directory cache
type MentorCacheInterface interface {
	Get(ctx context.Context) ([]models.PublicUser, error)
	Invalidate()
}

// MentorCache keeps the list of mentors in memory for a fixed TTL.
// Any change to users or roles must call Invalidate.
type MentorCache struct {
	cache  *gocache.Cache
	source MentorSource
	ttl    time.Duration

	mu      sync.Mutex
	version uint64
}

// NewMentorCache creates a new mentor cache. A non-positive TTL disables caching.
func NewMentorCache(source MentorSource, ttlSeconds int) *MentorCache {
	ttl := time.Duration(ttlSeconds) * time.Second

	return &MentorCache{
		cache:  gocache.New(ttl, cacheCheckPeriod),
		source: source,
		ttl:    ttl,
	}
}

// Get returns the cached mentor list, loading it from the source on a miss
func (mc *MentorCache) Get(ctx context.Context) ([]models.PublicUser, error) {
	if data, found := mc.cache.Get(mentorsKey); found {
		if mentors, ok := data.([]models.PublicUser); ok {
			metrics.CacheHits.WithLabelValues(mentorCacheName).Inc()
			return mentors, nil
		}
		logger.Error("Invalid mentor cache data type")
		mc.cache.Delete(mentorsKey)
	}

	metrics.CacheMisses.WithLabelValues(mentorCacheName).Inc()
	return mc.refresh(ctx)
}

// Invalidate drops the cached list; the next Get reloads it
func (mc *MentorCache) Invalidate() {
	mc.mu.Lock()
	mc.version++
	mc.cache.Delete(mentorsKey)
	mc.mu.Unlock()

	metrics.CacheSize.WithLabelValues(mentorCacheName).Set(0)
	logger.Debug("Mentor cache invalidated")
}

func (mc *MentorCache) refresh(ctx context.Context) ([]models.PublicUser, error) {
	mc.mu.Lock()
	version := mc.version
	mc.mu.Unlock()

	users, err := mc.source.ListUsersByRole(ctx, models.RoleMentor)
	if err != nil {
		logger.Error("Failed to load mentors", zap.Error(err))
		return nil, err
	}

	mentors := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		mentors = append(mentors, u.Public())
	}

	if mc.ttl <= 0 {
		return mentors, nil
	}

	// A list loaded before an invalidation may already be stale
	mc.mu.Lock()
	if version == mc.version {
		mc.cache.Set(mentorsKey, mentors, mc.ttl)
		metrics.CacheSize.WithLabelValues(mentorCacheName).Set(float64(len(mentors)))
	}
	mc.mu.Unlock()

	logger.Debug("Mentor cache refreshed", zap.Int("count", len(mentors)))

	return mentors, nil
}
