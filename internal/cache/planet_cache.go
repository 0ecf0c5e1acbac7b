package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/planets-api/internal/domain"
)

const planetListKey = "planets:list"

// PlanetCache caches the full planet listing in Redis. All methods are
// nil-safe and degrade to misses, so an absent or unreachable Redis
// never breaks reads.
type PlanetCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewPlanetCache builds a cache around an optional Redis client.
func NewPlanetCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *PlanetCache {
	return &PlanetCache{client: client, ttl: ttl, logger: logger}
}

// GetList returns the cached listing and whether it was present.
func (c *PlanetCache) GetList(ctx context.Context) ([]domain.Planet, bool) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil, false
	}

	raw, err := c.client.Get(ctx, planetListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("planet cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var planets []domain.Planet
	if err := json.Unmarshal(raw, &planets); err != nil {
		c.logger.Debug("planet cache payload invalid", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}
	return planets, true
}

// SetList stores the listing under the configured TTL.
func (c *PlanetCache) SetList(ctx context.Context, planets []domain.Planet) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}

	raw, err := json.Marshal(planets)
	if err != nil {
		c.logger.Debug("planet cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, planetListKey, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("planet cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing. Called after every mutation.
func (c *PlanetCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, planetListKey).Err(); err != nil {
		c.logger.Debug("planet cache invalidate failed", zap.Error(err))
	}
}
