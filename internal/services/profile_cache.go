package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	types "github.com/yungbote/payona-backend/internal/domain"
	"github.com/yungbote/payona-backend/internal/observability"
	"github.com/yungbote/payona-backend/internal/platform/logger"
)

const (
	profileCachePrefix     = "payona:profile:"
	defaultProfileCacheTTL = time.Minute
)

// cachedProfileProvider is a read-through redis cache in front of another
// provider. Misses are not cached so a newly created profile shows up on the
// next call. Redis failures fall back to the inner provider.
type cachedProfileProvider struct {
	log     *logger.Logger
	inner   ProfileProvider
	rdb     *goredis.Client
	ttl     time.Duration
	metrics *observability.Metrics
}

func NewCachedProfileProvider(log *logger.Logger, inner ProfileProvider, rdb *goredis.Client, ttl time.Duration, metrics *observability.Metrics) ProfileProvider {
	if rdb == nil {
		return inner
	}
	if ttl <= 0 {
		ttl = defaultProfileCacheTTL
	}
	return &cachedProfileProvider{
		log:     log.With("service", "CachedProfileProvider"),
		inner:   inner,
		rdb:     rdb,
		ttl:     ttl,
		metrics: metrics,
	}
}

func profileCacheKey(userID uuid.UUID) string {
	return profileCachePrefix + userID.String()
}

func (c *cachedProfileProvider) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	got, err := c.GetProfiles(ctx, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	return got[userID], nil
}

func (c *cachedProfileProvider) GetProfiles(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*types.Profile, error) {
	out := make(map[uuid.UUID]*types.Profile, len(userIDs))
	ids := dedupeIDs(userIDs)
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = profileCacheKey(id)
	}
	missing := ids
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.metrics.IncProfileCache("error")
		c.log.Warn("profile cache read failed", "error", err)
	} else {
		missing = nil
		for i, v := range vals {
			raw, ok := v.(string)
			if !ok {
				missing = append(missing, ids[i])
				continue
			}
			var p types.Profile
			if err := json.Unmarshal([]byte(raw), &p); err != nil {
				missing = append(missing, ids[i])
				continue
			}
			out[ids[i]] = &p
		}
		c.metrics.AddProfileCache("hit", len(ids)-len(missing))
		c.metrics.AddProfileCache("miss", len(missing))
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := c.inner.GetProfiles(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(loaded) > 0 {
		pipe := c.rdb.Pipeline()
		for id, p := range loaded {
			out[id] = p
			raw, err := json.Marshal(p)
			if err != nil {
				continue
			}
			pipe.Set(ctx, profileCacheKey(id), raw, c.ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, goredis.Nil) {
			c.log.Warn("profile cache write failed", "error", err)
		}
	}
	return out, nil
}

// InvalidateProfile drops a cached profile. It is a no-op for providers
// without a cache.
func InvalidateProfile(ctx context.Context, p ProfileProvider, userID uuid.UUID) error {
	c, ok := p.(*cachedProfileProvider)
	if !ok {
		return nil
	}
	return c.rdb.Del(ctx, profileCacheKey(userID)).Err()
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
