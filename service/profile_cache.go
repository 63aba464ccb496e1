package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"car-finance/domain"
	"car-finance/repository"
)

// ProfileCache is a read-through cache of credit profiles. A profile is
// fetched once and reused until it expires or is invalidated after a
// profile update.
type ProfileCache struct {
	source ProfileSource
	cache  repository.CacheRepository
	ttl    time.Duration
	group  singleflight.Group
	log    *logrus.Logger
}

func NewProfileCache(
	source ProfileSource,
	cache repository.CacheRepository,
	ttl time.Duration,
	log *logrus.Logger,
) *ProfileCache {
	return &ProfileCache{
		source: source,
		cache:  cache,
		ttl:    ttl,
		log:    log,
	}
}

func profileKey(userID string) string {
	return "profile:" + userID
}

// Get returns the cached profile or loads it. Concurrent misses for the same
// user share a single fetch.
func (c *ProfileCache) Get(ctx context.Context, userID string) (domain.CreditProfile, error) {
	key := profileKey(userID)
	if raw, ok := c.cache.Get(ctx, key); ok {
		var profile domain.CreditProfile
		if err := json.Unmarshal([]byte(raw), &profile); err == nil {
			return profile, nil
		}
		c.log.WithField("user_id", userID).Warn("dropping undecodable cached profile")
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		profile, err := c.source.FetchProfile(ctx, userID)
		if err != nil {
			return domain.CreditProfile{}, err
		}

		data, err := json.Marshal(profile)
		if err != nil {
			return profile, nil
		}
		if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
			c.log.WithError(err).WithField("user_id", userID).Warn("failed to cache profile")
		}
		return profile, nil
	})
	if err != nil {
		return domain.CreditProfile{}, fmt.Errorf("load profile %s: %w", userID, err)
	}
	return v.(domain.CreditProfile), nil
}

// Invalidate forgets the cached profile so the next Get fetches it again.
func (c *ProfileCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.cache.Delete(ctx, profileKey(userID)); err != nil {
		return fmt.Errorf("invalidate profile %s: %w", userID, err)
	}
	c.log.WithField("user_id", userID).Info("profile cache invalidated")
	return nil
}
