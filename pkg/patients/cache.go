package patients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chronicare-ai/platform/pkg/common/logger"
	"github.com/redis/go-redis/v9"
)

// CachedStore is a read-through Redis cache in front of the repository.
// Cache failures are logged and ignored: the lookup always has Postgres as
// the source of truth.
type CachedStore struct {
	inner Store
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedStore(inner Store, cache *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, cache: cache, ttl: ttl}
}

func (s *CachedStore) FindByID(ctx context.Context, id string) (*Record, error) {
	return s.lookup(ctx, fmt.Sprintf("patient:id:%s", id), func() (*Record, error) {
		return s.inner.FindByID(ctx, id)
	})
}

func (s *CachedStore) FindByUserID(ctx context.Context, userID string) (*Record, error) {
	return s.lookup(ctx, fmt.Sprintf("patient:user:%s", userID), func() (*Record, error) {
		return s.inner.FindByUserID(ctx, userID)
	})
}

func (s *CachedStore) Ready(ctx context.Context) bool {
	return s.inner.Ready(ctx)
}

func (s *CachedStore) lookup(ctx context.Context, key string, fetch func() (*Record, error)) (*Record, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var record Record
			if err := json.Unmarshal(data, &record); err == nil {
				return &record, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.WithError(err).WithField("key", key).Debug("patient cache read failed")
		}
	}

	record, err := fetch()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(record); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl).Err(); err != nil {
				logger.Log.WithError(err).WithField("key", key).Debug("patient cache write failed")
			}
		}
	}
	return record, nil
}
