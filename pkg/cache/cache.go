package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"estepage_storefront/internal/model"
	"estepage_storefront/pkg/api"
	"estepage_storefront/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "storefront:"

// PropertyCache stores property API responses as JSON in Redis.
type PropertyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPropertyCache connects to redisURL (redis://...) and pings it.
func NewPropertyCache(ctx context.Context, redisURL string, ttl time.Duration) (*PropertyCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewWithClient(client, ttl), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *PropertyCache {
	return &PropertyCache{client: client, ttl: ttl}
}

func (c *PropertyCache) Close() error {
	return c.client.Close()
}

func (c *PropertyCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// get reports a miss as (false, nil).
func (c *PropertyCache) get(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *PropertyCache) set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err()
}

func propertyKey(id string) string { return "property:" + id }
func similarKey(id string) string  { return "similar:" + id }

// listKey is stable for equal options: url.Values.Encode sorts keys.
func listKey(opts api.ListOptions) string {
	q := url.Values{}
	for k, vs := range opts.Filters {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("limit", strconv.Itoa(opts.Limit))
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("sortBy", opts.SortBy)
	q.Set("order", opts.Order)
	return "list:" + q.Encode()
}

// Source is the uncached read side of the property API.
type Source interface {
	GetAllProperties(ctx context.Context, opts api.ListOptions) (*api.PropertyList, error)
	GetPropertyByID(ctx context.Context, id string) (*model.Property, error)
	GetSimilarProperties(ctx context.Context, id string) ([]model.Property, error)
}

// CachedSource reads through the cache. Cache failures degrade to the
// source and are only logged.
type CachedSource struct {
	src    Source
	cache  *PropertyCache
	logger *zap.Logger
}

func NewCachedSource(src Source, cache *PropertyCache, logger *zap.Logger) *CachedSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{src: src, cache: cache, logger: logger}
}

func (s *CachedSource) lookup(ctx context.Context, kind, key string, out interface{}) bool {
	hit, err := s.cache.get(ctx, key, out)
	if err != nil {
		s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		metrics.CacheLookups.WithLabelValues(kind, metrics.CacheHit).Inc()
	} else {
		metrics.CacheLookups.WithLabelValues(kind, metrics.CacheMiss).Inc()
	}
	return hit
}

func (s *CachedSource) store(ctx context.Context, key string, v interface{}) {
	if err := s.cache.set(ctx, key, v); err != nil {
		s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CachedSource) GetAllProperties(ctx context.Context, opts api.ListOptions) (*api.PropertyList, error) {
	key := listKey(opts)
	var cached api.PropertyList
	if s.lookup(ctx, "list", key, &cached) {
		return &cached, nil
	}
	list, err := s.src.GetAllProperties(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, list)
	return list, nil
}

func (s *CachedSource) GetPropertyByID(ctx context.Context, id string) (*model.Property, error) {
	var cached model.Property
	if s.lookup(ctx, "property", propertyKey(id), &cached) {
		return &cached, nil
	}
	p, err := s.src.GetPropertyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, propertyKey(id), p)
	return p, nil
}

func (s *CachedSource) GetSimilarProperties(ctx context.Context, id string) ([]model.Property, error) {
	var cached []model.Property
	if s.lookup(ctx, "similar", similarKey(id), &cached) {
		return cached, nil
	}
	similar, err := s.src.GetSimilarProperties(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, similarKey(id), similar)
	return similar, nil
}

// Refresh fetches opts from the source and overwrites the cached entry.
func (s *CachedSource) Refresh(ctx context.Context, opts api.ListOptions) (*api.PropertyList, error) {
	list, err := s.src.GetAllProperties(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := s.cache.set(ctx, listKey(opts), list); err != nil {
		return list, fmt.Errorf("cache write: %w", err)
	}
	return list, nil
}
