// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates that the key was not found in cache
var ErrCacheMiss = redis.Nil

// QueryFunc loads the value for id when it is not cached.
type QueryFunc[T any] func(ctx context.Context, id string) (T, error)

// CachedQuery provides a generic cache-aside pattern implementation.
// A nil cache turns every Get into a direct query.
type CachedQuery[T any] struct {
	cache     ICache
	prefix    string
	queryFunc QueryFunc[T]
	ttl       time.Duration
	logPrefix string
}

// CachedQueryOption configures CachedQuery behavior
type CachedQueryOption[T any] func(*CachedQuery[T])

// WithTTL sets the cache expiration time, 0 keeps entries forever.
func WithTTL[T any](ttl time.Duration) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.ttl = ttl
	}
}

// WithLogPrefix sets the log prefix for debugging
func WithLogPrefix[T any](prefix string) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.logPrefix = prefix
	}
}

// NewCachedQuery creates a CachedQuery storing entries under prefix+id.
func NewCachedQuery[T any](cache ICache, prefix string, queryFunc QueryFunc[T], opts ...CachedQueryOption[T]) *CachedQuery[T] {
	cq := &CachedQuery[T]{
		cache:     cache,
		prefix:    prefix,
		queryFunc: queryFunc,
		ttl:       time.Hour,
		logPrefix: "[CachedQuery]",
	}
	for _, opt := range opts {
		opt(cq)
	}
	return cq
}

// Key returns the cache key for id.
func (cq *CachedQuery[T]) Key(id string) string {
	return cq.prefix + id
}

// Get returns the cached value for id, querying and caching it on a miss.
func (cq *CachedQuery[T]) Get(ctx context.Context, id string) (T, error) {
	if v, ok := cq.Peek(ctx, id); ok {
		return v, nil
	}

	var zero T
	if cq.queryFunc == nil {
		return zero, ErrCacheMiss
	}

	log.Debugw(cq.logPrefix+" cache miss, querying", "key", cq.Key(id))
	result, err := cq.queryFunc(ctx, id)
	if err != nil {
		return zero, err
	}

	if err := cq.Set(ctx, id, result); err != nil {
		log.Warnw(cq.logPrefix+" failed to cache query result", "key", cq.Key(id), "error", err)
	}
	return result, nil
}

// Peek returns the cached value without querying.
func (cq *CachedQuery[T]) Peek(ctx context.Context, id string) (T, bool) {
	var result T
	if cq.cache == nil {
		return result, false
	}

	key := cq.Key(id)
	data, err := cq.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Warnw(cq.logPrefix+" cache get error", "key", key, "error", err)
		}
		return result, false
	}
	if err := sonic.UnmarshalString(data, &result); err != nil {
		log.Warnw(cq.logPrefix+" failed to unmarshal cached data", "key", key, "error", err)
		return result, false
	}
	log.Debugw(cq.logPrefix+" cache hit", "key", key)
	return result, true
}

// Set writes value for id.
func (cq *CachedQuery[T]) Set(ctx context.Context, id string, value T) error {
	if cq.cache == nil {
		return nil
	}
	data, err := sonic.MarshalString(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return cq.cache.Set(ctx, cq.Key(id), data, cq.ttl).Err()
}

// Invalidate removes the cached value for id.
func (cq *CachedQuery[T]) Invalidate(ctx context.Context, id string) error {
	if cq.cache == nil {
		return nil
	}
	return cq.cache.Del(ctx, cq.Key(id)).Err()
}
