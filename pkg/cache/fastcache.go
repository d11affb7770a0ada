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
	"sync"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/redis/go-redis/v9"
)

// defaultLocalMaxBytes is the default local cache size (32MB)
const defaultLocalMaxBytes = 32 * 1024 * 1024

// FastCacheConfig holds fastcache configuration
type FastCacheConfig struct {
	MaxBytes int // Maximum bytes for fastcache, default 32MB
}

// FastCache is an in-process ICache backed by VictoriaMetrics fastcache.
// Expired keys are dropped lazily on access.
type FastCache struct {
	cache *fastcache.Cache
	ttls  sync.Map // map[string]time.Time
	now   func() time.Time
}

// NewFastCache creates a new FastCache instance
func NewFastCache(conf FastCacheConfig) *FastCache {
	maxBytes := conf.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultLocalMaxBytes
	}
	return &FastCache{
		cache: fastcache.New(maxBytes),
		now:   time.Now,
	}
}

// Get returns the value for key, or redis.Nil when missing or expired.
func (fc *FastCache) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)

	if fc.expired(key) {
		fc.Del(ctx, key)
		cmd.SetErr(redis.Nil)
		return cmd
	}

	// values are stored with SetBig so snapshots above 64KB fit
	value := fc.cache.GetBig(nil, []byte(key))
	if value == nil {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(value))
	return cmd
}

// Set sets the value for the given key with expiration
func (fc *FastCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)

	data, err := toBytes(value)
	if err != nil {
		cmd.SetErr(err)
		return cmd
	}

	fc.cache.SetBig([]byte(key), data)
	if expiration > 0 {
		fc.ttls.Store(key, fc.now().Add(expiration))
	} else {
		fc.ttls.Delete(key)
	}

	cmd.SetVal("OK")
	return cmd
}

// Del deletes the given keys
func (fc *FastCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")

	var count int64
	for _, key := range keys {
		if fc.cache.Has([]byte(key)) {
			fc.cache.Del([]byte(key))
			count++
		}
		fc.ttls.Delete(key)
	}

	cmd.SetVal(count)
	return cmd
}

func (fc *FastCache) expired(key string) bool {
	exp, ok := fc.ttls.Load(key)
	if !ok {
		return false
	}
	return fc.now().After(exp.(time.Time))
}

// Clear removes every entry.
func (fc *FastCache) Clear() {
	fc.cache.Reset()
	fc.ttls.Range(func(k, _ any) bool {
		fc.ttls.Delete(k)
		return true
	})
}

// Stats returns fastcache statistics.
func (fc *FastCache) Stats() fastcache.Stats {
	var s fastcache.Stats
	fc.cache.UpdateStats(&s)
	return s
}
