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
	"time"

	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/redis/go-redis/v9"
)

// HybridCacheConfig holds hybrid cache configuration
type HybridCacheConfig struct {
	LocalTTLRatio float64       // Ratio of remote TTL for local cache (0.0-1.0)
	LocalMaxTTL   time.Duration // Local TTL when the remote entry never expires
}

// HybridCache combines a local FastCache with a remote ICache (usually Redis).
// Reads try local first and backfill it from remote; writes go to both.
type HybridCache struct {
	local  *FastCache
	remote ICache
	config HybridCacheConfig
}

// NewHybridCache creates a new HybridCache instance
func NewHybridCache(local *FastCache, remote ICache, config HybridCacheConfig) *HybridCache {
	if config.LocalMaxTTL <= 0 {
		config.LocalMaxTTL = time.Hour
	}
	return &HybridCache{local: local, remote: remote, config: config}
}

func (hc *HybridCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if cmd := hc.local.Get(ctx, key); cmd.Err() == nil {
		log.Debugw("hybrid cache hit (local)", "key", key)
		return cmd
	}

	cmd := hc.remote.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warnw("hybrid cache remote get failed", "key", key, "error", err)
		}
		return cmd
	}

	log.Debugw("hybrid cache hit (remote)", "key", key)
	hc.local.Set(ctx, key, cmd.Val(), hc.localTTL(0))
	return cmd
}

// Set writes remote first; the local copy is only kept when remote succeeded.
func (hc *HybridCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := hc.remote.Set(ctx, key, value, expiration)
	if cmd.Err() != nil {
		hc.local.Del(ctx, key)
		return cmd
	}
	hc.local.Set(ctx, key, value, hc.localTTL(expiration))
	return cmd
}

func (hc *HybridCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	hc.local.Del(ctx, keys...)
	return hc.remote.Del(ctx, keys...)
}

// localTTL keeps local entries shorter than remote ones so that other
// instances' writes become visible.
func (hc *HybridCache) localTTL(remoteTTL time.Duration) time.Duration {
	if remoteTTL <= 0 {
		return hc.config.LocalMaxTTL
	}
	if hc.config.LocalTTLRatio > 0 && hc.config.LocalTTLRatio < 1.0 {
		return time.Duration(float64(remoteTTL) * hc.config.LocalTTLRatio)
	}
	return remoteTTL
}
