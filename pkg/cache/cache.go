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
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// ICache 定义缓存接口（抽象），未命中时返回 redis.Nil
type ICache interface {
	// Get 获取缓存值
	Get(ctx context.Context, key string) *redis.StringCmd
	// Set 设置缓存值
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	// Del 删除缓存
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const (
	TypeNone   = "none"
	TypeMemory = "memory"
	TypeRedis  = "redis"
	TypeHybrid = "hybrid"
)

// Conf selects the cache backend for menu snapshots.
type Conf struct {
	Type          string  `mapstructure:"type"`
	KeyPrefix     string  `mapstructure:"keyPrefix"`
	TTL           int     `mapstructure:"ttl"` // seconds, 0 means no expiration
	LocalMaxBytes int     `mapstructure:"localMaxBytes"`
	LocalTTLRatio float64 `mapstructure:"localTTLRatio"`
}

func (c *Conf) SetDefaults() {
	if c.Type == "" {
		c.Type = TypeMemory
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "menuroute:"
	}
	if c.LocalMaxBytes <= 0 {
		c.LocalMaxBytes = defaultLocalMaxBytes
	}
	if c.LocalTTLRatio <= 0 || c.LocalTTLRatio > 1 {
		c.LocalTTLRatio = 0.8
	}
}

// Expiration returns the configured TTL as a duration.
func (c Conf) Expiration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// toBytes converts a cache value the same way for every backend.
func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return sonic.Marshal(v)
	}
}
