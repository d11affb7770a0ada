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
	"fmt"

	"github.com/google/wire"
)

// ProviderSet 提供缓存依赖（本地 FastCache / Redis / 混合）
var ProviderSet = wire.NewSet(ProvideICache)

// ProvideICache 按配置创建缓存实例，Type 为 none 时返回 nil
func ProvideICache(conf Conf, redisConf Redis) (ICache, func(), error) {
	conf.SetDefaults()
	noop := func() {}

	switch conf.Type {
	case TypeNone:
		return nil, noop, nil
	case TypeMemory:
		return NewFastCache(FastCacheConfig{MaxBytes: conf.LocalMaxBytes}), noop, nil
	case TypeRedis, TypeHybrid:
		client, err := NewRedisCmdable(redisConf)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() { _ = client.Close() }
		remote := NewRedisCache(client)
		if conf.Type == TypeRedis {
			return remote, cleanup, nil
		}
		local := NewFastCache(FastCacheConfig{MaxBytes: conf.LocalMaxBytes})
		return NewHybridCache(local, remote, HybridCacheConfig{LocalTTLRatio: conf.LocalTTLRatio}), cleanup, nil
	default:
		return nil, noop, fmt.Errorf("unsupported cache type %q", conf.Type)
	}
}
