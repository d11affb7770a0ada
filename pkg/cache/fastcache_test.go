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
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastCache_Set_Get(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{MaxBytes: 1024 * 1024})
	defer cache.Clear()

	ctx := context.Background()

	cmd := cache.Set(ctx, "test_key", "test_value", time.Hour)
	if cmd.Val() != "OK" {
		t.Errorf("expected OK, got %s", cmd.Val())
	}

	getCmd := cache.Get(ctx, "test_key")
	require.NoError(t, getCmd.Err())
	assert.Equal(t, "test_value", getCmd.Val())
}

func TestFastCache_Miss(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{})
	_, err := cache.Get(context.Background(), "missing").Result()
	assert.True(t, errors.Is(err, redis.Nil))
}

func TestFastCache_JSONValue(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{})
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "obj", map[string]int{"a": 1}, 0).Err())
	assert.JSONEq(t, `{"a":1}`, cache.Get(ctx, "obj").Val())
}

func TestFastCache_BigValue(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{})
	ctx := context.Background()

	big := strings.Repeat("x", 200*1024)
	require.NoError(t, cache.Set(ctx, "big", big, 0).Err())
	assert.Equal(t, big, cache.Get(ctx, "big").Val())
}

func TestFastCache_Expiration(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{})
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Set(ctx, "expire_key", "v", 100*time.Millisecond)
	assert.Equal(t, "v", cache.Get(ctx, "expire_key").Val())

	now = now.Add(time.Second)
	assert.ErrorIs(t, cache.Get(ctx, "expire_key").Err(), redis.Nil)

	// a later write without expiration clears the old deadline
	cache.Set(ctx, "expire_key", "v2", 0)
	now = now.Add(time.Hour)
	assert.Equal(t, "v2", cache.Get(ctx, "expire_key").Val())
}

func TestFastCache_Del(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{})
	ctx := context.Background()

	cache.Set(ctx, "a", "1", 0)
	cache.Set(ctx, "b", "2", 0)

	assert.Equal(t, int64(2), cache.Del(ctx, "a", "b", "c").Val())
	assert.ErrorIs(t, cache.Get(ctx, "a").Err(), redis.Nil)
}

func TestFastCache_Clear(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{})
	ctx := context.Background()

	cache.Set(ctx, "a", "1", time.Minute)
	cache.Clear()
	assert.ErrorIs(t, cache.Get(ctx, "a").Err(), redis.Nil)
}
