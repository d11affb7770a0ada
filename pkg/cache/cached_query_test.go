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
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCache is a simple mock implementation of ICache for testing
type mockCache struct {
	data   map[string]string
	getErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]string)}
}

func (m *mockCache) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	val, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (m *mockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = value.(string)
	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

type testItem struct {
	Code string `json:"code"`
}

func TestCachedQuery_GetCachesQueryResult(t *testing.T) {
	mc := newMockCache()
	calls := 0
	cq := NewCachedQuery(mc, "menu:", func(ctx context.Context, id string) ([]testItem, error) {
		calls++
		return []testItem{{Code: id}}, nil
	}, WithTTL[[]testItem](time.Minute))

	ctx := context.Background()
	got, err := cq.Get(ctx, "crm")
	require.NoError(t, err)
	assert.Equal(t, []testItem{{Code: "crm"}}, got)
	assert.Contains(t, mc.data, "menu:crm")

	got, err = cq.Get(ctx, "crm")
	require.NoError(t, err)
	assert.Equal(t, []testItem{{Code: "crm"}}, got)
	assert.Equal(t, 1, calls)
}

func TestCachedQuery_QueryError(t *testing.T) {
	boom := errors.New("boom")
	cq := NewCachedQuery(newMockCache(), "menu:", func(ctx context.Context, id string) ([]testItem, error) {
		return nil, boom
	})

	_, err := cq.Get(context.Background(), "crm")
	assert.ErrorIs(t, err, boom)
}

func TestCachedQuery_CacheErrorFallsBackToQuery(t *testing.T) {
	mc := newMockCache()
	mc.getErr = errors.New("connection refused")
	cq := NewCachedQuery(mc, "menu:", func(ctx context.Context, id string) (string, error) {
		return "fresh", nil
	})

	got, err := cq.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
}

func TestCachedQuery_CorruptEntry(t *testing.T) {
	mc := newMockCache()
	mc.data["menu:crm"] = "{not json"
	cq := NewCachedQuery[[]testItem](mc, "menu:", nil)

	_, ok := cq.Peek(context.Background(), "crm")
	assert.False(t, ok)

	_, err := cq.Get(context.Background(), "crm")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCachedQuery_SetAndInvalidate(t *testing.T) {
	mc := newMockCache()
	cq := NewCachedQuery[[]testItem](mc, "menu:", nil)
	ctx := context.Background()

	require.NoError(t, cq.Set(ctx, "crm", []testItem{{Code: "A"}}))
	got, ok := cq.Peek(ctx, "crm")
	require.True(t, ok)
	assert.Equal(t, "A", got[0].Code)

	require.NoError(t, cq.Invalidate(ctx, "crm"))
	_, ok = cq.Peek(ctx, "crm")
	assert.False(t, ok)
}

func TestCachedQuery_NilCache(t *testing.T) {
	calls := 0
	cq := NewCachedQuery(nil, "menu:", func(ctx context.Context, id string) (int, error) {
		calls++
		return 7, nil
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := cq.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 7, got)
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, cq.Invalidate(ctx, "k"))
}

func TestHybridCache(t *testing.T) {
	local := NewFastCache(FastCacheConfig{})
	remote := newMockCache()
	hc := NewHybridCache(local, remote, HybridCacheConfig{LocalTTLRatio: 0.5})
	ctx := context.Background()

	require.NoError(t, hc.Set(ctx, "k", "v", time.Minute).Err())
	assert.Equal(t, "v", remote.data["k"])
	assert.Equal(t, "v", local.Get(ctx, "k").Val())

	// remote-only entries are copied to local on read
	remote.data["r"] = "remote"
	assert.Equal(t, "remote", hc.Get(ctx, "r").Val())
	assert.Equal(t, "remote", local.Get(ctx, "r").Val())

	hc.Del(ctx, "k", "r")
	assert.ErrorIs(t, hc.Get(ctx, "k").Err(), redis.Nil)
	assert.Empty(t, remote.data)
}

func TestProvideICache(t *testing.T) {
	c, cleanup, err := ProvideICache(Conf{Type: TypeMemory}, Redis{})
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &FastCache{}, c)

	c, _, err = ProvideICache(Conf{Type: TypeNone}, Redis{})
	require.NoError(t, err)
	assert.Nil(t, c)

	_, _, err = ProvideICache(Conf{Type: "memcached"}, Redis{})
	assert.Error(t, err)
}
