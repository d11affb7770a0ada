package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-arcade/menuroute/internal/config"
	"github.com/go-arcade/menuroute/internal/source"
	"github.com/go-arcade/menuroute/pkg/cache"
	"github.com/go-arcade/menuroute/pkg/menuroute"
	"github.com/go-arcade/menuroute/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	items map[string][]menuroute.MenuItem
	calls atomic.Int32
}

func (f *fakeSource) Load(_ context.Context, key string) ([]menuroute.MenuItem, error) {
	f.calls.Add(1)
	items, ok := f.items[key]
	if !ok {
		return nil, source.ErrItemsNotFound
	}
	return items, nil
}

// blockingSource holds Load until release is closed.
type blockingSource struct {
	items   []menuroute.MenuItem
	started chan struct{}
	release chan struct{}
}

func (b *blockingSource) Load(ctx context.Context, _ string) ([]menuroute.MenuItem, error) {
	close(b.started)
	select {
	case <-b.release:
		return b.items, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func sampleItems() []menuroute.MenuItem {
	return []menuroute.MenuItem{
		{Code: "DATA", ParentCode: menuroute.RootCode, Name: "Data", URL: "/datainput"},
		{Code: "BRAND", ParentCode: "DATA", Name: "Brand", URL: "/datainput/brand"},
		{Code: "DETAIL", ParentCode: "BRAND", Name: "Detail", URL: "/datainput/brand/:id", Icon: `{"hiddenMenu":true}`},
		{Code: "LOST", ParentCode: "NOPE", Name: "Lost", URL: "/lost"},
	}
}

func newTestService(t *testing.T, src source.ItemSource, c cache.ICache, routeConf config.RouteConfig) *MenuService {
	t.Helper()
	if routeConf.RouteBase == "" {
		routeConf.RouteBase = "/crm"
	}
	cacheConf := cache.Conf{}
	cacheConf.SetDefaults()
	s, err := NewMenuService(routeConf, src, c, cacheConf,
		metrics.NewMenuMetricsRecorder(prometheus.NewRegistry()), zap.NewNop().Sugar())
	require.NoError(t, err)
	return s
}

func TestMenuService_InitAndQuery(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil, nil, config.RouteConfig{})

	snap, err := s.Init(ctx, "crm", "", sampleItems())
	require.NoError(t, err)
	assert.Equal(t, "crm", snap.Key)
	assert.Equal(t, "/crm", snap.RouteBase)
	assert.Equal(t, buildSourcePush, snap.Source)
	assert.Equal(t, 4, snap.Items)
	assert.Equal(t, 4, snap.Routes)
	require.Len(t, snap.Warnings, 1)
	assert.Equal(t, menuroute.WarnOrphanNode, snap.Warnings[0].Kind)

	roots, err := s.Routes(ctx, "crm")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "DATA", roots[0].Meta.Code)

	flat, err := s.FlatRoutes(ctx, "crm")
	require.NoError(t, err)
	assert.Len(t, flat, 4)
	for _, r := range flat {
		assert.Nil(t, r.Children)
	}

	res, ok, err := s.Resolve(ctx, "crm", "/crm/datainput/brand/42")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "DETAIL", res.Route.Meta.Code)
	assert.Equal(t, map[string]string{"id": "42"}, res.Params)

	_, ok, err = s.Resolve(ctx, "crm", "/nowhere")
	require.NoError(t, err)
	assert.False(t, ok)

	chain, err := s.Breadcrumb(ctx, "crm", "/crm/datainput/brand/42")
	require.NoError(t, err)
	codes := make([]string, 0, len(chain))
	for _, r := range chain {
		codes = append(codes, r.Meta.Code)
	}
	assert.Equal(t, []string{"DATA", "BRAND", "DETAIL"}, codes)

	parsed, err := s.ParseURL(ctx, "crm", "/datainput/brand", "")
	require.NoError(t, err)
	assert.Equal(t, "/crm/datainput/brand", parsed.Path)

	assert.Equal(t, []string{"crm"}, s.Keys())
}

func TestMenuService_InitErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil, nil, config.RouteConfig{})

	tests := []struct {
		name  string
		key   string
		items []menuroute.MenuItem
		want  error
	}{
		{name: "empty key", key: "", items: sampleItems(), want: ErrEmptyKey},
		{name: "empty items", key: "crm", items: nil, want: ErrEmptyMenu},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Init(ctx, tt.key, "", tt.items)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMenuService_EmptyInitDropsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil, nil, config.RouteConfig{})

	_, err := s.Init(ctx, "crm", "", sampleItems())
	require.NoError(t, err)

	_, err = s.Init(ctx, "crm", "", []menuroute.MenuItem{})
	require.ErrorIs(t, err, ErrEmptyMenu)

	_, err = s.Routes(ctx, "crm")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMenuService_LoadFromSource(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{items: map[string][]menuroute.MenuItem{"crm": sampleItems()}}
	s := newTestService(t, src, nil, config.RouteConfig{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Load(ctx, "crm")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap, err := s.Load(ctx, "crm")
	require.NoError(t, err)
	assert.Equal(t, buildSourceOrigin, snap.Source)
	assert.Equal(t, int32(1), src.calls.Load())

	_, err = s.Load(ctx, "unknown")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMenuService_LoadFromCacheAfterReset(t *testing.T) {
	ctx := context.Background()
	c := cache.NewFastCache(cache.FastCacheConfig{})

	pusher := newTestService(t, nil, c, config.RouteConfig{})
	_, err := pusher.Init(ctx, "crm", "/other", sampleItems())
	require.NoError(t, err)

	// a second instance sharing the cache rebuilds the pushed items
	s := newTestService(t, nil, c, config.RouteConfig{})
	snap, err := s.Load(ctx, "crm")
	require.NoError(t, err)
	assert.Equal(t, buildSourceCache, snap.Source)
	assert.Equal(t, "/other", snap.RouteBase)

	assert.True(t, s.Reset(ctx, "crm"))
	assert.False(t, s.Reset(ctx, "crm"))
	_, err = s.Load(ctx, "crm")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMenuService_ComponentExpr(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil, nil, config.RouteConfig{ComponentExpr: `"@/views/" + viewPath + "/index.vue"`})

	_, err := s.Init(ctx, "crm", "", sampleItems())
	require.NoError(t, err)

	res, ok, err := s.Resolve(ctx, "crm", "/crm/datainput/brand")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "@/views/Datainput/Brand/index.vue", res.Route.ComponentPath)

	cacheConf := cache.Conf{}
	cacheConf.SetDefaults()
	_, err = NewMenuService(config.RouteConfig{ComponentExpr: `viewPath +`}, nil, nil, cacheConf, nil, nil)
	assert.Error(t, err)
}

func TestMenuService_SlowLoadDoesNotReplaceNewerInit(t *testing.T) {
	ctx := context.Background()
	c := cache.NewFastCache(cache.FastCacheConfig{})
	src := &blockingSource{
		items:   []menuroute.MenuItem{{Code: "OLD", ParentCode: menuroute.RootCode, URL: "/old"}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := newTestService(t, src, c, config.RouteConfig{})

	type result struct {
		snap *Snapshot
		err  error
	}
	loaded := make(chan result, 1)
	go func() {
		snap, err := s.Load(ctx, "k")
		loaded <- result{snap, err}
	}()
	<-src.started

	_, err := s.Init(ctx, "k", "", []menuroute.MenuItem{{Code: "NEW", ParentCode: menuroute.RootCode, URL: "/new"}})
	require.NoError(t, err)
	close(src.release)

	res := <-loaded
	require.NoError(t, res.err)
	assert.Equal(t, buildSourcePush, res.snap.Source)

	roots, err := s.Routes(ctx, "k")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "NEW", roots[0].Meta.Code)

	// the stale source items must not stay in the shared cache
	fresh := newTestService(t, nil, c, config.RouteConfig{})
	_, err = fresh.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
