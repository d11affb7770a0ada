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

package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-arcade/menuroute/internal/config"
	"github.com/go-arcade/menuroute/internal/source"
	"github.com/go-arcade/menuroute/pkg/cache"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/go-arcade/menuroute/pkg/menuroute"
	"github.com/go-arcade/menuroute/pkg/metrics"
	"github.com/go-arcade/menuroute/pkg/trace"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

var (
	ErrSnapshotNotFound = errors.New("menu snapshot not found")
	ErrEmptyMenu        = errors.New("menu items are empty")
	ErrEmptyKey         = errors.New("menu key is empty")
)

const (
	buildSourcePush   = "push"
	buildSourceCache  = "cache"
	buildSourceOrigin = "source"

	itemsCachePrefix = "items:"
)

// Snapshot summarises a compiled menu.
type Snapshot struct {
	Key       string              `json:"key"`
	RouteBase string              `json:"routeBase"`
	Source    string              `json:"source"`
	Items     int                 `json:"items"`
	Routes    int                 `json:"routes"`
	Warnings  []menuroute.Warning `json:"warnings"`
	BuiltAt   time.Time           `json:"builtAt"`
}

// menuPayload is what gets cached per key, so a restart rebuilds the same tree.
type menuPayload struct {
	RouteBase string               `json:"routeBase"`
	Items     []menuroute.MenuItem `json:"items"`
}

type snapshot struct {
	mu    sync.RWMutex
	route *menuroute.DynamicRoute
	info  Snapshot
}

// MenuService keeps one compiled DynamicRoute per menu key.
type MenuService struct {
	routeConf config.RouteConfig
	transform menuroute.TransformFunc
	source    source.ItemSource
	items     *cache.CachedQuery[menuPayload]
	metrics   *metrics.MenuMetricsRecorder
	logger    log.ILogger

	group     singleflight.Group
	mu        sync.RWMutex
	snapshots map[string]*snapshot
	// bumped on every install, guards against a slow Load overwriting a newer Init
	gens map[string]uint64
}

func NewMenuService(
	routeConf config.RouteConfig,
	src source.ItemSource,
	c cache.ICache,
	cacheConf cache.Conf,
	recorder *metrics.MenuMetricsRecorder,
	logger log.ILogger,
) (*MenuService, error) {
	transform, err := menuroute.ExprTransform(routeConf.ComponentExpr)
	if err != nil {
		return nil, errors.Wrap(err, "compile component expression")
	}
	if src == nil {
		src = source.NoneSource{}
	}
	if logger == nil {
		logger = log.GetLogger()
	}

	s := &MenuService{
		routeConf: routeConf,
		transform: transform,
		source:    src,
		metrics:   recorder,
		logger:    logger,
		snapshots: make(map[string]*snapshot),
		gens:      make(map[string]uint64),
	}
	s.items = cache.NewCachedQuery[menuPayload](
		c,
		cacheConf.KeyPrefix+itemsCachePrefix,
		s.queryItems,
		cache.WithTTL[menuPayload](cacheConf.Expiration()),
		cache.WithLogPrefix[menuPayload]("[MenuItems]"),
	)
	return s, nil
}

func (s *MenuService) queryItems(ctx context.Context, key string) (menuPayload, error) {
	items, err := s.source.Load(ctx, key)
	if err != nil {
		return menuPayload{}, err
	}
	if len(items) == 0 {
		return menuPayload{}, ErrEmptyMenu
	}
	return menuPayload{RouteBase: s.routeConf.RouteBase, Items: items}, nil
}

// Init compiles items under key, replacing any previous snapshot.
// An empty item list drops the snapshot and returns ErrEmptyMenu.
func (s *MenuService) Init(ctx context.Context, key, routeBase string, items []menuroute.MenuItem) (*Snapshot, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if len(items) == 0 {
		s.logger.Warnw("menu items are empty, dropping snapshot", "key", key)
		s.Reset(ctx, key)
		return nil, ErrEmptyMenu
	}
	if routeBase == "" {
		routeBase = s.routeConf.RouteBase
	}

	payload := menuPayload{RouteBase: routeBase, Items: items}
	snap := s.build(ctx, key, payload, buildSourcePush)
	gen := s.install(key, snap)

	if err := s.items.Set(ctx, key, payload); err != nil {
		s.logger.Warnw("failed to cache menu items", "key", key, "error", err)
	}
	s.dropIfSuperseded(ctx, key, gen)

	info := snap.summary()
	return &info, nil
}

// Load returns the snapshot for key, compiling it from the cache or the
// configured source when it is not in memory.
func (s *MenuService) Load(ctx context.Context, key string) (*Snapshot, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if snap, ok := s.get(key); ok {
		info := snap.summary()
		return &info, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		snap, gen := s.current(key)
		if snap != nil {
			return snap, nil
		}

		origin := buildSourceCache
		payload, ok := s.items.Peek(ctx, key)
		if !ok || len(payload.Items) == 0 {
			var err error
			if payload, err = s.items.Get(ctx, key); err != nil {
				return nil, err
			}
			origin = buildSourceOrigin
		}

		// an Init may have landed while the items were being fetched
		current, ok := s.installIfCurrent(key, gen, s.build(ctx, key, payload, origin))
		if !ok {
			s.logger.Infow("discarding superseded menu build", "key", key, "source", origin)
			if origin == buildSourceOrigin {
				s.dropIfSuperseded(ctx, key, gen)
			}
			if current == nil {
				return nil, ErrSnapshotNotFound
			}
		}
		return current, nil
	})
	if err != nil {
		if errors.Is(err, source.ErrNoSource) || errors.Is(err, source.ErrItemsNotFound) {
			return nil, errors.Wrap(ErrSnapshotNotFound, err.Error())
		}
		return nil, err
	}
	info := v.(*snapshot).summary()
	return &info, nil
}

// build compiles payload into a snapshot without publishing it.
func (s *MenuService) build(ctx context.Context, key string, payload menuPayload, origin string) *snapshot {
	ctx, span := trace.StartSpan(ctx, "menu.build")
	defer span.End()
	trace.AddSpanAttributes(span,
		attribute.String("menu.key", key),
		attribute.String("menu.source", origin),
		attribute.Int("menu.items", len(payload.Items)),
	)

	route := menuroute.NewDynamicRoute(menuroute.Options{
		RouteBase: payload.RouteBase,
		Transform: s.transform,
		OnWarning: func(w menuroute.Warning) {
			log.WithContext(ctx).Warnw("menu route warning", "key", key, "kind", w.Kind, "code", w.Code, "detail", w.Detail)
			s.metrics.RecordWarning(string(w.Kind))
		},
	})

	start := time.Now()
	route.GenerateRoutes(payload.Items)
	elapsed := time.Since(start)

	snap := &snapshot{
		route: route,
		info: Snapshot{
			Key:       key,
			RouteBase: payload.RouteBase,
			Source:    origin,
			Items:     len(payload.Items),
			Routes:    len(route.AllRoutes()),
			Warnings:  route.Warnings(),
			BuiltAt:   time.Now(),
		},
	}

	s.metrics.RecordBuild(key, origin, elapsed, snap.info.Routes)
	s.logger.Infow("menu routes compiled",
		"key", key,
		"source", origin,
		"items", snap.info.Items,
		"routes", snap.info.Routes,
		"warnings", len(snap.info.Warnings),
		"elapsed", elapsed.String(),
	)
	return snap
}

// install publishes snap unconditionally and returns its generation.
func (s *MenuService) install(key string, snap *snapshot) uint64 {
	s.mu.Lock()
	s.gens[key]++
	gen := s.gens[key]
	s.snapshots[key] = snap
	total := len(s.snapshots)
	s.mu.Unlock()

	s.metrics.SetSnapshots(total)
	return gen
}

// installIfCurrent publishes snap only when no other snapshot was installed
// for key since gen was read. Otherwise it returns the snapshot that won.
func (s *MenuService) installIfCurrent(key string, gen uint64, snap *snapshot) (*snapshot, bool) {
	s.mu.Lock()
	if s.gens[key] != gen {
		current := s.snapshots[key]
		s.mu.Unlock()
		return current, false
	}
	s.gens[key]++
	s.snapshots[key] = snap
	total := len(s.snapshots)
	s.mu.Unlock()

	s.metrics.SetSnapshots(total)
	return snap, true
}

// current returns the installed snapshot of key together with its generation.
func (s *MenuService) current(key string) (*snapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshots[key], s.gens[key]
}

func (s *MenuService) generation(key string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[key]
}

// dropIfSuperseded removes the cached items of key when a newer snapshot was
// installed after gen, so the cache never keeps items older than memory.
func (s *MenuService) dropIfSuperseded(ctx context.Context, key string, gen uint64) {
	if s.generation(key) == gen {
		return
	}
	if err := s.items.Invalidate(ctx, key); err != nil {
		s.logger.Warnw("failed to invalidate superseded menu items", "key", key, "error", err)
	}
}

func (s *MenuService) get(key string) (*snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[key]
	return snap, ok
}

func (s *MenuService) lookup(ctx context.Context, key string) (*snapshot, error) {
	if _, err := s.Load(ctx, key); err != nil {
		return nil, err
	}
	snap, ok := s.get(key)
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return snap, nil
}

func (sn *snapshot) summary() Snapshot {
	sn.mu.RLock()
	defer sn.mu.RUnlock()
	info := sn.info
	info.Warnings = append([]menuroute.Warning(nil), sn.info.Warnings...)
	return info
}

// Routes returns the root route records of key.
func (s *MenuService) Routes(ctx context.Context, key string) ([]*menuroute.RouteRecord, error) {
	snap, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	snap.mu.RLock()
	defer snap.mu.RUnlock()
	return snap.route.RootRoutes(), nil
}

// FlatRoutes returns every record of key without children.
func (s *MenuService) FlatRoutes(ctx context.Context, key string) ([]*menuroute.RouteRecord, error) {
	snap, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	snap.mu.RLock()
	defer snap.mu.RUnlock()

	all := snap.route.AllRoutes()
	flat := make([]*menuroute.RouteRecord, 0, len(all))
	for _, r := range all {
		flat = append(flat, r.Flat())
	}
	return flat, nil
}

// Resolution is a resolved path with the parameters captured by a dynamic pattern.
type Resolution struct {
	Route  *menuroute.RouteRecord `json:"route"`
	Params map[string]string      `json:"params,omitempty"`
}

// Resolve maps path to a route record of key. ok is false when nothing matches.
func (s *MenuService) Resolve(ctx context.Context, key, path string) (*Resolution, bool, error) {
	snap, err := s.lookup(ctx, key)
	if err != nil {
		return nil, false, err
	}
	snap.mu.RLock()
	route, params, ok := snap.route.MatchPath(path)
	snap.mu.RUnlock()

	s.metrics.RecordResolve(ok)
	if !ok {
		return nil, false, nil
	}
	return &Resolution{Route: route.Flat(), Params: params}, true, nil
}

// Breadcrumb returns the ancestor chain of path, root first, without children.
func (s *MenuService) Breadcrumb(ctx context.Context, key, path string) ([]*menuroute.RouteRecord, error) {
	snap, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	snap.mu.RLock()
	chain := snap.route.Breadcrumb(path)
	snap.mu.RUnlock()

	flat := make([]*menuroute.RouteRecord, 0, len(chain))
	for _, r := range chain {
		flat = append(flat, r.Flat())
	}
	return flat, nil
}

// ParseURL parses url with the configuration of key.
func (s *MenuService) ParseURL(ctx context.Context, key, url, icon string) (menuroute.ParsedURL, error) {
	snap, err := s.lookup(ctx, key)
	if err != nil {
		return menuroute.ParsedURL{}, err
	}
	snap.mu.RLock()
	defer snap.mu.RUnlock()
	return snap.route.ParseURL(url, menuroute.ResolveExtraInfo(icon)), nil
}

// Reset drops the snapshot of key and its cached items.
func (s *MenuService) Reset(ctx context.Context, key string) bool {
	s.mu.Lock()
	_, existed := s.snapshots[key]
	delete(s.snapshots, key)
	total := len(s.snapshots)
	s.mu.Unlock()

	if err := s.items.Invalidate(ctx, key); err != nil {
		s.logger.Warnw("failed to invalidate cached menu items", "key", key, "error", err)
	}
	s.metrics.RecordReset(key)
	s.metrics.SetSnapshots(total)
	return existed
}

// Keys lists the compiled menu keys in order.
func (s *MenuService) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.snapshots))
	for k := range s.snapshots {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}
