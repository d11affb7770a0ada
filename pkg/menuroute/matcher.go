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

package menuroute

type dynamicRoute struct {
	route   *RouteRecord
	pattern *pattern
}

type compiledPattern struct {
	pattern *pattern
	err     error
}

// RouteMatcher resolves paths to route records. Static paths are looked up
// in a map; dynamic paths are tried in registration order afterwards.
// A RouteMatcher is not safe for concurrent mutation.
type RouteMatcher struct {
	codeMap       map[string]*RouteRecord
	staticRoutes  map[string]*RouteRecord
	dynamicRoutes []dynamicRoute
	patternCache  map[string]compiledPattern
	warn          WarningSink
}

// MatcherOption configures a RouteMatcher.
type MatcherOption func(*RouteMatcher)

// WithMatcherWarningSink sets where invalid pattern warnings go.
func WithMatcherWarningSink(sink WarningSink) MatcherOption {
	return func(m *RouteMatcher) {
		if sink != nil {
			m.warn = sink
		}
	}
}

func NewRouteMatcher(opts ...MatcherOption) *RouteMatcher {
	m := &RouteMatcher{
		codeMap:      make(map[string]*RouteRecord),
		staticRoutes: make(map[string]*RouteRecord),
		patternCache: make(map[string]compiledPattern),
		warn:         LogWarning,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register indexes route by code and by path.
func (m *RouteMatcher) Register(route *RouteRecord) {
	if route == nil {
		return
	}
	m.codeMap[route.Meta.Code] = route

	if !isDynamicPath(route.Path) {
		m.staticRoutes[NormalizePath(route.Path)] = route
		return
	}

	p, err := m.compile(route.Path)
	if err != nil {
		m.warn(Warning{
			Kind:   WarnInvalidPattern,
			Code:   route.Meta.Code,
			Detail: err.Error(),
		})
		return
	}
	m.dynamicRoutes = append(m.dynamicRoutes, dynamicRoute{route: route, pattern: p})
}

func (m *RouteMatcher) compile(path string) (*pattern, error) {
	if c, ok := m.patternCache[path]; ok {
		return c.pattern, c.err
	}
	p, err := compilePattern(path)
	m.patternCache[path] = compiledPattern{pattern: p, err: err}
	return p, err
}

// Resolve returns the record registered for path.
func (m *RouteMatcher) Resolve(path string) (*RouteRecord, bool) {
	route, _, ok := m.Match(path)
	return route, ok
}

// Match is Resolve that also returns the parameters captured by a dynamic
// route. Static hits return nil params.
func (m *RouteMatcher) Match(path string) (*RouteRecord, map[string]string, bool) {
	if path == "" {
		return nil, nil, false
	}
	path = NormalizePath(path)

	if route, ok := m.staticRoutes[path]; ok {
		return route, nil, true
	}
	for _, d := range m.dynamicRoutes {
		if params, ok := d.pattern.Match(path); ok {
			return d.route, params, true
		}
	}
	return nil, nil, false
}

// Breadcrumb returns the ancestor chain of the record resolved from path,
// root first. An unresolvable path yields an empty slice.
func (m *RouteMatcher) Breadcrumb(path string) []*RouteRecord {
	current, ok := m.Resolve(path)
	if !ok {
		return []*RouteRecord{}
	}

	chain := []*RouteRecord{current}
	visited := map[*RouteRecord]struct{}{current: {}}
	for current.Meta.ParentCode != RootCode {
		parent, ok := m.codeMap[current.Meta.ParentCode]
		if !ok {
			break
		}
		if _, seen := visited[parent]; seen {
			break
		}
		visited[parent] = struct{}{}
		chain = append(chain, parent)
		current = parent
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// FindByCode returns the record registered under code.
func (m *RouteMatcher) FindByCode(code string) (*RouteRecord, bool) {
	route, ok := m.codeMap[code]
	return route, ok
}

// Clear drops every index and the compiled pattern cache.
func (m *RouteMatcher) Clear() {
	m.codeMap = make(map[string]*RouteRecord)
	m.staticRoutes = make(map[string]*RouteRecord)
	m.dynamicRoutes = nil
	m.patternCache = make(map[string]compiledPattern)
}

// Len returns the number of records indexed by code.
func (m *RouteMatcher) Len() int {
	return len(m.codeMap)
}
