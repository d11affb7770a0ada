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

// DynamicRoute ties a RouteTreeBuilder to a RouteMatcher. Every call to
// GenerateRoutes replaces the previous tree and indexes entirely.
type DynamicRoute struct {
	builder  *RouteTreeBuilder
	matcher  *RouteMatcher
	warnings *warningCollector

	rootRoutes []*RouteRecord
	allRoutes  []*RouteRecord
}

func NewDynamicRoute(opts Options) *DynamicRoute {
	collector := newWarningCollector(opts.OnWarning)
	return &DynamicRoute{
		builder:    NewRouteTreeBuilder(opts, WithBuilderWarningSink(collector.report)),
		matcher:    NewRouteMatcher(WithMatcherWarningSink(collector.report)),
		warnings:   collector,
		rootRoutes: []*RouteRecord{},
		allRoutes:  []*RouteRecord{},
	}
}

// GenerateRoutes rebuilds the tree from items and re-indexes every record.
// The returned map is the build's code map; it is not retained.
func (d *DynamicRoute) GenerateRoutes(items []MenuItem) map[string]*RouteRecord {
	d.matcher.Clear()
	d.warnings.reset()

	result := d.builder.Build(items, d.matcher.Register)
	d.rootRoutes = result.RootRoutes
	d.allRoutes = result.AllRoutes
	return result.TreeCodeMap
}

func (d *DynamicRoute) ResolvePathToRoute(path string) (*RouteRecord, bool) {
	return d.matcher.Resolve(path)
}

// MatchPath resolves path and returns the captured parameters.
func (d *DynamicRoute) MatchPath(path string) (*RouteRecord, map[string]string, bool) {
	return d.matcher.Match(path)
}

func (d *DynamicRoute) Breadcrumb(path string) []*RouteRecord {
	return d.matcher.Breadcrumb(path)
}

// ParseURL parses url with the same configuration GenerateRoutes uses.
func (d *DynamicRoute) ParseURL(url string, extra ExtraInfo) ParsedURL {
	return ParseURL(url, extra, d.builder.Config())
}

func (d *DynamicRoute) RootRoutes() []*RouteRecord {
	return d.rootRoutes
}

func (d *DynamicRoute) AllRoutes() []*RouteRecord {
	return d.allRoutes
}

// Warnings returns the warnings raised by the last GenerateRoutes call.
func (d *DynamicRoute) Warnings() []Warning {
	return d.warnings.snapshot()
}
