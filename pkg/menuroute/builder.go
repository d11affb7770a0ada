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

import (
	"fmt"
	"sort"
)

// BuildResult is the output of one RouteTreeBuilder.Build call.
type BuildResult struct {
	// TreeCodeMap maps every item code, plus RootCode, to its record.
	TreeCodeMap map[string]*RouteRecord
	// RootRoutes are the visible top-level records, sorted.
	RootRoutes []*RouteRecord
	// AllRoutes holds every created record in input order, hidden ones included.
	AllRoutes []*RouteRecord
	Warnings  []Warning
}

// RouteCreatedFunc is called for every record created during a build.
type RouteCreatedFunc func(route *RouteRecord)

// RouteTreeBuilder turns menu items into a route tree.
type RouteTreeBuilder struct {
	config ParserConfig
	warn   WarningSink
}

// BuilderOption configures a RouteTreeBuilder.
type BuilderOption func(*RouteTreeBuilder)

// WithBuilderWarningSink overrides Options.OnWarning.
func WithBuilderWarningSink(sink WarningSink) BuilderOption {
	return func(b *RouteTreeBuilder) {
		if sink != nil {
			b.warn = sink
		}
	}
}

func NewRouteTreeBuilder(opts Options, bopts ...BuilderOption) *RouteTreeBuilder {
	b := &RouteTreeBuilder{
		config: NewParserConfig(opts),
		warn:   opts.OnWarning,
	}
	if b.warn == nil {
		b.warn = LogWarning
	}
	for _, opt := range bopts {
		opt(b)
	}
	return b
}

// Config returns the parser configuration used for every item.
func (b *RouteTreeBuilder) Config() ParserConfig {
	return b.config
}

// Build creates a record per item, links records to their parents and sorts
// siblings by manual sort. Malformed input is reported as a warning and never
// aborts the build.
func (b *RouteTreeBuilder) Build(items []MenuItem, onCreated RouteCreatedFunc) *BuildResult {
	root := &RouteRecord{
		Children: []*RouteRecord{},
		Meta:     RouteMeta{Code: RootCode},
	}
	result := &BuildResult{
		TreeCodeMap: map[string]*RouteRecord{RootCode: root},
		AllRoutes:   make([]*RouteRecord, 0, len(items)),
		Warnings:    []Warning{},
	}
	report := func(w Warning) {
		result.Warnings = append(result.Warnings, w)
		b.warn(w)
	}

	type node struct {
		item  MenuItem
		route *RouteRecord
	}
	nodes := make(map[string]node, len(items))
	order := make([]string, 0, len(items))

	for _, item := range items {
		// the record is kept and registered, but never replaces the root sentinel
		// or joins the tree
		if item.Code == RootCode {
			route := b.createRoute(item)
			result.AllRoutes = append(result.AllRoutes, route)
			if onCreated != nil {
				onCreated(route)
			}
			report(Warning{
				Kind:   WarnReservedCode,
				Code:   item.Code,
				Detail: fmt.Sprintf("item %q uses the reserved root code and was left out of the tree", item.Name),
			})
			continue
		}

		if prev, ok := nodes[item.Code]; ok {
			report(Warning{
				Kind:   WarnDuplicateCode,
				Code:   item.Code,
				Detail: fmt.Sprintf("duplicate code overwritten: previous url %q, current url %q", prev.item.URL, item.URL),
			})
		} else {
			order = append(order, item.Code)
		}

		route := b.createRoute(item)
		nodes[item.Code] = node{item: item, route: route}
		result.TreeCodeMap[item.Code] = route
		result.AllRoutes = append(result.AllRoutes, route)

		if onCreated != nil {
			onCreated(route)
		}
	}

	for _, code := range order {
		n := nodes[code]
		parent, ok := result.TreeCodeMap[n.item.ParentCode]
		if !ok || parent == n.route {
			report(Warning{
				Kind:   WarnOrphanNode,
				Code:   code,
				Detail: fmt.Sprintf("parent %q not found", n.item.ParentCode),
			})
			continue
		}
		link(n.route, parent)
	}

	for _, route := range result.TreeCodeMap {
		sortChildren(route)
	}

	result.RootRoutes = root.Children
	return result
}

func (b *RouteTreeBuilder) createRoute(item MenuItem) *RouteRecord {
	extra := ResolveExtraInfo(item.Icon)
	parsed := ParseURL(item.URL, extra, b.config)

	return &RouteRecord{
		Path:          parsed.Path,
		Name:          parsed.Name,
		ComponentPath: parsed.ComponentPath,
		Meta: RouteMeta{
			Name:          item.Name,
			Code:          item.Code,
			ParentCode:    item.ParentCode,
			ComponentName: parsed.ComponentName,
			IconName:      extra.IconName,
			IsHiddenMenu:  extra.IsHiddenMenu,
			ManualSort:    item.ManualSort,
		},
	}
}

// link attaches route to parent. Hidden routes only get their parent path.
func link(route, parent *RouteRecord) {
	route.Meta.ParentPath = parent.Path
	if route.Meta.IsHiddenMenu {
		return
	}

	// the first visible child turns parent into a group node
	if len(parent.Children) == 0 {
		if parent.Children == nil {
			parent.Children = []*RouteRecord{}
		}
		parent.Redirect = route.Path
		parent.ComponentPath = ""
	}
	parent.Children = append(parent.Children, route)
}

func sortChildren(route *RouteRecord) {
	if len(route.Children) <= 1 {
		return
	}
	sort.SliceStable(route.Children, func(i, j int) bool {
		return manualSortOf(route.Children[i]) < manualSortOf(route.Children[j])
	})
	route.Redirect = route.Children[0].Path
}

func manualSortOf(route *RouteRecord) int {
	if route.Meta.ManualSort == nil {
		return 0
	}
	return *route.Meta.ManualSort
}
