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

// Package menuroute compiles a flat list of backend menu records into a
// navigable route tree, a path resolver and breadcrumb chains.
package menuroute

// RootCode is the parent code of every top-level menu item.
const RootCode = "ROOT"

// MenuItem is one menu/permission record as delivered by the backend.
type MenuItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	ParentCode string `json:"parentCode"`
	Sort       int    `json:"sort"`
	ManualSort *int   `json:"manualSort,omitempty"`
	URL        string `json:"url"`
	Icon       string `json:"icon"`
	Status     int    `json:"status"`
}

// ExtraInfo is the decoded content of MenuItem.Icon.
type ExtraInfo struct {
	IconName     string         `json:"iconName,omitempty"`
	HiddenMenu   *bool          `json:"hiddenMenu,omitempty"`
	IsHiddenMenu bool           `json:"isHiddenMenu"`
	RouteBase    string         `json:"routeBase,omitempty"`
	Raw          map[string]any `json:"-"`
}

// RouteMeta carries the menu attributes a route record was built from.
type RouteMeta struct {
	Name          string `json:"name"`
	Code          string `json:"code"`
	ParentCode    string `json:"parentCode"`
	ParentPath    string `json:"parentPath"`
	ComponentName string `json:"componentName"`
	IconName      string `json:"iconName,omitempty"`
	IsHiddenMenu  bool   `json:"isHiddenMenu"`
	ManualSort    *int   `json:"manualSort,omitempty"`
}

// RouteRecord is a node of the compiled route tree.
type RouteRecord struct {
	Path          string         `json:"path"`
	Name          string         `json:"name"`
	ComponentPath string         `json:"componentPath,omitempty"`
	Redirect      string         `json:"redirect,omitempty"`
	Children      []*RouteRecord `json:"children,omitempty"`
	Meta          RouteMeta      `json:"meta"`
}

// Flat returns a copy of r without its children.
func (r *RouteRecord) Flat() *RouteRecord {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Children = nil
	return &cp
}

// ParsedURL is the result of ParseURL.
type ParsedURL struct {
	Name          string `json:"name"`
	Path          string `json:"path"`
	ComponentName string `json:"componentName"`
	ComponentPath string `json:"componentPath,omitempty"`
}

// ParseContext is handed to a TransformFunc together with the parsed result.
type ParseContext struct {
	URL       string
	ViewPath  string
	ExtraInfo ExtraInfo
	RouteBase string
	Options   map[string]any
}

// TransformFunc rewrites a parsed URL. Its return value replaces the input.
type TransformFunc func(parsed ParsedURL, ctx ParseContext) ParsedURL

// Options configures parsing and building.
type Options struct {
	RouteBase string
	Transform TransformFunc
	Extra     map[string]any
	OnWarning WarningSink
}

// ParserConfig is the normalized parsing configuration.
type ParserConfig struct {
	RouteBase string
	Transform TransformFunc
	Extra     map[string]any
}

// NewParserConfig derives a ParserConfig from opts, dropping a trailing
// slash from the route base.
func NewParserConfig(opts Options) ParserConfig {
	base := opts.RouteBase
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return ParserConfig{
		RouteBase: base,
		Transform: opts.Transform,
		Extra:     opts.Extra,
	}
}
