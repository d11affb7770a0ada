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

import "strings"

// ParseURL derives the route path and names for a menu url.
//
//	ParseURL("/datainput/brand", ExtraInfo{}, ParserConfig{RouteBase: "/crm"})
//	=> {Name: "Datainput-Brand", Path: "/crm/datainput/brand", ComponentName: "Datainput-Brand"}
func ParseURL(url string, extra ExtraInfo, cfg ParserConfig) ParsedURL {
	url = NormalizePath(url)

	name := formatPathSegment(url, '-')
	viewPath := formatPathSegment(url, '/')

	base := cfg.RouteBase
	if extra.RouteBase != "" {
		base = extra.RouteBase
	}

	parsed := ParsedURL{
		Name:          name,
		Path:          NormalizePath(base + url),
		ComponentName: name,
	}

	if cfg.Transform != nil {
		parsed = cfg.Transform(parsed, ParseContext{
			URL:       url,
			ViewPath:  viewPath,
			ExtraInfo: extra,
			RouteBase: base,
			Options:   cfg.Extra,
		})
	}
	return parsed
}

// formatPathSegment upper-cases the first character of every word run and
// replaces a slash in front of a word run with sep. The leading slash is
// dropped, every other character is kept.
//
//	"/user/profile" => "User-Profile"
//	"/user-info"    => "User-Info"
func formatPathSegment(url string, sep byte) string {
	url = strings.TrimPrefix(url, "/")

	var b strings.Builder
	b.Grow(len(url))
	for i := 0; i < len(url); {
		c := url[i]
		if c == '/' && i+1 < len(url) && isWordChar(url[i+1]) {
			b.WriteByte(sep)
			i++
			continue
		}
		if !isWordChar(c) {
			b.WriteByte(c)
			i++
			continue
		}
		b.WriteByte(toUpperASCII(c))
		i++
		for i < len(url) && isWordChar(url[i]) {
			b.WriteByte(url[i])
			i++
		}
	}
	return b.String()
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func toUpperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
