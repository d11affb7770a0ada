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
	"net/url"
	"strings"

	"github.com/pkg/errors"
	pathToRegexp "github.com/soongo/path-to-regexp"
)

// pattern is a compiled dynamic route path.
//
// Supported syntax (path-to-regexp):
//
//	:id          one segment
//	:id?         optional segment
//	:path+       one or more segments
//	:path*       zero or more segments
//	:id(\d+)     segment restricted by a regular expression
//	(\d+)        unnamed restricted segment, keyed by its index
//	*rest, *     wildcard, zero or more segments
type pattern struct {
	raw string
	fn  func(string) (*pathToRegexp.MatchResult, error)
}

var patternOptions = &pathToRegexp.Options{
	Decode: func(str string, _ interface{}) (string, error) {
		return decodeParam(str), nil
	},
}

// compilePattern turns a route path into a whole-path, case-insensitive matcher.
func compilePattern(raw string) (p *pattern, err error) {
	// regexp2 panics on some malformed groups instead of returning an error
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, errors.Errorf("pattern %q: %v", raw, r)
		}
	}()

	fn, err := pathToRegexp.Match(expandWildcards(raw), patternOptions)
	if err != nil {
		return nil, errors.Wrapf(err, "pattern %q", raw)
	}
	return &pattern{raw: raw, fn: fn}, nil
}

// expandWildcards rewrites `*name` into `:name*` and a bare `*` into an
// optional catch-all group. A `*` that follows a parameter or group is a
// modifier and is left alone.
func expandWildcards(raw string) string {
	if !strings.Contains(raw, "*") {
		return raw
	}

	var b strings.Builder
	depth := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < len(raw):
			b.WriteByte(c)
			b.WriteByte(raw[i+1])
			i++
			continue
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == '*' && depth == 0 && (i == 0 || raw[i-1] == '/'):
			name, n := readName(raw[i+1:])
			if name == "" {
				b.WriteString("(.*)?")
			} else {
				b.WriteString(":" + name + "*")
			}
			i += n
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Match reports whether path matches p and returns the decoded parameters.
// Parameters of optional segments that did not participate are omitted.
func (p *pattern) Match(path string) (map[string]string, bool) {
	res, err := p.fn(path)
	if err != nil || res == nil {
		return nil, false
	}

	params := make(map[string]string, len(res.Params))
	for k, v := range res.Params {
		if s, ok := paramValue(v); ok {
			params[fmt.Sprint(k)] = s
		}
	}
	return params, true
}

// repeated parameters come back as a list of segments
func paramValue(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case []string:
		return strings.Join(val, "/"), len(val) > 0
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, e := range val {
			parts = append(parts, fmt.Sprint(e))
		}
		return strings.Join(parts, "/"), len(parts) > 0
	default:
		return fmt.Sprint(val), true
	}
}

func decodeParam(v string) string {
	if !strings.Contains(v, "%") {
		return v
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return decoded
}

func readName(s string) (string, int) {
	n := 0
	for n < len(s) && isWordChar(s[n]) {
		n++
	}
	return s[:n], n
}
