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
	"reflect"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/go-arcade/menuroute/pkg/log"
)

// ExprTransform compiles a componentPath expression into a TransformFunc.
// The expression sees url, viewPath, name, path, componentName, routeBase,
// extra (decoded icon object) and options, and must yield a string:
//
//	"@/views/" + viewPath + "/index.vue"
//
// An empty expression returns a nil TransformFunc.
func ExprTransform(componentExpr string) (TransformFunc, error) {
	componentExpr = strings.TrimSpace(componentExpr)
	if componentExpr == "" {
		return nil, nil
	}

	program, err := expr.Compile(componentExpr, expr.Env(transformEnv(ParsedURL{}, ParseContext{})), expr.AsKind(reflect.String))
	if err != nil {
		return nil, fmt.Errorf("compile component expression '%s': %w", componentExpr, err)
	}

	return func(parsed ParsedURL, ctx ParseContext) ParsedURL {
		out, err := expr.Run(program, transformEnv(parsed, ctx))
		if err != nil {
			log.Warnw("evaluate component expression failed", "expr", componentExpr, "url", ctx.URL, "error", err)
			return parsed
		}
		if s, ok := out.(string); ok {
			parsed.ComponentPath = s
		}
		return parsed
	}, nil
}

func transformEnv(parsed ParsedURL, ctx ParseContext) map[string]any {
	extra := ctx.ExtraInfo.Raw
	if extra == nil {
		extra = map[string]any{}
	}
	options := ctx.Options
	if options == nil {
		options = map[string]any{}
	}
	return map[string]any{
		"url":           ctx.URL,
		"viewPath":      ctx.ViewPath,
		"name":          parsed.Name,
		"path":          parsed.Path,
		"componentName": parsed.ComponentName,
		"routeBase":     ctx.RouteBase,
		"extra":         extra,
		"options":       options,
	}
}
