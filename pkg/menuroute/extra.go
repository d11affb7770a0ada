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
	"strings"

	"github.com/bytedance/sonic"
)

// ResolveExtraInfo decodes the JSON object carried in a menu item's icon
// field. Anything that is not a JSON object yields a zero ExtraInfo.
func ResolveExtraInfo(icon string) ExtraInfo {
	if strings.TrimSpace(icon) == "" {
		return ExtraInfo{}
	}

	var raw map[string]any
	if err := sonic.UnmarshalString(icon, &raw); err != nil || raw == nil {
		return ExtraInfo{}
	}

	extra := ExtraInfo{Raw: raw}
	if v, ok := raw["iconName"].(string); ok {
		extra.IconName = v
	}
	if v, ok := raw["hiddenMenu"].(bool); ok {
		extra.HiddenMenu = &v
		extra.IsHiddenMenu = v
	}
	if v, ok := raw["routeBase"].(string); ok {
		extra.RouteBase = v
	}
	return extra
}
