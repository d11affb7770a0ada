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

package model

import "github.com/go-arcade/menuroute/pkg/menuroute"

// Function 功能/菜单表
type Function struct {
	BaseModel
	Code       string `gorm:"column:code;not null;uniqueIndex:idx_system_code" json:"code"`              // 功能编码
	ParentCode string `gorm:"column:parent_code;index" json:"parentCode"`                                // 父级编码（ROOT 表示顶级）
	SystemCode string `gorm:"column:system_code;not null;uniqueIndex:idx_system_code" json:"systemCode"` // 所属系统
	Name       string `gorm:"column:name;not null" json:"name"`                                          // 名称
	URL        string `gorm:"column:url" json:"url"`                                                     // 路由地址
	Icon       string `gorm:"column:icon;type:text" json:"icon"`                                         // 图标或扩展信息（JSON）
	Sort       int    `gorm:"column:sort;default:0" json:"sort"`                                         // 排序
	ManualSort *int   `gorm:"column:manual_sort" json:"manualSort"`                                      // 手动排序，优先于 sort
	Status     int    `gorm:"column:status;default:1" json:"status"`                                     // 0-禁用，1-启用
}

func (Function) TableName() string {
	return "t_function"
}

const (
	FunctionEnabled  = 1
	FunctionDisabled = 0
)

// ToMenuItem converts the row to the menu item the route builder consumes.
func (f *Function) ToMenuItem() menuroute.MenuItem {
	return menuroute.MenuItem{
		ID:         int64(f.ID),
		Name:       f.Name,
		Code:       f.Code,
		ParentCode: f.ParentCode,
		Sort:       f.Sort,
		ManualSort: f.ManualSort,
		URL:        f.URL,
		Icon:       f.Icon,
		Status:     f.Status,
	}
}

// ToMenuItems converts rows in order.
func ToMenuItems(functions []Function) []menuroute.MenuItem {
	items := make([]menuroute.MenuItem, 0, len(functions))
	for i := range functions {
		items = append(items, functions[i].ToMenuItem())
	}
	return items
}
