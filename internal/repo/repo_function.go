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

package repo

import (
	"context"

	"github.com/go-arcade/menuroute/internal/model"
	"github.com/go-arcade/menuroute/pkg/database"
	"github.com/google/wire"
)

// ProviderSet 提供 repo 层依赖
var ProviderSet = wire.NewSet(NewFunctionRepo)

type IFunctionRepository interface {
	ListBySystem(ctx context.Context, systemCode string) ([]model.Function, error)
	GetByCode(ctx context.Context, systemCode, code string) (*model.Function, error)
}

type FunctionRepo struct {
	database.IDatabase
}

func NewFunctionRepo(db database.IDatabase) IFunctionRepository {
	return &FunctionRepo{
		IDatabase: db,
	}
}

var functionColumns = []string{
	"id", "code", "parent_code", "system_code", "name", "url", "icon",
	"sort", "manual_sort", "status", "created_at", "updated_at",
}

// ListBySystem 获取系统下所有启用的功能，按 sort 升序
func (r *FunctionRepo) ListBySystem(ctx context.Context, systemCode string) ([]model.Function, error) {
	var functions []model.Function
	err := r.Database().WithContext(ctx).Select(functionColumns).
		Where("system_code = ? AND status = ?", systemCode, model.FunctionEnabled).
		Order("sort ASC").Order("id ASC").Find(&functions).Error
	return functions, err
}

// GetByCode 获取单个功能
func (r *FunctionRepo) GetByCode(ctx context.Context, systemCode, code string) (*model.Function, error) {
	var function model.Function
	err := r.Database().WithContext(ctx).Select(functionColumns).
		Where("system_code = ? AND code = ?", systemCode, code).First(&function).Error
	if err != nil {
		return nil, err
	}
	return &function, nil
}
