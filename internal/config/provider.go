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

package config

import (
	"github.com/go-arcade/menuroute/pkg/cache"
	"github.com/go-arcade/menuroute/pkg/database"
	"github.com/go-arcade/menuroute/pkg/http"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/go-arcade/menuroute/pkg/metrics"
	"github.com/go-arcade/menuroute/pkg/trace"
	"github.com/google/wire"
)

// ProviderSet 提供配置层相关的依赖
var ProviderSet = wire.NewSet(
	ProvideHttpConfig,
	ProvideLogConfig,
	ProvideRouteConfig,
	ProvideSourceConfig,
	ProvideMockConfig,
	ProvideCacheConfig,
	ProvideRedisConfig,
	ProvideDatabaseConfig,
	ProvideMetricsConfig,
	ProvideTraceConfig,
)

// ProvideHttpConfig 提供 HTTP 配置
func ProvideHttpConfig(appConf *AppConfig) *http.Http {
	return &appConf.Http
}

// ProvideLogConfig 提供日志配置
func ProvideLogConfig(appConf *AppConfig) *log.Conf {
	return &appConf.Log
}

// ProvideRouteConfig 提供路由生成配置
func ProvideRouteConfig(appConf *AppConfig) RouteConfig {
	return appConf.Route
}

// ProvideSourceConfig 提供菜单数据源配置
func ProvideSourceConfig(appConf *AppConfig) SourceConfig {
	return appConf.Source
}

// ProvideMockConfig 提供 mock 配置
func ProvideMockConfig(appConf *AppConfig) MockConfig {
	return appConf.Mock
}

// ProvideCacheConfig 提供缓存配置
func ProvideCacheConfig(appConf *AppConfig) cache.Conf {
	return appConf.Cache
}

// ProvideRedisConfig 提供 Redis 配置
func ProvideRedisConfig(appConf *AppConfig) cache.Redis {
	return appConf.Redis
}

// ProvideDatabaseConfig 提供数据库配置
func ProvideDatabaseConfig(appConf *AppConfig) database.Database {
	return appConf.Database
}

// ProvideMetricsConfig 提供 Metrics 配置
func ProvideMetricsConfig(appConf *AppConfig) metrics.MetricsConfig {
	return appConf.Metrics
}

// ProvideTraceConfig 提供 Trace 配置
func ProvideTraceConfig(appConf *AppConfig) trace.Conf {
	return appConf.Trace
}
