//go:build wireinject
// +build wireinject

package main

import (
	"github.com/go-arcade/menuroute/internal/bootstrap"
	"github.com/go-arcade/menuroute/internal/config"
	"github.com/go-arcade/menuroute/internal/router"
	"github.com/go-arcade/menuroute/internal/service"
	"github.com/go-arcade/menuroute/internal/source"
	"github.com/go-arcade/menuroute/pkg/cache"
	"github.com/go-arcade/menuroute/pkg/http"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/go-arcade/menuroute/pkg/metrics"
	"github.com/go-arcade/menuroute/pkg/shutdown"
	"github.com/google/wire"
)

func initApp(appConf *config.AppConfig, logger *log.Logger) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		config.ProviderSet,
		// 基础设施
		http.ProviderSet,
		cache.ProviderSet,
		metrics.ProviderSet,
		shutdown.ProviderSet,
		// 数据源
		source.ProviderSet,
		// 服务层
		service.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}
