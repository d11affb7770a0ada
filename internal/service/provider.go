package service

import (
	"github.com/go-arcade/menuroute/internal/config"
	"github.com/go-arcade/menuroute/internal/service/mock"
	"github.com/go-arcade/menuroute/internal/source"
	"github.com/go-arcade/menuroute/pkg/cache"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/go-arcade/menuroute/pkg/metrics"
	"github.com/google/wire"
)

// ProviderSet 提供服务层相关的依赖
var ProviderSet = wire.NewSet(
	ProvideMenuService,
	ProvideMockService,
)

// ProvideMenuService 使用全局 logger 构建菜单服务
func ProvideMenuService(
	routeConf config.RouteConfig,
	src source.ItemSource,
	c cache.ICache,
	cacheConf cache.Conf,
	recorder *metrics.MenuMetricsRecorder,
	logger *log.Logger,
) (*MenuService, error) {
	var l log.ILogger
	if logger != nil && logger.Log != nil {
		l = logger.Log
	}
	return NewMenuService(routeConf, src, c, cacheConf, recorder, l)
}

// ProvideMockService 未启用 mock 时返回 nil，路由层据此跳过 /ManageAction
func ProvideMockService(cfg config.MockConfig) (*mock.Service, func()) {
	if !cfg.Enable {
		return nil, func() {}
	}
	svc := mock.NewService(cfg)
	if err := svc.Watch(); err != nil {
		log.Warnw("mock data watcher disabled", "dir", svc.DataDir(), "error", err)
	}
	return svc, svc.Close
}
