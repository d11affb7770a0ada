package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
)

// ProviderSet 提供 HTTP 相关的依赖
var ProviderSet = wire.NewSet(ProvideFiberApp, ProvideHttpServer)

// ProvideFiberApp 提供 fiber 应用
func ProvideFiberApp(cfg *Http) *fiber.App {
	return NewFiberApp(cfg)
}

// ProvideHttpServer 提供 HTTP 服务器
func ProvideHttpServer(cfg *Http, app *fiber.App) *Server {
	return NewServer(cfg, app)
}
