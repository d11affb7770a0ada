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

package router

import (
	"github.com/go-arcade/menuroute/internal/service"
	"github.com/go-arcade/menuroute/internal/service/mock"
	httpx "github.com/go-arcade/menuroute/pkg/http"
	"github.com/go-arcade/menuroute/pkg/http/middleware"
	"github.com/go-arcade/menuroute/pkg/metrics"
	"github.com/go-arcade/menuroute/pkg/shutdown"
	"github.com/go-arcade/menuroute/pkg/trace/inject"
	"github.com/go-arcade/menuroute/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

/**
 * @file: router.go
 * @description: setup router
 *  		     menu api, ManageAction mock, health and metrics
 */

const apiPrefix = "/api/v1"

type Router struct {
	Http     *httpx.Http
	App      *fiber.App
	Menu     *service.MenuService
	Mock     *mock.Service
	Metrics  *metrics.Server
	Shutdown *shutdown.Manager
}

func NewRouter(
	httpConf *httpx.Http,
	app *fiber.App,
	menu *service.MenuService,
	mockSvc *mock.Service,
	metricsServer *metrics.Server,
	shutdownMgr *shutdown.Manager,
) *Router {
	return &Router{
		Http:     httpConf,
		App:      app,
		Menu:     menu,
		Mock:     mockSvc,
		Metrics:  metricsServer,
		Shutdown: shutdownMgr,
	}
}

// Router registers middleware and routes on the fiber app.
func (rt *Router) Router() *fiber.App {
	r := rt.App

	// panic recover
	r.Use(middleware.ExceptionMiddleware)

	r.Use(middleware.RequestMiddleware())
	r.Use(middleware.RealIPMiddleware())
	r.Use(inject.FiberMiddleware())
	r.Use(middleware.AccessLogMiddleware(rt.Http))

	// unified response
	r.Use(middleware.UnifiedResponseMiddleware())

	r.Get("/health", rt.health)
	r.Get("/version", func(c *fiber.Ctx) error {
		c.Locals(middleware.DETAIL, version.GetVersion())
		return nil
	})

	if rt.Metrics != nil && rt.Metrics.Config().Enable && !rt.Metrics.Dedicated() {
		r.Get(rt.Metrics.Config().Path, adaptor.HTTPHandler(rt.Metrics.Handler()))
	}

	if rt.Http != nil && rt.Http.PProf {
		rt.debugRouter(r.Group("/debug/pprof"))
	}

	// mock upstream, same path as the real ManageAction gateway
	if rt.Mock != nil {
		r.Post("/ManageAction", rt.manageAction)
	}

	api := r.Group(apiPrefix)
	{
		rt.menuRouter(api)
	}

	return r
}

func (rt *Router) health(c *fiber.Ctx) error {
	if rt.Shutdown != nil && rt.Shutdown.IsShuttingDown() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}
	return c.SendString("ok")
}
