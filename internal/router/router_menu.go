package router

import (
	"github.com/go-arcade/menuroute/internal/service"
	"github.com/go-arcade/menuroute/internal/source"
	"github.com/go-arcade/menuroute/pkg/http"
	"github.com/go-arcade/menuroute/pkg/http/middleware"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/go-arcade/menuroute/pkg/menuroute"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// menuRouter registers menu snapshot routes
func (rt *Router) menuRouter(r fiber.Router) {
	menuGroup := r.Group("/menus")
	{
		menuGroup.Get("/", rt.listMenus)                    // GET /menus - compiled keys
		menuGroup.Post("/:key", rt.initMenu)                // POST /menus/:key - compile pushed items
		menuGroup.Get("/:key", rt.getMenu)                  // GET /menus/:key - snapshot summary
		menuGroup.Delete("/:key", rt.resetMenu)             // DELETE /menus/:key - drop snapshot
		menuGroup.Get("/:key/routes", rt.getRoutes)         // GET /menus/:key/routes?flat=true
		menuGroup.Get("/:key/resolve", rt.resolvePath)      // GET /menus/:key/resolve?path=
		menuGroup.Get("/:key/breadcrumb", rt.getBreadcrumb) // GET /menus/:key/breadcrumb?path=
		menuGroup.Get("/:key/parse", rt.parseURL)           // GET /menus/:key/parse?url=&icon=
	}
}

type initMenuRequest struct {
	RouteBase string               `json:"routeBase"`
	Items     []menuroute.MenuItem `json:"items"`
}

func (rt *Router) listMenus(c *fiber.Ctx) error {
	c.Locals(middleware.DETAIL, rt.Menu.Keys())
	return nil
}

func (rt *Router) initMenu(c *fiber.Ctx) error {
	var req initMenuRequest
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrStatus(c, fiber.StatusBadRequest, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	snap, err := rt.Menu.Init(c.UserContext(), c.Params("key"), req.RouteBase, req.Items)
	if err != nil {
		return menuError(c, err)
	}

	c.Locals(middleware.DETAIL, snap)
	return nil
}

func (rt *Router) getMenu(c *fiber.Ctx) error {
	snap, err := rt.Menu.Load(c.UserContext(), c.Params("key"))
	if err != nil {
		return menuError(c, err)
	}
	c.Locals(middleware.DETAIL, snap)
	return nil
}

type resetMenuResponse struct {
	Key     string `json:"key"`
	Existed bool   `json:"existed"`
}

func (rt *Router) resetMenu(c *fiber.Ctx) error {
	key := c.Params("key")
	existed := rt.Menu.Reset(c.UserContext(), key)
	return http.WithRepDetail(c, http.Success.Code, "menu reset", resetMenuResponse{Key: key, Existed: existed})
}

func (rt *Router) getRoutes(c *fiber.Ctx) error {
	var (
		routes []*menuroute.RouteRecord
		err    error
	)
	if c.QueryBool("flat") {
		routes, err = rt.Menu.FlatRoutes(c.UserContext(), c.Params("key"))
	} else {
		routes, err = rt.Menu.Routes(c.UserContext(), c.Params("key"))
	}
	if err != nil {
		return menuError(c, err)
	}
	c.Locals(middleware.DETAIL, routes)
	return nil
}

func (rt *Router) resolvePath(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return http.WithRepErrStatus(c, fiber.StatusBadRequest, http.BadRequest.Code, "path is required", c.Path())
	}

	res, ok, err := rt.Menu.Resolve(c.UserContext(), c.Params("key"), path)
	if err != nil {
		return menuError(c, err)
	}
	if !ok {
		return http.WithRepErrStatus(c, fiber.StatusNotFound, http.RouteNotFound.Code, http.RouteNotFound.Msg, c.Path())
	}
	c.Locals(middleware.DETAIL, res)
	return nil
}

func (rt *Router) getBreadcrumb(c *fiber.Ctx) error {
	chain, err := rt.Menu.Breadcrumb(c.UserContext(), c.Params("key"), c.Query("path"))
	if err != nil {
		return menuError(c, err)
	}
	c.Locals(middleware.DETAIL, chain)
	return nil
}

func (rt *Router) parseURL(c *fiber.Ctx) error {
	parsed, err := rt.Menu.ParseURL(c.UserContext(), c.Params("key"), c.Query("url"), c.Query("icon"))
	if err != nil {
		return menuError(c, err)
	}
	c.Locals(middleware.DETAIL, parsed)
	return nil
}

// menuError maps service errors onto the error envelope.
func menuError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyKey):
		return http.WithRepErrStatus(c, fiber.StatusBadRequest, http.MenuKeyIsEmpty.Code, http.MenuKeyIsEmpty.Msg, c.Path())
	case errors.Is(err, service.ErrEmptyMenu):
		return http.WithRepErrStatus(c, fiber.StatusBadRequest, http.MenuItemsIsEmpty.Code, http.MenuItemsIsEmpty.Msg, c.Path())
	case errors.Is(err, service.ErrSnapshotNotFound):
		return http.WithRepErrStatus(c, fiber.StatusNotFound, http.SnapshotNotFound.Code, http.SnapshotNotFound.Msg, c.Path())
	case errors.Is(err, source.ErrLoginExpired):
		return http.WithRepErrStatus(c, fiber.StatusBadGateway, http.SourceLoginExpired.Code, http.SourceLoginExpired.Msg, c.Path())
	default:
		log.WithContext(c.UserContext()).Errorw("menu request failed", "path", c.Path(), "error", err)
		return http.WithRepErrStatus(c, fiber.StatusInternalServerError, http.Failed.Code, err.Error(), c.Path())
	}
}
