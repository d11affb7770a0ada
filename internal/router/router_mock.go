package router

import (
	"github.com/go-arcade/menuroute/internal/model"
	"github.com/go-arcade/menuroute/internal/service/mock"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// manageAction answers POST /ManageAction with data/<actionName>.json.
// The body is passed through untouched, misses use the upstream envelope.
func (rt *Router) manageAction(c *fiber.Ctx) error {
	var req model.ManageActionRequest
	if err := c.BodyParser(&req); err != nil {
		log.WithContext(c.UserContext()).Warnw("invalid ManageAction body", "error", err)
	}

	data, err := rt.Mock.Handle(c.UserContext(), req)
	if err != nil {
		log.WithContext(c.UserContext()).Infow("mock data miss", "action", req.ActionName, "error", err)
		return c.Status(fiber.StatusNotFound).JSON(mock.NotFound(req.ActionName))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(data)
}
