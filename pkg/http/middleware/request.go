package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-Id"
	// RequestIDKey c.Locals 中的请求 ID
	RequestIDKey = "request_id"
)

// RequestMiddleware set request id
func RequestMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestId := c.Get(HeaderRequestID)
		if requestId == "" {
			requestId = uuid.New().String()
		}
		c.Request().Header.Set(HeaderRequestID, requestId)
		c.Set(HeaderRequestID, requestId)
		c.Locals(RequestIDKey, requestId)
		return c.Next()
	}
}

// RequestID returns the id RequestMiddleware assigned, or "".
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDKey).(string)
	return id
}
