package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RealIPMiddleware 获取真实 IP 中间件
func RealIPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("ip", realIP(c))
		return c.Next()
	}
}

// XFF: client, proxy1, proxy2
func realIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return c.IP()
}

// ClientIP returns the address RealIPMiddleware resolved, falling back to the peer address.
func ClientIP(c *fiber.Ctx) string {
	if ip, ok := c.Locals("ip").(string); ok && ip != "" {
		return ip
	}
	return c.IP()
}
