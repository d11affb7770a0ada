package middleware

import (
	httpx "github.com/go-arcade/menuroute/pkg/http"
	"github.com/gofiber/fiber/v2"
)

const (
	// DETAIL 用于设置响应数据，例如查询，需要返回数据
	// e.g: c.Locals(DETAIL, value)
	DETAIL = "detail"

	// OPERATION 用于设置操作结果，例如新增，删除，不需要返回数据
	// e.g: c.Locals(OPERATION, "reset menu")
	OPERATION = "operation"
)

// UnifiedResponseMiddleware 统一响应拦截器
// handler 通过 c.Locals(DETAIL, value) 设置响应数据，返回 nil 即可
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			return err
		}

		// handler 已自行写出响应（错误信封或原始数据）
		if len(c.Response().Body()) > 0 {
			return nil
		}

		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}

		if detail := c.Locals(DETAIL); detail != nil {
			return httpx.WithRepJSON(c, detail)
		}

		// 业务逻辑正确, 无响应数据, 只返回结果
		if c.Locals(OPERATION) != nil {
			return httpx.WithRepNotDetail(c)
		}
		return nil
	}
}
